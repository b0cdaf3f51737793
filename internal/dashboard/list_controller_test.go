package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolhub/admin-dashboard/internal/core/domain"
	"github.com/schoolhub/admin-dashboard/internal/core/service"
)

func seededAds() []domain.Ads {
	return []domain.Ads{
		{ID: "1", Network: "Google Ads", Email: "g@google.com", Phone: "(555)-000-0001", Link: "https://google.com"},
		{ID: "2", Network: "Bing", Email: "b@bing.com", Phone: "(555)-000-0002", Link: "https://bing.com"},
		{ID: "3", Network: "Yahoo", Email: "y@yahoo.com", Phone: "(555)-000-0003", Link: "https://yahoo.com"},
	}
}

func TestSearch_EmptyKeywordUsesCache(t *testing.T) {
	client := newAdsClient(seededAds()...)
	page, screen := newAdsPage(t, client, PageConfig{})
	ctx := context.Background()
	require.NoError(t, page.Init(ctx))
	require.Equal(t, 1, client.getCount())

	require.NoError(t, page.Controller().ClickSearch(ctx))
	assert.Equal(t, 1, client.getCount(), "empty keyword must not refetch")
	assert.Equal(t, []string{"3", "2", "1"}, ids(screen.Snapshot().Rows))
}

func TestSearch_EmptyCacheFetchesOnce(t *testing.T) {
	client := newAdsClient(seededAds()...)
	page, screen := newAdsPage(t, client, PageConfig{})
	ctx := context.Background()

	ctl := page.Controller()
	ctl.InputSearch("  GOOGLE ads ")
	require.NoError(t, ctl.PressKey(ctx, KeyEnter))

	assert.Equal(t, 1, client.getCount())
	assert.Equal(t, []string{"1"}, ids(screen.Snapshot().Rows))

	require.NoError(t, ctl.ClickSearch(ctx))
	assert.Equal(t, 1, client.getCount(), "warm cache must not refetch")
}

func TestSearch_PriorErrorForcesFetch(t *testing.T) {
	client := newAdsClient(seededAds()...)
	page, screen := newAdsPage(t, client, PageConfig{})
	ctx := context.Background()
	require.NoError(t, page.Init(ctx))

	ctl := page.Controller()
	ctl.InputSearch("bing")
	require.NoError(t, ctl.ClickSearch(ctx))
	assert.Equal(t, 1, client.getCount(), "a healthy warm cache is reused")

	client.getErr = domain.ErrRequestFailed
	assert.Error(t, page.Init(ctx))
	client.getErr = nil

	require.NoError(t, ctl.ClickSearch(ctx))
	assert.Equal(t, 3, client.getCount(), "a recorded error forces one refetch")
	assert.Equal(t, []string{"2"}, ids(screen.Snapshot().Rows))
}

func TestSearch_MatchesAnyField(t *testing.T) {
	client := newAdsClient(seededAds()...)
	page, screen := newAdsPage(t, client, PageConfig{})
	ctx := context.Background()
	require.NoError(t, page.Init(ctx))
	ctl := page.Controller()

	for kw, want := range map[string][]string{
		"yahoo.com": {"3"},
		"000-0002":  {"2"},
		"https":     {"3", "2", "1"},
		"b@bing":    {"2"},
	} {
		ctl.InputSearch(kw)
		require.NoError(t, ctl.ClickSearch(ctx))
		assert.Equal(t, want, ids(screen.Snapshot().Rows), kw)
	}

	ctl.InputSearch("nothing-like-this")
	require.NoError(t, ctl.ClickSearch(ctx))
	snap := screen.Snapshot()
	assert.Empty(t, snap.Rows)
	assert.Equal(t, EmptyNoResults, snap.Empty)
}

func TestSearch_PersonMatchesNameOrEmail(t *testing.T) {
	client := newPersonClient(
		domain.Person{ID: "1", Name: "Ada Lovelace", Email: "ada@x.io"},
		domain.Person{ID: "2", Name: "Alan Turing", Email: "alan@x.io"},
	)
	page, screen := newTeacherPage(t, client)
	ctx := context.Background()
	require.NoError(t, page.Init(ctx))

	ctl := page.Controller()
	ctl.InputSearch("ada love")
	require.NoError(t, ctl.ClickSearch(ctx))
	assert.Equal(t, []string{"1"}, ids(screen.Snapshot().Rows))

	ctl.InputSearch("alan@")
	require.NoError(t, ctl.ClickSearch(ctx))
	assert.Equal(t, []string{"2"}, ids(screen.Snapshot().Rows))
}

func TestSearch_Debounced(t *testing.T) {
	client := newAdsClient(seededAds()...)
	screen := NewScreen[domain.Ads]()
	ctl := NewListController[domain.Ads](AdsSchema(), screen, 20*time.Millisecond)
	page := NewPage[domain.Ads](service.NewAdsService(client, zerolog.Nop()), ctl, PageConfig{})
	require.NoError(t, page.Init(context.Background()))
	rendersAfterInit := screen.Snapshot().Renders

	ctl.InputSearch("b")
	ctl.InputSearch("bi")
	ctl.InputSearch("bing")
	assert.Equal(t, rendersAfterInit, screen.Snapshot().Renders, "nothing runs before the delay")

	assert.Eventually(t, func() bool {
		snap := screen.Snapshot()
		return len(snap.Rows) == 1 && snap.Rows[0].ID == "2"
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, rendersAfterInit+1, screen.Snapshot().Renders, "only the last input searches")
}

func TestSubmitSearch_RunsWithoutDelay(t *testing.T) {
	client := newAdsClient(seededAds()...)
	page, screen := newAdsPage(t, client, PageConfig{})
	ctx := context.Background()
	require.NoError(t, page.Init(ctx))

	ctl := page.Controller()
	ctl.InputSearch("yahoo")
	require.NoError(t, ctl.SubmitSearch(ctx, "bing"))

	assert.Equal(t, "bing", ctl.Keyword())
	assert.Equal(t, []string{"2"}, ids(screen.Snapshot().Rows))
	assert.False(t, ctl.debouncer.Cancel(), "the typed search is dropped")
}

func TestPressKey_IgnoresOtherKeys(t *testing.T) {
	client := newAdsClient(seededAds()...)
	page, screen := newAdsPage(t, client, PageConfig{})
	ctl := page.Controller()

	ctl.InputSearch("bing")
	require.NoError(t, ctl.PressKey(context.Background(), "a"))
	assert.Zero(t, client.getCount())
	assert.Zero(t, screen.Snapshot().Renders)
}

func TestClearSearch_Reloads(t *testing.T) {
	client := newAdsClient(seededAds()...)
	page, screen := newAdsPage(t, client, PageConfig{})
	ctx := context.Background()
	require.NoError(t, page.Init(ctx))

	ctl := page.Controller()
	ctl.InputSearch("bing")
	require.NoError(t, ctl.ClickSearch(ctx))
	require.NoError(t, ctl.ClearSearch(ctx))

	assert.Empty(t, ctl.Keyword())
	assert.Equal(t, 2, client.getCount())
	assert.Len(t, screen.Snapshot().Rows, 3)
}

func TestSelectClass(t *testing.T) {
	client := newPersonClient(domain.Person{ID: "1", ClassName: "SS1"})
	page, screen := newTeacherPage(t, client)
	ctx := context.Background()
	ctl := page.Controller()

	require.NoError(t, ctl.SelectClass(ctx, "SS1"))
	assert.Equal(t, []string{"1"}, ids(screen.Snapshot().Rows))
	assert.Equal(t, "SS1", ctl.ClassName())

	client.getErr = domain.ErrRequestFailed
	assert.Error(t, ctl.SelectClass(ctx, "SS2"))
	assert.Equal(t, EmptyNoFilterMatch, screen.Snapshot().Empty)
	assert.False(t, screen.Snapshot().Loading)
}

func TestSelectClass_AdsAreNotFilterable(t *testing.T) {
	page, screen := newAdsPage(t, newAdsClient(seededAds()...), PageConfig{})
	err := page.Controller().SelectClass(context.Background(), "SS1")
	assert.ErrorIs(t, err, domain.ErrNotFilterable)
	assert.Equal(t, EmptyNoFilterMatch, screen.Snapshot().Empty)
}

func TestDropdowns(t *testing.T) {
	screen := NewScreen[domain.Ads]()
	ctl := NewListController[domain.Ads](AdsSchema(), screen, 0)

	ctl.ToggleDropdown("1")
	assert.Equal(t, "1", screen.Snapshot().OpenDropdown)

	ctl.ToggleDropdown("2")
	assert.Equal(t, "2", screen.Snapshot().OpenDropdown, "opening one menu closes the other")

	ctl.ClickOutside("2")
	assert.Equal(t, "2", ctl.OpenDropdown(), "click inside the open menu keeps it")

	ctl.ClickOutside("")
	assert.Empty(t, screen.Snapshot().OpenDropdown)

	ctl.ToggleDropdown("3")
	ctl.ToggleDropdown("3")
	assert.Empty(t, ctl.OpenDropdown())
}

func TestForm_AddModeAndUnknownField(t *testing.T) {
	screen := NewScreen[domain.Person]()
	ctl := NewListController[domain.Person](PersonSchema(domain.KindStudent), screen, 0)

	assert.ErrorIs(t, ctl.Input("name", "x"), ErrNoForm)
	_, err := ctl.Submit(context.Background())
	assert.ErrorIs(t, err, ErrNoForm)

	ctl.OpenAdd()
	snap := screen.Snapshot()
	require.NotNil(t, snap.Modal)
	assert.Equal(t, "Add Student", snap.Modal.Title)
	assert.True(t, snap.Modal.SubmitEnabled)
	_, hasSubject := snap.Modal.Values["subject"]
	assert.False(t, hasSubject, "students have no subject field")

	assert.ErrorIs(t, ctl.Input("subject", "Math"), ErrUnknownField)

	errs, err := ctl.Submit(context.Background())
	require.NoError(t, err)
	assert.Len(t, errs, 5)
}

func TestFormState_IsFunctional(t *testing.T) {
	s := AdsSchema()
	orig := NewEditForm(domain.Ads{ID: "1", Network: "Google"})
	next := orig.With(s, "network", "Bing")

	assert.False(t, orig.Dirty)
	assert.Equal(t, "Google", orig.Current.Network)
	assert.True(t, next.Dirty)
	assert.Equal(t, "1", next.ID())

	same := next.With(s, "network", " Google ")
	assert.False(t, same.Dirty, "surrounding spaces do not count as a change")
}
