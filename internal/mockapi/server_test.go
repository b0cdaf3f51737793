package mockapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolhub/admin-dashboard/internal/core/domain"
	"github.com/schoolhub/admin-dashboard/internal/core/ports"
	"github.com/schoolhub/admin-dashboard/internal/core/service"
	"github.com/schoolhub/admin-dashboard/internal/infrastructure/restclient"
)

func newTestRouter(store ports.ResourceStore) http.Handler {
	return NewRouter(NewServer(store, zerolog.Nop()))
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServer_CRUD(t *testing.T) {
	h := newTestRouter(NewMemoryStore())

	rec := do(t, h, http.MethodPost, "/ads", `{"network":"Facebook","status":"Active"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "1", created["id"])

	rec = do(t, h, http.MethodGet, "/ads/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Facebook"`)

	rec = do(t, h, http.MethodPut, "/ads/1", `{"network":"Google","status":"Paused"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Google"`)

	rec = do(t, h, http.MethodDelete, "/ads/1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Google"`)

	rec = do(t, h, http.MethodGet, "/ads/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_ListQuery(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	store.Create(ctx, "Student", ports.Record{"name": "Ann", "className": "SS1"})
	store.Create(ctx, "Student", ports.Record{"name": "Bob", "className": "SS2"})
	h := newTestRouter(store)

	cases := []struct {
		target string
		want   int
	}{
		{"/Student", 2},
		{"/Student?search=bob", 1},
		{"/Student?className=SS1", 1},
		{"/Student?className=SS1&search=bob", 0},
		{"/Student?className=", 2},
		{"/Teacher", 0},
	}
	for _, tc := range cases {
		rec := do(t, h, http.MethodGet, tc.target, "")
		require.Equal(t, http.StatusOK, rec.Code, tc.target)

		var rows []map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows), tc.target)
		assert.Len(t, rows, tc.want, tc.target)
	}
}

func TestServer_UnknownResourceAndBadBody(t *testing.T) {
	h := newTestRouter(NewMemoryStore())

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/courses", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodPost, "/courses", `{}`).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodDelete, "/ads/42", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/ads", `[1,2]`).Code)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/health", "").Code)
}

type brokenStore struct{ MemoryStore }

func (*brokenStore) List(context.Context, string, ports.ResourceFilter) ([]ports.Record, error) {
	return nil, errors.New("disk on fire")
}

func TestServer_StoreFailureIs500(t *testing.T) {
	h := newTestRouter(&brokenStore{})
	assert.Equal(t, http.StatusInternalServerError, do(t, h, http.MethodGet, "/ads", "").Code)
}

// The dashboard's own client and services run unchanged against the server.
func TestServer_WithRestClient(t *testing.T) {
	srv := httptest.NewServer(newTestRouter(NewMemoryStore()))
	defer srv.Close()
	ctx := context.Background()

	client := restclient.New[domain.Person](srv.URL, domain.KindTeacher.Endpoint())
	teachers := service.NewPersonService(domain.KindTeacher, client, zerolog.Nop())

	added, err := teachers.Add(ctx, domain.Person{
		Kind:      domain.KindTeacher,
		Name:      "Grace Hopper",
		Email:     "grace@school.io",
		ClassName: "SS3",
		Gender:    "Female",
		AvatarURL: "https://img.io/g.png",
		Subject:   "Maths",
	})
	require.NoError(t, err)
	assert.Equal(t, "1", added.ID)
	assert.Equal(t, "Maths", added.Subject)

	found, err := teachers.Search(ctx, "hopper")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, domain.KindTeacher, found[0].Kind)

	filtered, err := teachers.FilterByClass(ctx, "SS1")
	require.NoError(t, err)
	assert.Empty(t, filtered)

	require.NoError(t, teachers.Delete(ctx, "1"))
	_, err = teachers.GetDetail(ctx, "1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
