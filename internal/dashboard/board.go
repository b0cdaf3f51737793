package dashboard

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/schoolhub/admin-dashboard/internal/core/domain"
	"github.com/schoolhub/admin-dashboard/internal/core/ports"
)

type BoardConfig struct {
	SearchDebounce time.Duration
	Page           PageConfig

	// Classmates answers the class lookup of the student detail panel. It
	// needs its own cache. Nil shows the panel without classmates.
	Classmates ports.EntityService[domain.Person]
}

// Board holds the three dashboard pages and the screens they render into.
type Board struct {
	Ads      *Page[domain.Ads]
	Teachers *Page[domain.Person]
	Students *Page[domain.Person]

	AdsScreen     *Screen[domain.Ads]
	TeacherScreen *Screen[domain.Person]
	StudentScreen *Screen[domain.Person]

	log zerolog.Logger
}

func NewBoard(
	ads ports.EntityService[domain.Ads],
	teachers ports.EntityService[domain.Person],
	students ports.EntityService[domain.Person],
	cfg BoardConfig,
) *Board {
	b := &Board{
		AdsScreen:     NewScreen[domain.Ads](),
		TeacherScreen: NewScreen[domain.Person](),
		StudentScreen: NewScreen[domain.Person](),
		log:           cfg.Page.Log,
	}
	b.Ads = NewPage(ads, NewListController[domain.Ads](AdsSchema(), b.AdsScreen, cfg.SearchDebounce), cfg.Page)
	b.Teachers = NewPage(teachers, NewListController[domain.Person](PersonSchema(domain.KindTeacher), b.TeacherScreen, cfg.SearchDebounce), cfg.Page)
	b.Students = NewPage(students, NewListController[domain.Person](PersonSchema(domain.KindStudent), b.StudentScreen, cfg.SearchDebounce), cfg.Page)
	if cfg.Classmates != nil {
		b.Students.SetRelated(cfg.Classmates)
	}
	return b
}

// Start binds debounced searches to ctx and loads every page. Load failures
// are logged and left on the screens as placeholders.
func (b *Board) Start(ctx context.Context) {
	b.Ads.Controller().SetContext(ctx)
	b.Teachers.Controller().SetContext(ctx)
	b.Students.Controller().SetContext(ctx)

	for name, load := range map[string]func(context.Context) error{
		"ads":      b.Ads.Init,
		"teachers": b.Teachers.Init,
		"students": b.Students.Init,
	} {
		if err := load(ctx); err != nil {
			b.log.Warn().Err(err).Str("page", name).Msg("initial load failed")
		}
	}
}
