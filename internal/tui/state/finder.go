package state

import (
	"context"
	"time"

	"github.com/dogfinder/dogfinder/internal/app"
	"github.com/dogfinder/dogfinder/internal/catalog"
	"github.com/dogfinder/dogfinder/internal/domain"
	"github.com/dogfinder/dogfinder/internal/location"
)

// Finder is the application surface the TUI drives. *app.App implements it.
type Finder interface {
	Login(ctx context.Context, name, email string) (*domain.Session, error)
	Logout(ctx context.Context) error
	ClearSession()
	Session() *domain.Session

	LoadBreeds(ctx context.Context) ([]string, error)
	Filters() domain.FilterState
	ApplyFilters(ctx context.Context, filters domain.FilterState) error
	Search(ctx context.Context) error
	SetBreeds(ctx context.Context, breeds []string) error
	SetAgeRange(ctx context.Context, min, max *int) error
	ToggleSort(ctx context.Context, field domain.SortField) error
	NextPage(ctx context.Context) error
	PrevPage(ctx context.Context) error
	Catalog() catalog.Snapshot

	ToggleFavorite(id string) bool
	IsFavorite(id string) bool
	Favorites() []string

	RequestMatch(ctx context.Context) (app.MatchResult, error)
	IsMatching() bool
	Celebration() (domain.Dog, bool)
	CelebrationRemaining() time.Duration
	ExpireCelebration(seq uint64) bool
	DismissCelebration()

	ToggleNearMe(ctx context.Context) error
	NearMe() bool
	Nearby() (location.Nearby, bool)
}

var _ Finder = (*app.App)(nil)
