// Package app holds the application state shared by the TUI and the
// commands: session, filters, favorites, catalog, match and location, all
// wired through constructor injection.
package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dogfinder/dogfinder/internal/api"
	"github.com/dogfinder/dogfinder/internal/catalog"
	"github.com/dogfinder/dogfinder/internal/domain"
	"github.com/dogfinder/dogfinder/internal/favorites"
	"github.com/dogfinder/dogfinder/internal/location"
	"github.com/dogfinder/dogfinder/internal/logging"
	"github.com/dogfinder/dogfinder/internal/match"
	"github.com/dogfinder/dogfinder/internal/session"
)

// ErrHistoryDisabled is returned by History when no store is configured.
var ErrHistoryDisabled = errors.New("match history is disabled")

// HistoryStore persists and lists successful matches.
type HistoryStore interface {
	Record(ctx context.Context, rec domain.MatchRecord) error
	List(ctx context.Context, limit int) ([]domain.MatchRecord, error)
}

// Config carries the tunables of an App.
type Config struct {
	PageSize           int
	DefaultSort        domain.Sort
	Geolocator         location.Geolocator
	GeolocationTimeout time.Duration
	History            HistoryStore
	Now                func() time.Time
}

// MatchResult is the outcome of a successful match request.
type MatchResult struct {
	Dog domain.Dog
	// Celebration is the sequence number of the celebration started for Dog.
	Celebration uint64
}

// App is the application state.
type App struct {
	session     *session.Manager
	catalog     *catalog.Controller
	breeds      *catalog.BreedLoader
	favorites   *favorites.Set
	matcher     *match.Requester
	celebration *match.Celebration
	location    *location.Assist
	history     HistoryStore
	defaultSort domain.Sort
	logger      logging.Logger

	mu      sync.Mutex
	filters domain.FilterState
}

// New wires an App around svc.
func New(svc api.Service, cfg Config) *App {
	if svc == nil {
		panic("app.New: service dependency cannot be nil")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if !cfg.DefaultSort.Field.IsValid() || !cfg.DefaultSort.Direction.IsValid() {
		cfg.DefaultSort = domain.DefaultSort()
	}

	matchOpts := []match.Option{match.WithClock(cfg.Now)}
	if cfg.History != nil {
		matchOpts = append(matchOpts, match.WithHistory(cfg.History))
	}

	a := &App{
		session:     session.NewManager(svc),
		catalog:     catalog.NewController(svc, catalog.WithPageSize(cfg.PageSize)),
		breeds:      catalog.NewBreedLoader(svc),
		favorites:   favorites.New(),
		matcher:     match.NewRequester(svc, matchOpts...),
		celebration: match.NewCelebration(cfg.Now),
		location:    location.NewAssist(svc, cfg.Geolocator, cfg.GeolocationTimeout),
		history:     cfg.History,
		defaultSort: cfg.DefaultSort,
		logger:      logging.With("component", "app"),
	}
	a.filters = a.initialFilters()
	return a
}

func (a *App) initialFilters() domain.FilterState {
	return domain.DefaultFilterState().WithSort(a.defaultSort)
}

// Login starts a session.
func (a *App) Login(ctx context.Context, name, email string) (*domain.Session, error) {
	s, err := a.session.Login(ctx, name, email)
	if err != nil {
		return nil, err
	}
	a.matcher.SetUser(s.Email)
	return s, nil
}

// Logout ends the session and drops favorites, filters, catalog and the
// resolved location. Local state is cleared even when the service call
// fails.
func (a *App) Logout(ctx context.Context) error {
	err := a.session.Logout(ctx)
	a.clearLocal()
	return err
}

// ClearSession drops the session and everything tied to it without calling
// the service. Used when the service already rejected the session.
func (a *App) ClearSession() {
	a.session.Clear()
	a.clearLocal()
}

func (a *App) clearLocal() {
	a.favorites.Clear()
	a.catalog.Reset()
	a.breeds.Reset()
	a.location.Clear()
	a.celebration.Dismiss()
	a.matcher.SetUser("")
	a.mu.Lock()
	a.filters = a.initialFilters()
	a.mu.Unlock()
	a.logger.Debug("session state cleared")
}

// Session returns the current session or nil.
func (a *App) Session() *domain.Session {
	return a.session.Current()
}

func (a *App) requireSession(op string) error {
	if !a.session.LoggedIn() {
		return domain.NewFailure(domain.AuthFailure, op, domain.ErrNotLoggedIn)
	}
	return nil
}

// LoadBreeds returns the breed list, fetched once per session.
func (a *App) LoadBreeds(ctx context.Context) ([]string, error) {
	if err := a.requireSession("load breeds"); err != nil {
		return nil, err
	}
	return a.breeds.Load(ctx)
}

// Filters returns the current filter selection.
func (a *App) Filters() domain.FilterState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.filters.Clone()
}

// Search runs the catalog search for the current filters.
func (a *App) Search(ctx context.Context) error {
	return a.searchWith(ctx, a.Filters())
}

// ApplyFilters replaces the whole filter selection and searches.
func (a *App) ApplyFilters(ctx context.Context, filters domain.FilterState) error {
	return a.searchWith(ctx, filters)
}

// SetBreeds selects breeds and searches. Empty means all breeds.
func (a *App) SetBreeds(ctx context.Context, breeds []string) error {
	return a.searchWith(ctx, a.Filters().WithBreeds(breeds))
}

// SetAgeRange sets the age bounds and searches. An invalid range is
// rejected before any request and leaves the filters unchanged.
func (a *App) SetAgeRange(ctx context.Context, min, max *int) error {
	return a.searchWith(ctx, a.Filters().WithAgeRange(min, max))
}

// ToggleSort flips or switches the sort and re-issues the search.
func (a *App) ToggleSort(ctx context.Context, field domain.SortField) error {
	if !field.IsValid() {
		return domain.NewFailure(domain.CatalogFetchFailure, "toggle sort", errors.New("invalid sort field: "+string(field)))
	}
	f := a.Filters()
	return a.searchWith(ctx, f.WithSort(f.Sort.Toggled(field)))
}

func (a *App) searchWith(ctx context.Context, filters domain.FilterState) error {
	if err := a.requireSession("search"); err != nil {
		return err
	}
	if err := filters.Validate(); err != nil {
		return domain.NewFailure(domain.CatalogFetchFailure, "search", err)
	}
	if err := a.catalog.Search(ctx, filters); err != nil {
		return err
	}
	a.mu.Lock()
	a.filters = filters.Clone()
	a.mu.Unlock()
	return nil
}

// AdvancePage moves the catalog to the target page.
func (a *App) AdvancePage(ctx context.Context, target int) error {
	return a.catalog.AdvancePage(ctx, target)
}

// NextPage moves one page forward.
func (a *App) NextPage(ctx context.Context) error {
	return a.catalog.AdvancePage(ctx, a.catalog.Snapshot().PageIndex+1)
}

// PrevPage moves one page back.
func (a *App) PrevPage(ctx context.Context) error {
	return a.catalog.AdvancePage(ctx, a.catalog.Snapshot().PageIndex-1)
}

// Catalog returns the catalog view.
func (a *App) Catalog() catalog.Snapshot {
	return a.catalog.Snapshot()
}

// ToggleFavorite flips id in the favorites and reports its new membership.
func (a *App) ToggleFavorite(id string) bool {
	return a.favorites.Toggle(id)
}

// IsFavorite reports whether id is a favorite.
func (a *App) IsFavorite(id string) bool {
	return a.favorites.Contains(id)
}

// Favorites returns the favorite ids sorted.
func (a *App) Favorites() []string {
	return a.favorites.IDs()
}

// RequestMatch submits the favorites to the match endpoint and starts the
// celebration for the winner.
func (a *App) RequestMatch(ctx context.Context) (MatchResult, error) {
	return a.RequestMatchFor(ctx, a.favorites.IDs())
}

// RequestMatchFor submits ids to the match endpoint.
func (a *App) RequestMatchFor(ctx context.Context, ids []string) (MatchResult, error) {
	if len(ids) > 0 {
		if err := a.requireSession("match"); err != nil {
			return MatchResult{}, err
		}
	}
	dog, err := a.matcher.RequestMatch(ctx, ids)
	if err != nil {
		return MatchResult{}, err
	}
	return MatchResult{Dog: dog, Celebration: a.celebration.Start(dog)}, nil
}

// IsMatching reports whether a match request is outstanding.
func (a *App) IsMatching() bool {
	return a.matcher.IsLoading()
}

// Celebration returns the celebrated dog while the effect is visible.
func (a *App) Celebration() (domain.Dog, bool) {
	return a.celebration.Active()
}

// CelebrationRemaining returns how long the celebration stays visible.
func (a *App) CelebrationRemaining() time.Duration {
	return a.celebration.Remaining()
}

// ExpireCelebration clears the celebration started with seq.
func (a *App) ExpireCelebration(seq uint64) bool {
	return a.celebration.Expire(seq)
}

// DismissCelebration clears the celebration immediately.
func (a *App) DismissCelebration() {
	a.celebration.Dismiss()
}

// ResolveNearby resolves the device location without changing filters.
func (a *App) ResolveNearby(ctx context.Context) (location.Nearby, error) {
	if err := a.requireSession("resolve nearby"); err != nil {
		return location.Nearby{}, err
	}
	return a.location.ResolveNearby(ctx)
}

// ToggleNearMe turns the zip constraint on or off and re-issues the
// search. When turning on fails, near-me stays off and no search is made.
func (a *App) ToggleNearMe(ctx context.Context) error {
	if err := a.requireSession("near me"); err != nil {
		return err
	}
	filters, err := a.location.SetNearMe(ctx, a.Filters(), !a.location.NearMe())
	if err != nil {
		return err
	}
	return a.searchWith(ctx, filters)
}

// NearMe reports whether the zip constraint is on.
func (a *App) NearMe() bool {
	return a.location.NearMe()
}

// Nearby returns the last resolved location.
func (a *App) Nearby() (location.Nearby, bool) {
	return a.location.Current()
}

// History lists recent matches, newest first.
func (a *App) History(ctx context.Context, limit int) ([]domain.MatchRecord, error) {
	if a.history == nil {
		return nil, ErrHistoryDisabled
	}
	return a.history.List(ctx, limit)
}
