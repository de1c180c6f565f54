// Package catalog implements the search pagination controller: it issues
// catalog searches, follows continuation cursors, hydrates ids into records
// and slices the hydrated records into client-side pages.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dogfinder/dogfinder/internal/api"
	"github.com/dogfinder/dogfinder/internal/domain"
	"github.com/dogfinder/dogfinder/internal/logging"
	"github.com/dogfinder/dogfinder/internal/query"
)

// DefaultPageSize is the number of records shown per client page.
const DefaultPageSize = 10

// ErrBusy is returned when a page extension is requested while another
// fetch is outstanding.
var ErrBusy = errors.New("catalog: fetch already in progress")

// State is the controller lifecycle state.
type State int

const (
	StateIdle State = iota
	StateFetching
	StateReady
	StateError
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFetching:
		return "fetching"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Snapshot is an immutable view of the controller for presentation.
type Snapshot struct {
	State         State
	Filters       domain.FilterState
	PageIndex     int
	PageSize      int
	PageCount     int
	Records       []domain.Dog
	Materialized  int
	Total         int
	HasMore       bool
	IsFetching    bool
	IsLoadingMore bool
	Err           error
}

// HasPrev reports whether a previous local page exists.
func (s Snapshot) HasPrev() bool {
	return s.PageIndex > 0
}

// HasNext reports whether moving forward can show a page, either locally
// or by following the continuation.
func (s Snapshot) HasNext() bool {
	return s.PageIndex < s.PageCount-1 || s.HasMore
}

// Controller coordinates searches and page navigation. It is safe for
// concurrent use; network calls run without holding the lock.
type Controller struct {
	svc      api.Service
	pageSize int
	logger   logging.Logger

	mu            sync.Mutex
	state         State
	filters       domain.FilterState
	catalog       *HydratedCatalog
	pageIndex     int
	lastPage      domain.SearchResultPage
	fetchedIDs    int
	generation    uint64
	isLoadingMore bool
	err           error
}

// Option configures a Controller.
type Option func(*Controller)

// WithPageSize sets the client page size.
func WithPageSize(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// NewController creates an idle controller.
func NewController(svc api.Service, opts ...Option) *Controller {
	c := &Controller{
		svc:      svc,
		pageSize: DefaultPageSize,
		logger:   logging.With("component", "catalog"),
		filters:  domain.DefaultFilterState(),
		catalog:  NewHydratedCatalog(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search starts a new search context for filters. The catalog for the new
// context starts empty and the page index resets to 0. On failure the
// previously materialized catalog and page are restored.
func (c *Controller) Search(ctx context.Context, filters domain.FilterState) error {
	if err := filters.Validate(); err != nil {
		return domain.NewFailure(domain.CatalogFetchFailure, "search", err)
	}

	c.mu.Lock()
	c.generation++
	gen := c.generation
	prev := c.saveLocked()
	c.filters = filters.Clone()
	c.catalog = NewHydratedCatalog()
	c.pageIndex = 0
	c.lastPage = domain.SearchResultPage{}
	c.fetchedIDs = 0
	c.isLoadingMore = false
	c.state = StateFetching
	c.err = nil
	c.mu.Unlock()

	req := query.Build(filters, 0)
	c.logger.Debug("search started", "sort", req.Sort, "breeds", len(req.Breeds), "zip_codes", len(req.ZipCodes), "generation", gen)

	page, dogs, err := c.fetchFirst(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		c.logger.Debug("search response discarded", "generation", gen, "current", c.generation)
		return domain.ErrStaleResponse
	}
	if err != nil {
		c.restoreLocked(prev)
		c.state = StateError
		c.err = domain.NewFailure(domain.CatalogFetchFailure, "search", err)
		c.logger.Warn("search failed", "error", err.Error())
		return c.err
	}
	c.lastPage = page
	c.fetchedIDs = len(page.ResultIDs)
	c.catalog.Merge(dogs)
	c.state = StateReady
	c.logger.Debug("search completed", "total", page.Total, "hydrated", len(dogs))
	return nil
}

func (c *Controller) fetchFirst(ctx context.Context, req query.RequestDescriptor) (domain.SearchResultPage, []domain.Dog, error) {
	page, err := c.svc.Search(ctx, req)
	if err != nil {
		return domain.SearchResultPage{}, nil, err
	}
	dogs, err := hydrate(ctx, c.svc, page.ResultIDs)
	if err != nil {
		return domain.SearchResultPage{}, nil, err
	}
	return page, dogs, nil
}

// AdvancePage moves to the target client page. Pages inside the hydrated
// data are sliced locally. When target is the last local page or beyond it
// and the service offered a continuation, the continuation is followed once
// and its records are appended before the move completes.
func (c *Controller) AdvancePage(ctx context.Context, target int) error {
	c.mu.Lock()
	if target < 0 {
		c.mu.Unlock()
		return domain.ErrPageUnavailable
	}
	if c.state == StateFetching || c.isLoadingMore {
		c.mu.Unlock()
		return ErrBusy
	}

	localPages := c.pageCountLocked()
	if target < localPages-1 || (target == 0 && localPages == 0) {
		c.pageIndex = target
		c.mu.Unlock()
		return nil
	}
	if !c.hasMoreLocked() {
		defer c.mu.Unlock()
		if target < localPages {
			c.pageIndex = target
			return nil
		}
		return domain.ErrPageUnavailable
	}

	gen := c.generation
	cursor := c.lastPage.Next
	c.isLoadingMore = true
	c.mu.Unlock()

	c.logger.Debug("following continuation", "target_page", target, "generation", gen)
	page, err := c.svc.Follow(ctx, cursor)
	var dogs []domain.Dog
	if err == nil {
		dogs, err = hydrate(ctx, c.svc, page.ResultIDs)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return domain.ErrStaleResponse
	}
	c.isLoadingMore = false
	if err != nil {
		c.state = StateError
		c.err = domain.NewFailure(domain.CatalogFetchFailure, "load more", err)
		c.logger.Warn("continuation failed", "error", err.Error())
		return c.err
	}
	c.lastPage = page
	c.fetchedIDs += len(page.ResultIDs)
	c.catalog.Merge(dogs)
	c.state = StateReady
	c.err = nil

	if target < c.pageCountLocked() {
		c.pageIndex = target
		return nil
	}
	return domain.ErrPageUnavailable
}

// ToggleSort flips the direction when field is the current sort field or
// switches to field ascending, then re-issues a fresh search.
func (c *Controller) ToggleSort(ctx context.Context, field domain.SortField) error {
	if !field.IsValid() {
		return fmt.Errorf("catalog: invalid sort field %q", field)
	}
	c.mu.Lock()
	filters := c.filters.WithSort(c.filters.Sort.Toggled(field))
	c.mu.Unlock()
	return c.Search(ctx, filters)
}

// Reload repeats the search for the current filters.
func (c *Controller) Reload(ctx context.Context) error {
	return c.Search(ctx, c.Filters())
}

// Reset discards all state and returns to idle. Responses of requests
// issued before Reset are discarded.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.state = StateIdle
	c.filters = domain.DefaultFilterState()
	c.catalog = NewHydratedCatalog()
	c.pageIndex = 0
	c.lastPage = domain.SearchResultPage{}
	c.fetchedIDs = 0
	c.isLoadingMore = false
	c.err = nil
}

// Filters returns the filters of the displayed search context.
func (c *Controller) Filters() domain.FilterState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filters.Clone()
}

// Lookup returns a hydrated record of the current context.
func (c *Controller) Lookup(id string) (domain.Dog, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.catalog.Get(id)
}

// Snapshot returns the current view.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	start := c.pageIndex * c.pageSize
	return Snapshot{
		State:         c.state,
		Filters:       c.filters.Clone(),
		PageIndex:     c.pageIndex,
		PageSize:      c.pageSize,
		PageCount:     c.pageCountLocked(),
		Records:       c.catalog.Slice(start, start+c.pageSize),
		Materialized:  c.catalog.Len(),
		Total:         c.lastPage.Total,
		HasMore:       c.hasMoreLocked(),
		IsFetching:    c.state == StateFetching,
		IsLoadingMore: c.isLoadingMore,
		Err:           c.err,
	}
}

func (c *Controller) pageCountLocked() int {
	n := c.catalog.Len()
	return (n + c.pageSize - 1) / c.pageSize
}

func (c *Controller) hasMoreLocked() bool {
	return c.lastPage.HasNext() && c.fetchedIDs < c.lastPage.Total
}

type savedState struct {
	state      State
	filters    domain.FilterState
	catalog    *HydratedCatalog
	pageIndex  int
	lastPage   domain.SearchResultPage
	fetchedIDs int
}

func (c *Controller) saveLocked() savedState {
	return savedState{
		state:      c.state,
		filters:    c.filters,
		catalog:    c.catalog,
		pageIndex:  c.pageIndex,
		lastPage:   c.lastPage,
		fetchedIDs: c.fetchedIDs,
	}
}

func (c *Controller) restoreLocked(s savedState) {
	c.filters = s.filters
	c.catalog = s.catalog
	c.pageIndex = s.pageIndex
	c.lastPage = s.lastPage
	c.fetchedIDs = s.fetchedIDs
}

// hydrate resolves ids into records in batches of domain.MaxHydrationIDs.
// Records are returned in id order; ids the service did not resolve are
// skipped.
func hydrate(ctx context.Context, svc api.Service, ids []string) ([]domain.Dog, error) {
	out := make([]domain.Dog, 0, len(ids))
	for start := 0; start < len(ids); start += domain.MaxHydrationIDs {
		batch := ids[start:min(start+domain.MaxHydrationIDs, len(ids))]
		dogs, err := svc.Dogs(ctx, batch)
		if err != nil {
			return nil, fmt.Errorf("hydrate %d ids: %w", len(batch), err)
		}
		byID := make(map[string]domain.Dog, len(dogs))
		for _, d := range dogs {
			byID[d.ID] = d
		}
		for _, id := range batch {
			if d, ok := byID[id]; ok {
				out = append(out, d)
			}
		}
	}
	return out, nil
}
