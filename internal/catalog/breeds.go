package catalog

import (
	"context"
	"slices"
	"sync"

	"github.com/dogfinder/dogfinder/internal/api"
	"github.com/dogfinder/dogfinder/internal/domain"
	"golang.org/x/sync/singleflight"
)

// BreedLoader fetches the breed list once per session. Concurrent callers
// share a single in-flight request.
type BreedLoader struct {
	svc   api.Service
	group singleflight.Group

	mu     sync.Mutex
	breeds []string
	loaded bool
	epoch  uint64
}

// NewBreedLoader creates a loader backed by svc.
func NewBreedLoader(svc api.Service) *BreedLoader {
	return &BreedLoader{svc: svc}
}

// Load returns the breed list, fetching it on first use.
func (l *BreedLoader) Load(ctx context.Context) ([]string, error) {
	l.mu.Lock()
	if l.loaded {
		breeds := slices.Clone(l.breeds)
		l.mu.Unlock()
		return breeds, nil
	}
	epoch := l.epoch
	l.mu.Unlock()

	v, err, _ := l.group.Do("breeds", func() (interface{}, error) {
		breeds, err := l.svc.Breeds(ctx)
		if err != nil {
			return nil, err
		}
		l.mu.Lock()
		if l.epoch == epoch {
			l.breeds = breeds
			l.loaded = true
		}
		l.mu.Unlock()
		return breeds, nil
	})
	if err != nil {
		return nil, domain.NewFailure(domain.CatalogFetchFailure, "load breeds", err)
	}
	return slices.Clone(v.([]string)), nil
}

// Reset forgets the cached list so the next Load fetches again.
func (l *BreedLoader) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.breeds = nil
	l.loaded = false
	l.epoch++
	l.group.Forget("breeds")
}
