// Package match requests a match from the user's favorites and tracks the
// celebration shown for a successful match.
package match

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/dogfinder/dogfinder/internal/api"
	"github.com/dogfinder/dogfinder/internal/domain"
	"github.com/dogfinder/dogfinder/internal/logging"
	"github.com/google/uuid"
)

// ErrBusy is returned when a match is requested while one is outstanding.
var ErrBusy = errors.New("match: request already in progress")

// HistoryRecorder persists successful matches.
type HistoryRecorder interface {
	Record(ctx context.Context, rec domain.MatchRecord) error
}

// Requester submits favorites to the match endpoint.
type Requester struct {
	svc     api.Service
	history HistoryRecorder
	now     func() time.Time
	newID   func() string
	logger  logging.Logger

	mu      sync.Mutex
	loading bool
	user    string
}

// Option configures a Requester.
type Option func(*Requester)

// WithHistory records every successful match in h.
func WithHistory(h HistoryRecorder) Option {
	return func(r *Requester) {
		r.history = h
	}
}

// WithClock overrides the time source used for history records.
func WithClock(now func() time.Time) Option {
	return func(r *Requester) {
		r.now = now
	}
}

// NewRequester creates a requester backed by svc.
func NewRequester(svc api.Service, opts ...Option) *Requester {
	r := &Requester{
		svc:    svc,
		now:    time.Now,
		newID:  uuid.NewString,
		logger: logging.With("component", "match"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetUser sets the email stored with history records.
func (r *Requester) SetUser(email string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.user = email
}

// IsLoading reports whether a match request is outstanding.
func (r *Requester) IsLoading() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loading
}

// RequestMatch asks the service to pick one of ids and returns the full
// record of the winner. An empty selection fails without any network call.
// Failures are MatchFailure and leave favorites and catalog untouched.
func (r *Requester) RequestMatch(ctx context.Context, ids []string) (domain.Dog, error) {
	if len(ids) == 0 {
		return domain.Dog{}, domain.NewFailure(domain.MatchFailure, "match", domain.ErrEmptySelection)
	}

	r.mu.Lock()
	if r.loading {
		r.mu.Unlock()
		return domain.Dog{}, ErrBusy
	}
	r.loading = true
	user := r.user
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.loading = false
		r.mu.Unlock()
	}()

	dog, err := r.fetch(ctx, slices.Clone(ids))
	if err != nil {
		r.logger.Warn("match failed", "favorites", len(ids), "error", err.Error())
		return domain.Dog{}, domain.NewFailure(domain.MatchFailure, "match", err)
	}
	r.logger.Info("match found", "dog_id", dog.ID, "favorites", len(ids))

	if r.history != nil {
		rec := domain.MatchRecord{
			ID:             r.newID(),
			DogID:          dog.ID,
			DogName:        dog.Name,
			Breed:          dog.Breed,
			ZipCode:        dog.ZipCode,
			FavoritesCount: len(ids),
			UserEmail:      user,
			MatchedAt:      r.now().UTC(),
		}
		if err := r.history.Record(ctx, rec); err != nil {
			r.logger.Warn("failed to record match history", "dog_id", dog.ID, "error", err.Error())
		}
	}
	return dog, nil
}

func (r *Requester) fetch(ctx context.Context, ids []string) (domain.Dog, error) {
	id, err := r.svc.Match(ctx, ids)
	if err != nil {
		return domain.Dog{}, err
	}
	dogs, err := r.svc.Dogs(ctx, []string{id})
	if err != nil {
		return domain.Dog{}, fmt.Errorf("hydrate match %s: %w", id, err)
	}
	for _, d := range dogs {
		if d.ID == id {
			return d, nil
		}
	}
	return domain.Dog{}, fmt.Errorf("matched dog %s not found", id)
}
