// Package location resolves the user's position into nearby zip codes so
// the catalog can be restricted to dogs close by.
package location

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
	"github.com/dogfinder/dogfinder/internal/query"
)

// DefaultTimeout bounds a geolocation lookup.
const DefaultTimeout = 10 * time.Second

// searchSize is the number of locations requested around the device.
const searchSize = 20

// ErrBusy is returned when a resolution is requested while one is outstanding.
var ErrBusy = errors.New("location: resolution already in progress")

// Nearby is the result of a successful resolution.
type Nearby struct {
	Coordinates domain.Coordinates
	Geohash     string
	Location    domain.Location
	ZipCodes    []string
}

// Label renders the display location with its geohash cell.
func (n Nearby) Label() string {
	return fmt.Sprintf("%s [%s]", n.Location.Label(), n.Geohash)
}

// Assist resolves nearby zip codes and tracks whether near-me is on.
type Assist struct {
	svc     api.Service
	geo     Geolocator
	timeout time.Duration
	logger  logging.Logger

	mu        sync.Mutex
	nearby    *Nearby
	nearMe    bool
	resolving bool
}

// NewAssist creates an assist using geo for device coordinates. A nil geo
// behaves as Unavailable; a non-positive timeout uses DefaultTimeout.
func NewAssist(svc api.Service, geo Geolocator, timeout time.Duration) *Assist {
	if geo == nil {
		geo = Unavailable{}
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Assist{
		svc:     svc,
		geo:     geo,
		timeout: timeout,
		logger:  logging.With("component", "location"),
	}
}

// ResolveNearby locates the device, searches a box of
// domain.NearbyRadiusDegrees around it and stores the first result as the
// display location with all returned zip codes as candidates.
func (a *Assist) ResolveNearby(ctx context.Context) (Nearby, error) {
	a.mu.Lock()
	if a.resolving {
		a.mu.Unlock()
		return Nearby{}, ErrBusy
	}
	a.resolving = true
	a.mu.Unlock()
	defer func() {
		a.mu.Lock()
		a.resolving = false
		a.mu.Unlock()
	}()

	nearby, err := a.resolve(ctx)
	if err != nil {
		a.logger.Warn("nearby resolution failed", "error", err.Error())
		return Nearby{}, domain.NewFailure(domain.LocationFailure, "resolve nearby", err)
	}

	a.mu.Lock()
	a.nearby = &nearby
	a.mu.Unlock()
	a.logger.Info("nearby resolved", "geohash", nearby.Geohash, "zip_codes", len(nearby.ZipCodes))
	return nearby, nil
}

func (a *Assist) resolve(ctx context.Context) (Nearby, error) {
	geoCtx, cancel := context.WithTimeout(ctx, a.timeout)
	coords, err := a.geo.Locate(geoCtx)
	cancel()
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return Nearby{}, domain.ErrGeolocationTimeout
		}
		return Nearby{}, err
	}

	box := domain.BoxAround(coords, domain.NearbyRadiusDegrees)
	resp, err := a.svc.SearchLocations(ctx, domain.LocationSearchParams{GeoBoundingBox: &box, Size: searchSize})
	if err != nil {
		return Nearby{}, err
	}
	if len(resp.Results) == 0 {
		return Nearby{}, fmt.Errorf("no locations found near %.4f,%.4f", coords.Lat, coords.Lon)
	}
	return Nearby{
		Coordinates: coords,
		Geohash:     GeohashLabel(coords),
		Location:    resp.Results[0],
		ZipCodes:    query.TruncateZipCodes(domain.ZipCodes(resp.Results)),
	}, nil
}

// SetNearMe returns filters with the zip constraint applied or removed.
// Turning near-me on resolves the location first when none is known. On
// failure near-me stays off and filters are returned without zip codes.
func (a *Assist) SetNearMe(ctx context.Context, filters domain.FilterState, on bool) (domain.FilterState, error) {
	if !on {
		a.mu.Lock()
		a.nearMe = false
		a.mu.Unlock()
		return filters.WithZipCodes(nil), nil
	}

	a.mu.Lock()
	known := a.nearby
	a.mu.Unlock()

	var zips []string
	if known != nil {
		zips = known.ZipCodes
	} else {
		nearby, err := a.ResolveNearby(ctx)
		if err != nil {
			a.mu.Lock()
			a.nearMe = false
			a.mu.Unlock()
			return filters.WithZipCodes(nil), err
		}
		zips = nearby.ZipCodes
	}

	a.mu.Lock()
	a.nearMe = true
	a.mu.Unlock()
	return filters.WithZipCodes(query.TruncateZipCodes(zips)), nil
}

// NearMe reports whether the zip constraint is on.
func (a *Assist) NearMe() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.nearMe
}

// Current returns the last resolved location.
func (a *Assist) Current() (Nearby, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.nearby == nil {
		return Nearby{}, false
	}
	n := *a.nearby
	n.ZipCodes = slices.Clone(n.ZipCodes)
	return n, true
}

// Clear forgets the resolved location and turns near-me off.
func (a *Assist) Clear() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.nearby = nil
	a.nearMe = false
}
