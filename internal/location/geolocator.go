package location

import (
	"context"
	"fmt"
	"strings"

	"github.com/dogfinder/dogfinder/internal/domain"
	"github.com/mmcloughlin/geohash"
)

// geohashAlphabet is the base32 alphabet used by geohashes.
const geohashAlphabet = "0123456789bcdefghjkmnpqrstuvwxyz"

// labelPrecision is the geohash length shown next to a resolved location.
const labelPrecision = 6

// Geolocator obtains the device coordinates.
type Geolocator interface {
	Locate(ctx context.Context) (domain.Coordinates, error)
}

// Static reports fixed coordinates.
type Static struct {
	Coordinates domain.Coordinates
}

// Locate returns the fixed coordinates.
func (s Static) Locate(ctx context.Context) (domain.Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return domain.Coordinates{}, err
	}
	if err := s.Coordinates.Validate(); err != nil {
		return domain.Coordinates{}, fmt.Errorf("%w: %v", domain.ErrGeolocationDenied, err)
	}
	return s.Coordinates, nil
}

// Geohash reports the center of a geohash cell.
type Geohash struct {
	Hash string
}

// Locate decodes the geohash cell center.
func (g Geohash) Locate(ctx context.Context) (domain.Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return domain.Coordinates{}, err
	}
	hash, err := NormalizeGeohash(g.Hash)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("%w: %v", domain.ErrGeolocationDenied, err)
	}
	lat, lon := geohash.DecodeCenter(hash)
	return domain.Coordinates{Lat: lat, Lon: lon}, nil
}

// Unavailable is the geolocator used when no source is configured.
type Unavailable struct{}

// Locate always fails with domain.ErrGeolocationUnavailable.
func (Unavailable) Locate(context.Context) (domain.Coordinates, error) {
	return domain.Coordinates{}, domain.ErrGeolocationUnavailable
}

// Func adapts a function to Geolocator.
type Func func(ctx context.Context) (domain.Coordinates, error)

// Locate calls f.
func (f Func) Locate(ctx context.Context) (domain.Coordinates, error) {
	return f(ctx)
}

// Source describes the configured geolocation inputs.
type Source struct {
	Lat     *float64
	Lon     *float64
	Geohash string
}

// NewGeolocator picks the geolocator for src. Explicit coordinates win over
// a geohash; with neither the result is Unavailable.
func NewGeolocator(src Source) (Geolocator, error) {
	switch {
	case src.Lat != nil && src.Lon != nil:
		c := domain.Coordinates{Lat: *src.Lat, Lon: *src.Lon}
		if err := c.Validate(); err != nil {
			return nil, err
		}
		return Static{Coordinates: c}, nil
	case src.Lat != nil || src.Lon != nil:
		return nil, fmt.Errorf("latitude and longitude must be set together")
	case strings.TrimSpace(src.Geohash) != "":
		hash, err := NormalizeGeohash(src.Geohash)
		if err != nil {
			return nil, err
		}
		return Geohash{Hash: hash}, nil
	default:
		return Unavailable{}, nil
	}
}

// NormalizeGeohash lower-cases hash and checks its alphabet.
func NormalizeGeohash(hash string) (string, error) {
	hash = strings.ToLower(strings.TrimSpace(hash))
	if hash == "" || len(hash) > 12 {
		return "", fmt.Errorf("invalid geohash %q: length must be 1-12", hash)
	}
	for _, r := range hash {
		if !strings.ContainsRune(geohashAlphabet, r) {
			return "", fmt.Errorf("invalid geohash %q: unexpected character %q", hash, r)
		}
	}
	return hash, nil
}

// GeohashLabel encodes c as a short geohash for display.
func GeohashLabel(c domain.Coordinates) string {
	return geohash.EncodeWithPrecision(c.Lat, c.Lon, labelPrecision)
}
