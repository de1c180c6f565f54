package domain

import "fmt"

// NearbyRadiusDegrees is the half-size of the box searched around a device coordinate.
const NearbyRadiusDegrees = 0.5

// MaxZipCodes is the most zip codes the search endpoint accepts per request.
const MaxZipCodes = 20

// Coordinates is a latitude/longitude pair in degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Validate checks that the coordinate lies on the globe.
func (c Coordinates) Validate() error {
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("latitude out of range: %v", c.Lat)
	}
	if c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("longitude out of range: %v", c.Lon)
	}
	return nil
}

// GeoBoundingBox is the box form accepted by POST /locations/search.
type GeoBoundingBox struct {
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Bottom float64 `json:"bottom"`
	Right  float64 `json:"right"`
}

// BoxAround builds a box extending radius degrees in each direction from c.
func BoxAround(c Coordinates, radius float64) GeoBoundingBox {
	return GeoBoundingBox{
		Top:    c.Lat + radius,
		Bottom: c.Lat - radius,
		Left:   c.Lon - radius,
		Right:  c.Lon + radius,
	}
}

// Location is a zip code entry returned by the location service.
type Location struct {
	ZipCode   string  `json:"zip_code"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	City      string  `json:"city"`
	State     string  `json:"state"`
	County    string  `json:"county"`
}

// Label renders "City, ST 12345".
func (l Location) Label() string {
	if l.City == "" {
		return l.ZipCode
	}
	return fmt.Sprintf("%s, %s %s", l.City, l.State, l.ZipCode)
}

// LocationSearchParams is the body of POST /locations/search.
type LocationSearchParams struct {
	City           string          `json:"city,omitempty"`
	States         []string        `json:"states,omitempty"`
	GeoBoundingBox *GeoBoundingBox `json:"geoBoundingBox,omitempty"`
	Size           int             `json:"size,omitempty"`
	From           int             `json:"from,omitempty"`
}

// LocationSearchResponse is the response of POST /locations/search.
type LocationSearchResponse struct {
	Results []Location `json:"results"`
	Total   int        `json:"total"`
}

// ZipCodes extracts zip codes of the given locations, keeping order and
// dropping duplicates.
func ZipCodes(locations []Location) []string {
	seen := make(map[string]bool, len(locations))
	zips := make([]string, 0, len(locations))
	for _, l := range locations {
		if l.ZipCode == "" || seen[l.ZipCode] {
			continue
		}
		seen[l.ZipCode] = true
		zips = append(zips, l.ZipCode)
	}
	return zips
}
