package domain

import "errors"

var (
	// ErrEmptySelection indicates a match was requested with no favorites.
	ErrEmptySelection = errors.New("no favorites selected")
	// ErrTooManyIDs indicates a hydration request above MaxHydrationIDs.
	ErrTooManyIDs = errors.New("cannot fetch more than 100 dogs at once")
	// ErrInvalidCredentials indicates a login attempt with a missing name or malformed email.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotLoggedIn indicates an operation that needs a session was attempted without one.
	ErrNotLoggedIn = errors.New("not logged in")
	// ErrPageUnavailable indicates a page beyond the materialized data with no continuation.
	ErrPageUnavailable = errors.New("page unavailable")
	// ErrStaleResponse indicates a response superseded by a newer request.
	ErrStaleResponse = errors.New("stale response discarded")
	// ErrGeolocationUnavailable indicates no geolocation source is configured.
	ErrGeolocationUnavailable = errors.New("geolocation is not supported")
	// ErrGeolocationDenied indicates the geolocation source refused to answer.
	ErrGeolocationDenied = errors.New("geolocation permission denied")
	// ErrGeolocationTimeout indicates the geolocation source did not answer in time.
	ErrGeolocationTimeout = errors.New("geolocation timed out")
)

// FailureKind classifies user-visible failures.
type FailureKind int

const (
	AuthFailure FailureKind = iota
	CatalogFetchFailure
	MatchFailure
	LocationFailure
)

// String returns the failure kind name.
func (k FailureKind) String() string {
	switch k {
	case AuthFailure:
		return "AuthFailure"
	case CatalogFetchFailure:
		return "CatalogFetchFailure"
	case MatchFailure:
		return "MatchFailure"
	case LocationFailure:
		return "LocationFailure"
	default:
		return "UnknownFailure"
	}
}

// Failure is a non-fatal error surfaced to the user. Every failure is
// recoverable by re-triggering the same action.
type Failure struct {
	Kind FailureKind
	Op   string
	Err  error
}

// NewFailure wraps err as a failure of the given kind. A nil err yields nil.
func NewFailure(kind FailureKind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Failure{Kind: kind, Op: op, Err: err}
}

func (f *Failure) Error() string {
	if f.Op == "" {
		return f.Kind.String() + ": " + f.Err.Error()
	}
	return f.Op + ": " + f.Err.Error()
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// UserMessage returns the message shown to the user for this failure.
func (f *Failure) UserMessage() string {
	switch f.Kind {
	case AuthFailure:
		if errors.Is(f.Err, ErrInvalidCredentials) {
			return "Please enter your name and a valid email address."
		}
		if errors.Is(f.Err, ErrNotLoggedIn) {
			return "Please log in first."
		}
		return "Login failed. Please check your details and try again."
	case CatalogFetchFailure:
		return "Failed to fetch dogs. Please try again."
	case MatchFailure:
		if errors.Is(f.Err, ErrEmptySelection) {
			return "Select at least one favorite to find a match."
		}
		return "Failed to find a match. Please try again."
	case LocationFailure:
		switch {
		case errors.Is(f.Err, ErrGeolocationUnavailable):
			return "Geolocation is not supported. Configure a latitude/longitude or geohash."
		case errors.Is(f.Err, ErrGeolocationDenied):
			return "Location permission denied."
		case errors.Is(f.Err, ErrGeolocationTimeout):
			return "Timed out while getting your location."
		default:
			return "Failed to resolve nearby locations."
		}
	default:
		return f.Err.Error()
	}
}

// KindOf returns the failure kind of err and whether err carries one.
func KindOf(err error) (FailureKind, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f.Kind, true
	}
	return 0, false
}

// UserMessage returns the user-facing text for any error.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var f *Failure
	if errors.As(err, &f) {
		return f.UserMessage()
	}
	return err.Error()
}
