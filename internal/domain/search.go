package domain

// Cursor is an opaque continuation reference issued by the search endpoint.
// It is dereferenced verbatim against the service base URL and never parsed.
type Cursor string

// IsZero reports whether the cursor is absent.
func (c Cursor) IsZero() bool {
	return c == ""
}

// String returns the raw reference.
func (c Cursor) String() string {
	return string(c)
}

// SearchResultPage is one page of identifiers returned by GET /dogs/search.
// It never carries full records; ids must be hydrated separately.
type SearchResultPage struct {
	ResultIDs []string `json:"resultIds"`
	Total     int      `json:"total"`
	Next      Cursor   `json:"next,omitempty"`
	Prev      Cursor   `json:"prev,omitempty"`
}

// HasNext reports whether the service offered a forward continuation.
func (p SearchResultPage) HasNext() bool {
	return !p.Next.IsZero()
}

// MatchResult is the body of POST /dogs/match.
type MatchResult struct {
	Match string `json:"match"`
}
