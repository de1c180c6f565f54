package search

import (
	"strings"

	"github.com/dogfinder/dogfinder/internal/domain"
)

// SubstringProvider provides substring-based search.
// Matches if any configured field contains the query as a substring.
type SubstringProvider struct {
	opts Options
}

// NewSubstringProvider creates a new substring search provider.
func NewSubstringProvider(opts ...Option) Provider {
	return &SubstringProvider{
		opts: applyOptions(opts),
	}
}

// Match returns true if any configured field contains the query substring.
func (p *SubstringProvider) Match(dog domain.Dog, query string) bool {
	if query == "" {
		return true
	}
	for _, field := range p.opts.Fields {
		if p.contains(fieldValue(dog, field), query) {
			return true
		}
	}
	return false
}

// MatchString returns true if text contains the query substring.
func (p *SubstringProvider) MatchString(text, query string) bool {
	if query == "" {
		return true
	}
	return p.contains(text, query)
}

func (p *SubstringProvider) contains(value, query string) bool {
	if value == "" {
		return false
	}
	if p.opts.CaseInsensitive {
		value = strings.ToLower(value)
		query = strings.ToLower(query)
	}
	return strings.Contains(value, query)
}

// Name returns the provider name.
func (p *SubstringProvider) Name() string {
	return "substring"
}
