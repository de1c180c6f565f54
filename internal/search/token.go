package search

import (
	"strings"

	"github.com/dogfinder/dogfinder/internal/domain"
)

// Age bounds of the special tokens.
const (
	puppyMaxAge  = 1
	seniorMinAge = 8
)

// TokenProvider provides token-based search.
// The query is split into whitespace-separated tokens.
// Each token must match at least one field (AND logic).
// Special tokens: "puppy" (age <= 1), "senior" (age >= 8).
type TokenProvider struct {
	opts Options
}

// NewTokenProvider creates a new token search provider.
func NewTokenProvider(opts ...Option) Provider {
	return &TokenProvider{
		opts: applyOptions(opts),
	}
}

type parsedQuery struct {
	puppy  bool
	senior bool
	text   []string
}

func (p *TokenProvider) parse(query string) parsedQuery {
	var q parsedQuery
	for _, token := range strings.Fields(query) {
		switch strings.ToLower(token) {
		case "puppy":
			q.puppy = true
		case "senior":
			q.senior = true
		default:
			if p.opts.CaseInsensitive {
				token = strings.ToLower(token)
			}
			q.text = append(q.text, token)
		}
	}
	// Contradicting age tokens cancel each other.
	if q.puppy && q.senior {
		q.puppy, q.senior = false, false
	}
	return q
}

// Match returns true if all text tokens match at least one field
// and the dog satisfies the age tokens if specified.
func (p *TokenProvider) Match(dog domain.Dog, query string) bool {
	q := p.parse(query)
	if q.puppy && dog.Age > puppyMaxAge {
		return false
	}
	if q.senior && dog.Age < seniorMinAge {
		return false
	}

	values := make([]string, 0, len(p.opts.Fields))
	for _, field := range p.opts.Fields {
		values = append(values, fieldValue(dog, field))
	}
	return p.allTokensMatch(q.text, values)
}

// MatchString returns true if every token is found in text. Age tokens are
// treated as plain text.
func (p *TokenProvider) MatchString(text, query string) bool {
	tokens := strings.Fields(query)
	if p.opts.CaseInsensitive {
		for i, t := range tokens {
			tokens[i] = strings.ToLower(t)
		}
	}
	return p.allTokensMatch(tokens, []string{text})
}

func (p *TokenProvider) allTokensMatch(tokens, values []string) bool {
	if p.opts.CaseInsensitive {
		lowered := make([]string, len(values))
		for i, v := range values {
			lowered[i] = strings.ToLower(v)
		}
		values = lowered
	}
	for _, token := range tokens {
		matched := false
		for _, v := range values {
			if v != "" && strings.Contains(v, token) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

// Name returns the provider name.
func (p *TokenProvider) Name() string {
	return "token"
}
