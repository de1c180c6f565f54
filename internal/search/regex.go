package search

import (
	"fmt"
	"regexp"
	"sync"

	"github.com/dogfinder/dogfinder/internal/domain"
)

// RegexProvider provides regex-based search.
// Matches if any configured field matches the regex pattern.
type RegexProvider struct {
	opts    Options
	cache   map[string]*regexp.Regexp
	cacheMu sync.RWMutex
}

// NewRegexProvider creates a new regex search provider.
func NewRegexProvider(opts ...Option) Provider {
	return &RegexProvider{
		opts:  applyOptions(opts),
		cache: make(map[string]*regexp.Regexp),
	}
}

// Match returns true if any configured field matches the regex pattern.
// If the query is not a valid regex, it returns false for all dogs.
func (p *RegexProvider) Match(dog domain.Dog, query string) bool {
	if query == "" {
		return true
	}
	re, err := p.getRegex(query)
	if err != nil {
		return false
	}
	for _, field := range p.opts.Fields {
		if v := fieldValue(dog, field); v != "" && re.MatchString(v) {
			return true
		}
	}
	return false
}

// MatchString returns true if text matches the regex pattern.
func (p *RegexProvider) MatchString(text, query string) bool {
	if query == "" {
		return true
	}
	re, err := p.getRegex(query)
	if err != nil {
		return false
	}
	return re.MatchString(text)
}

// getRegex returns a compiled regex for the given pattern, using cache.
func (p *RegexProvider) getRegex(pattern string) (*regexp.Regexp, error) {
	p.cacheMu.RLock()
	re, ok := p.cache[pattern]
	p.cacheMu.RUnlock()
	if ok {
		return re, nil
	}

	expr := pattern
	if p.opts.CaseInsensitive {
		expr = "(?i)" + pattern
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}

	p.cacheMu.Lock()
	p.cache[pattern] = re
	p.cacheMu.Unlock()
	return re, nil
}

// Name returns the provider name.
func (p *RegexProvider) Name() string {
	return "regex"
}

// CheckQuery returns an error when query cannot be used with the provider
// named name. Only regex queries can be malformed.
func CheckQuery(name, query string) error {
	if name != ProviderRegex || query == "" {
		return nil
	}
	if _, err := regexp.Compile(query); err != nil {
		return fmt.Errorf("invalid regex %q: %w", query, err)
	}
	return nil
}
