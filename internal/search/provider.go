// Package search provides client-side filtering of dogs and breed names.
// It supports multiple search strategies (substring, regex, token-based) through
// a common Provider interface shared by the CLI and the TUI.
package search

import (
	"strconv"

	"github.com/dogfinder/dogfinder/internal/domain"
)

// Field names a dog attribute a provider can search.
const (
	FieldName  = "name"
	FieldBreed = "breed"
	FieldZip   = "zip"
	FieldID    = "id"
	FieldAge   = "age"
)

// Provider defines the interface for search providers.
// Implementations can use different strategies (substring, regex, token-based, etc.)
// to match dogs against search queries.
type Provider interface {
	// Match returns true if the dog matches the search query.
	Match(dog domain.Dog, query string) bool

	// MatchString returns true if text matches the search query.
	MatchString(text, query string) bool

	// Name returns the provider name for identification and debugging.
	Name() string
}

// Options holds configuration options for creating search providers.
type Options struct {
	CaseInsensitive bool     // If true, searches ignore case sensitivity
	Fields          []string // Fields to search in (default: name, breed, zip)
}

// DefaultOptions returns the default search options.
func DefaultOptions() Options {
	return Options{
		CaseInsensitive: false,
		Fields:          []string{FieldName, FieldBreed, FieldZip},
	}
}

// Option is a function that modifies search options.
type Option func(*Options)

// WithCaseInsensitive sets case-insensitive search.
func WithCaseInsensitive(enabled bool) Option {
	return func(o *Options) {
		o.CaseInsensitive = enabled
	}
}

// WithFields sets the fields to search in.
// Valid fields: "name", "breed", "zip", "id", "age".
func WithFields(fields []string) Option {
	return func(o *Options) {
		o.Fields = fields
	}
}

// applyOptions applies the given options to the options struct.
func applyOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// fieldValue returns the searchable text of field.
func fieldValue(dog domain.Dog, field string) string {
	switch field {
	case FieldName:
		return dog.Name
	case FieldBreed:
		return dog.Breed
	case FieldZip:
		return dog.ZipCode
	case FieldID:
		return dog.ID
	case FieldAge:
		return strconv.Itoa(dog.Age)
	default:
		return ""
	}
}

// FilterDogs returns the dogs matching query, preserving order.
func FilterDogs(p Provider, dogs []domain.Dog, query string) []domain.Dog {
	out := make([]domain.Dog, 0, len(dogs))
	for _, d := range dogs {
		if p.Match(d, query) {
			out = append(out, d)
		}
	}
	return out
}

// FilterStrings returns the items matching query, preserving order.
func FilterStrings(p Provider, items []string, query string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if p.MatchString(s, query) {
			out = append(out, s)
		}
	}
	return out
}

// Provider names accepted by New.
const (
	ProviderToken     = "token"
	ProviderSubstring = "substring"
	ProviderRegex     = "regex"
)

// ProviderName maps the --regex and --exact flags to a provider name.
// Without either flag queries are matched word by word.
func ProviderName(regex, exact bool) string {
	switch {
	case regex:
		return ProviderRegex
	case exact:
		return ProviderSubstring
	default:
		return ProviderToken
	}
}

// New returns the provider registered under name, or a substring provider
// when name is unknown.
func New(name string, opts ...Option) Provider {
	switch name {
	case ProviderRegex:
		return NewRegexProvider(opts...)
	case ProviderToken:
		return NewTokenProvider(opts...)
	default:
		return NewSubstringProvider(opts...)
	}
}
