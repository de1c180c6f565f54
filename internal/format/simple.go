package format

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dogfinder/dogfinder/internal/domain"
)

// historyTimeLayout is the timestamp layout used for match history output.
const historyTimeLayout = "2006-01-02 15:04"

// SimpleFormatter formats one record per line.
type SimpleFormatter struct{}

// NewSimpleFormatter creates a new SimpleFormatter.
func NewSimpleFormatter() *SimpleFormatter {
	return &SimpleFormatter{}
}

// FormatDogs writes "id  name (breed, age) zip" lines.
func (f *SimpleFormatter) FormatDogs(dogs []domain.Dog, writer io.Writer) error {
	for _, d := range dogs {
		_, err := fmt.Fprintf(writer, "%s  %s (%s, %s) %s\n", d.ID, d.Name, d.Breed, d.AgeLabel(), d.ZipCode)
		if err != nil {
			return err
		}
	}
	return nil
}

// FormatHistory writes "time  name (breed) from N favorites" lines.
func (f *SimpleFormatter) FormatHistory(records []domain.MatchRecord, writer io.Writer) error {
	for _, r := range records {
		_, err := fmt.Fprintf(writer, "%s  %s (%s) from %d favorites\n",
			r.MatchedAt.Local().Format(historyTimeLayout), r.DogName, r.Breed, r.FavoritesCount)
		if err != nil {
			return err
		}
	}
	return nil
}

// JSONFormatter formats records as an indented JSON array.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// FormatDogs writes dogs as JSON.
func (f *JSONFormatter) FormatDogs(dogs []domain.Dog, writer io.Writer) error {
	if dogs == nil {
		dogs = []domain.Dog{}
	}
	return writeJSON(dogs, writer)
}

// FormatHistory writes records as JSON.
func (f *JSONFormatter) FormatHistory(records []domain.MatchRecord, writer io.Writer) error {
	if records == nil {
		records = []domain.MatchRecord{}
	}
	return writeJSON(records, writer)
}

func writeJSON(v any, writer io.Writer) error {
	enc := json.NewEncoder(writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
