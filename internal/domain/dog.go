// Package domain provides the domain layer for the dog finder.
// It contains the records returned by the shelter service, the filter
// state driving catalog searches, and the failure taxonomy surfaced to users.
package domain

import (
	"fmt"
	"strings"
)

// MaxHydrationIDs is the largest id list the service resolves in one call.
const MaxHydrationIDs = 100

// Dog is a full shelter record as returned by POST /dogs.
type Dog struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Age      int    `json:"age"`
	Breed    string `json:"breed"`
	ZipCode  string `json:"zip_code"`
	ImageURL string `json:"img"`
}

// Validate checks the invariants a hydrated record must hold.
func (d Dog) Validate() error {
	if strings.TrimSpace(d.ID) == "" {
		return fmt.Errorf("dog id cannot be empty")
	}
	if d.Age < 0 {
		return fmt.Errorf("dog %s: age cannot be negative: %d", d.ID, d.Age)
	}
	return nil
}

// AgeLabel renders the age for display.
func (d Dog) AgeLabel() string {
	switch d.Age {
	case 0:
		return "<1 yr"
	case 1:
		return "1 yr"
	default:
		return fmt.Sprintf("%d yrs", d.Age)
	}
}

// DogIDs extracts the ids of the given dogs preserving order.
func DogIDs(dogs []Dog) []string {
	ids := make([]string, len(dogs))
	for i, d := range dogs {
		ids[i] = d.ID
	}
	return ids
}
