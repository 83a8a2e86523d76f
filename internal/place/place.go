// Package place defines the data model shared by the extraction pipeline
// and the catalog store.
package place

import (
	"encoding/json"
	"fmt"
)

// DefaultName is substituted for an empty place name at final assembly.
// Validity checks always run before this default is applied.
const DefaultName = "unnamed place"

// Food is a single dish associated with a place.
type Food struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// Coordinates is a longitude/latitude pair. A nil *Coordinates means the
// location could not be resolved.
type Coordinates struct {
	Lng float64 `json:"lng"`
	Lat float64 `json:"lat"`
}

// Candidate is the normalized, unvalidated output of a single extraction
// strategy. All fields may be empty.
type Candidate struct {
	PlaceName string `json:"place_name"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Province  string `json:"province"`
	Foods     []Food `json:"foods"`
}

// IsValid reports whether the candidate is good enough to stop the fallback
// chain: either the place name or the city must be non-empty. A nil candidate
// is never valid.
func (c *Candidate) IsValid() bool {
	if c == nil {
		return false
	}
	return c.PlaceName != "" || c.City != ""
}

// Place is a persisted catalog entry. Created once per successful pipeline
// run and never mutated afterwards.
type Place struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Address   string       `json:"address"`
	City      string       `json:"city"`
	Province  string       `json:"province"`
	Location  *Coordinates `json:"location"`
	Foods     []Food       `json:"foods"`
	Thumbnail string       `json:"thumbnail,omitempty"`
	VideoURL  string       `json:"videoUrl"`
	AddedDate string       `json:"addedDate"`
}

// ParseFoods decodes a JSON-encoded food list, as accepted by the CLI
// override flag.
func ParseFoods(raw string) ([]Food, error) {
	if raw == "" {
		return nil, nil
	}
	var foods []Food
	if err := json.Unmarshal([]byte(raw), &foods); err != nil {
		return nil, fmt.Errorf("invalid foods JSON: %w", err)
	}
	return foods, nil
}
