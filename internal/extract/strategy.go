// Package extract implements the fallback chain that turns a video reference
// into a place record: provider-backed extraction strategies tried in fixed
// priority order, a validity gate deciding when to stop, and the final
// assembly of the persisted record.
package extract

import (
	"context"

	"github.com/lepinkainen/foodmap/internal/deepseek"
	"github.com/lepinkainen/foodmap/internal/place"
)

// Metadata is the title/description/cover triple retrieved for a video.
// Any field may be empty; retrieval failure degrades to the zero value.
type Metadata struct {
	Title       string
	Description string
	CoverURL    string
}

// MetadataSource retrieves metadata for a video reference. Sources are tried
// in order; a failing source is skipped, not fatal.
type MetadataSource interface {
	Fetch(ctx context.Context, videoURL string) (Metadata, error)
}

// SourceFunc adapts a plain function to the MetadataSource interface.
type SourceFunc func(ctx context.Context, videoURL string) (Metadata, error)

// Fetch implements MetadataSource.
func (f SourceFunc) Fetch(ctx context.Context, videoURL string) (Metadata, error) {
	return f(ctx, videoURL)
}

// Input is everything a strategy may draw on for one extraction attempt.
type Input struct {
	VideoURL    string
	Title       string
	Description string
	CoverURL    string
}

// Strategy is one extraction method in the fallback chain. Attempt returns
// nil when the strategy is skipped or fails; provider faults and parse errors
// are absorbed at this boundary and never surface as errors.
type Strategy interface {
	Name() string
	Attempt(ctx context.Context, in Input) *place.Candidate
}

// Completer is the chat-completions capability the AI strategies need.
// Satisfied by *deepseek.Client.
type Completer interface {
	Complete(ctx context.Context, model string, messages []deepseek.Message) (string, error)
}

// Geocoder resolves an address/city pair to coordinates.
// Satisfied by *amap.Client.
type Geocoder interface {
	Geocode(ctx context.Context, address, city string) (*place.Coordinates, error)
}

// Appender persists one assembled record and reports the new catalog size.
// Satisfied by *catalog.Store.
type Appender interface {
	Append(p place.Place) (int, error)
}

// Prompter supplies the interactive fallbacks. A nil Prompter (or
// non-interactive mode) removes manual entry from the chain.
type Prompter interface {
	// Metadata asks for title and description when no source could
	// retrieve them.
	Metadata(ctx context.Context) (Metadata, error)
	// Candidate asks for the full place record. Its answer is adopted
	// verbatim, even when still invalid.
	Candidate(ctx context.Context) (*place.Candidate, error)
	// Coordinates asks for a manual location; nil means the user skipped.
	Coordinates(ctx context.Context) (*place.Coordinates, error)
}
