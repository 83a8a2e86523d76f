package extract

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lepinkainen/foodmap/internal/place"
)

// StripFences removes the markdown code-fence markers models like to wrap
// JSON replies in. Only the literal leading "```json" / "```" and trailing
// "```" forms are handled; anything else is left alone.
func StripFences(reply string) string {
	s := strings.TrimSpace(reply)
	if strings.HasPrefix(s, "```json") {
		s = s[len("```json"):]
	}
	if strings.HasPrefix(s, "```") {
		s = s[len("```"):]
	}
	if strings.HasSuffix(s, "```") {
		s = s[:len(s)-len("```")]
	}
	return strings.TrimSpace(s)
}

// ParseCandidate decodes a provider reply into a candidate record. Missing
// fields decode to their zero values; a non-JSON reply is an error the
// calling strategy absorbs.
func ParseCandidate(reply string) (*place.Candidate, error) {
	cleaned := StripFences(reply)

	var cand place.Candidate
	if err := json.Unmarshal([]byte(cleaned), &cand); err != nil {
		return nil, fmt.Errorf("failed to parse extraction reply: %w", err)
	}
	return &cand, nil
}
