package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripFences(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  string
	}{
		{"bare json", `{"city": "Chengdu"}`, `{"city": "Chengdu"}`},
		{"json fence", "```json\n{\"city\": \"Chengdu\"}\n```", `{"city": "Chengdu"}`},
		{"plain fence", "```\n{\"city\": \"Chengdu\"}\n```", `{"city": "Chengdu"}`},
		{"leading whitespace", "  ```json\n{}\n```  ", "{}"},
		{"no trailing fence", "```json\n{}", "{}"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripFences(tt.reply))
		})
	}
}

func TestParseCandidateFencedEqualsBare(t *testing.T) {
	bare := `{"place_name": "Old Town Noodle House", "city": "Chengdu", "foods": [{"name": "Dandan Noodles"}]}`
	fenced := "```json\n" + bare + "\n```"

	fromBare, err := ParseCandidate(bare)
	require.NoError(t, err)
	fromFenced, err := ParseCandidate(fenced)
	require.NoError(t, err)

	assert.Equal(t, fromBare, fromFenced)
	assert.Equal(t, "Old Town Noodle House", fromFenced.PlaceName)
	assert.Len(t, fromFenced.Foods, 1)
}

func TestParseCandidateMissingFieldsDefault(t *testing.T) {
	cand, err := ParseCandidate(`{"city": "Chongqing"}`)
	require.NoError(t, err)

	assert.Equal(t, "", cand.PlaceName)
	assert.Equal(t, "Chongqing", cand.City)
	assert.Empty(t, cand.Foods)
	assert.True(t, cand.IsValid())
}

func TestParseCandidateNonJSON(t *testing.T) {
	_, err := ParseCandidate("sorry, I could not find any place information")
	assert.Error(t, err)
}
