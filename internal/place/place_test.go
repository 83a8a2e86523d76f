package place

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandidateIsValid(t *testing.T) {
	tests := []struct {
		name      string
		candidate *Candidate
		want      bool
	}{
		{"nil candidate", nil, false},
		{"empty candidate", &Candidate{}, false},
		{"name only", &Candidate{PlaceName: "Old Town Noodle House"}, true},
		{"city only", &Candidate{City: "Chengdu"}, true},
		{"name and city", &Candidate{PlaceName: "Old Town Noodle House", City: "Chengdu"}, true},
		{"address alone is not enough", &Candidate{Address: "12 Jinli St"}, false},
		{"foods alone are not enough", &Candidate{Foods: []Food{{Name: "Dandan Noodles"}}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.candidate.IsValid())
		})
	}
}

func TestParseFoods(t *testing.T) {
	foods, err := ParseFoods(`[{"name":"Dandan Noodles","description":"spicy","tags":["noodles","sichuan"]}]`)
	require.NoError(t, err)
	require.Len(t, foods, 1)
	assert.Equal(t, "Dandan Noodles", foods[0].Name)
	assert.Equal(t, []string{"noodles", "sichuan"}, foods[0].Tags)
}

func TestParseFoodsEmpty(t *testing.T) {
	foods, err := ParseFoods("")
	require.NoError(t, err)
	assert.Nil(t, foods)
}

func TestParseFoodsMalformed(t *testing.T) {
	_, err := ParseFoods(`{"name":"not a list"`)
	require.Error(t, err)
}

func TestParseFoodsPreservesOrder(t *testing.T) {
	foods, err := ParseFoods(`[{"name":"a"},{"name":"b"},{"name":"c"}]`)
	require.NoError(t, err)
	require.Len(t, foods, 3)
	assert.Equal(t, "a", foods[0].Name)
	assert.Equal(t, "b", foods[1].Name)
	assert.Equal(t, "c", foods[2].Name)
}
