package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/lepinkainen/foodmap/internal/extract"
	"github.com/lepinkainen/foodmap/internal/place"
)

// Prompter collects pipeline fallback input through terminal forms.
type Prompter struct{}

// Metadata asks for a title and description when no source could retrieve
// them.
func (Prompter) Metadata(_ context.Context) (extract.Metadata, error) {
	values, err := RunForm("Enter video details", []Field{
		{Label: "Title"},
		{Label: "Description"},
	})
	if err != nil {
		return extract.Metadata{}, err
	}

	return extract.Metadata{
		Title:       values[0],
		Description: values[1],
	}, nil
}

// Candidate collects a full place record: the place fields, then foods one
// at a time until the user leaves a food name empty.
func (Prompter) Candidate(_ context.Context) (*place.Candidate, error) {
	values, err := RunForm("Enter place details", []Field{
		{Label: "Place name"},
		{Label: "Address"},
		{Label: "City"},
		{Label: "Province"},
	})
	if err != nil {
		return nil, err
	}

	cand := &place.Candidate{
		PlaceName: values[0],
		Address:   values[1],
		City:      values[2],
		Province:  values[3],
		Foods:     []place.Food{},
	}

	for i := 1; ; i++ {
		food, err := RunForm(fmt.Sprintf("Food #%d", i), []Field{
			{Label: "Name", Placeholder: "leave empty to finish"},
			{Label: "Description"},
			{Label: "Tags", Placeholder: "comma separated"},
		})
		if err != nil {
			return nil, err
		}
		if food[0] == "" {
			break
		}

		cand.Foods = append(cand.Foods, place.Food{
			Name:        food[0],
			Description: food[1],
			Tags:        splitTags(food[2]),
		})
	}

	return cand, nil
}

// Coordinates asks for a manual location. Leaving both fields empty skips;
// unparseable numbers also skip rather than failing the run.
func (Prompter) Coordinates(_ context.Context) (*place.Coordinates, error) {
	values, err := RunForm("Enter coordinates", []Field{
		{Label: "Longitude", Placeholder: "leave empty to skip"},
		{Label: "Latitude"},
	})
	if err != nil {
		return nil, err
	}
	if values[0] == "" && values[1] == "" {
		return nil, nil
	}

	lng, lngErr := strconv.ParseFloat(values[0], 64)
	lat, latErr := strconv.ParseFloat(values[1], 64)
	if lngErr != nil || latErr != nil {
		slog.Warn("Ignoring unparseable coordinates", "lng", values[0], "lat", values[1])
		return nil, nil
	}

	return &place.Coordinates{Lng: lng, Lat: lat}, nil
}

// splitTags turns a comma-separated answer into a tag list, preserving the
// order given.
func splitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
