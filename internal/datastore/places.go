package datastore

import (
	"encoding/json"
	"fmt"

	"github.com/lepinkainen/foodmap/internal/cmdutil"
	"github.com/lepinkainen/foodmap/internal/place"
)

// PlacesTable is the mirror table name.
const PlacesTable = "places"

// PlacesSchema defines the Datasette-facing places table.
const PlacesSchema = `
CREATE TABLE IF NOT EXISTS places (
	id TEXT PRIMARY KEY NOT NULL,
	name TEXT NOT NULL,
	address TEXT,
	city TEXT,
	province TEXT,
	lng REAL,
	lat REAL,
	foods TEXT,
	food_count INTEGER,
	thumbnail TEXT,
	video_url TEXT,
	added_date TEXT
);
`

// MirrorCatalog rewrites the places table from the full catalog contents.
func MirrorCatalog(store Store, places []place.Place) error {
	if err := store.CreateTable(PlacesSchema); err != nil {
		return err
	}
	if err := store.Reset(PlacesTable); err != nil {
		return err
	}

	records := make([]map[string]any, 0, len(places))
	for _, p := range places {
		row, err := placeRow(p)
		if err != nil {
			return err
		}
		records = append(records, row)
	}

	return store.BatchInsert(PlacesTable, records)
}

// placeRow flattens a place record into mirror columns. Foods are kept as a
// JSON blob; coordinates are split so Datasette map plugins can use them.
func placeRow(p place.Place) (map[string]any, error) {
	row := cmdutil.StructToMap(p, cmdutil.StructToMapOptions{
		OmitFields: map[string]bool{
			"Location": true,
			"Foods":    true,
		},
	})

	row["food_count"] = len(p.Foods)

	if p.Location != nil {
		row["lng"] = p.Location.Lng
		row["lat"] = p.Location.Lat
	} else {
		row["lng"] = nil
		row["lat"] = nil
	}

	foods, err := json.Marshal(p.Foods)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal foods for mirror: %w", err)
	}
	row["foods"] = string(foods)

	return row, nil
}
