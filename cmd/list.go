package cmd

import (
	"fmt"

	"github.com/lepinkainen/foodmap/internal/catalog"
	"github.com/lepinkainen/foodmap/internal/config"
)

// ListCmd represents the list command
type ListCmd struct{}

func (l *ListCmd) Run() error {
	cfg := config.Load()

	cat, err := catalog.NewStore(cfg.CatalogPath()).Load()
	if err != nil {
		return err
	}

	if len(cat.Places) == 0 {
		fmt.Println("Catalog is empty.")
		return nil
	}

	for i, p := range cat.Places {
		line := fmt.Sprintf("%3d. %s", i+1, p.Name)
		if p.City != "" {
			line += fmt.Sprintf(" (%s)", p.City)
		}
		if len(p.Foods) > 0 {
			line += fmt.Sprintf(" - %d foods", len(p.Foods))
		}
		fmt.Println(line)
	}
	fmt.Printf("\n%d places total\n", len(cat.Places))

	return nil
}
