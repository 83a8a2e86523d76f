package cmdutil

import (
	"fmt"
	"os"
)

// EnsureDirs creates the directories a pipeline run writes into. Empty
// entries are skipped so optional outputs need no special casing.
func EnsureDirs(dirs ...string) error {
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}
