package catalog

import (
	"fmt"
	"log/slog"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lepinkainen/foodmap/internal/fileutil"
	"github.com/lepinkainen/foodmap/internal/place"
)

// noteFrontmatter is the YAML frontmatter of an exported place note.
type noteFrontmatter struct {
	Title     string   `yaml:"title"`
	City      string   `yaml:"city,omitempty"`
	Province  string   `yaml:"province,omitempty"`
	Address   string   `yaml:"address,omitempty"`
	Lng       *float64 `yaml:"lng,omitempty"`
	Lat       *float64 `yaml:"lat,omitempty"`
	VideoURL  string   `yaml:"video,omitempty"`
	AddedDate string   `yaml:"added,omitempty"`
	Tags      []string `yaml:"tags,omitempty"`
}

// WriteMarkdownNote renders a place as a markdown note with YAML frontmatter
// and writes it under the given directory. Returns true if a file was
// written, false if an existing note was kept.
func WriteMarkdownNote(p place.Place, dir string, overwrite bool) (bool, error) {
	fm := noteFrontmatter{
		Title:     p.Name,
		City:      p.City,
		Province:  p.Province,
		Address:   p.Address,
		VideoURL:  p.VideoURL,
		AddedDate: p.AddedDate,
		Tags:      collectTags(p),
	}
	if p.Location != nil {
		fm.Lng = &p.Location.Lng
		fm.Lat = &p.Location.Lat
	}

	fmBytes, err := yaml.Marshal(fm)
	if err != nil {
		return false, fmt.Errorf("failed to marshal frontmatter: %w", err)
	}

	var body strings.Builder
	body.WriteString("---\n")
	body.Write(fmBytes)
	body.WriteString("---\n\n")

	if p.Thumbnail != "" {
		fmt.Fprintf(&body, "![](%s)\n\n", p.Thumbnail)
	}

	if len(p.Foods) > 0 {
		body.WriteString("## Foods\n\n")
		for _, food := range p.Foods {
			fmt.Fprintf(&body, "### %s\n\n", food.Name)
			if food.Description != "" {
				body.WriteString(food.Description + "\n\n")
			}
		}
	}

	path := fileutil.MarkdownFilePath(p.Name, dir)
	written, err := fileutil.WriteFileWithOverwrite(path, []byte(body.String()), 0644, overwrite)
	if err != nil {
		return false, err
	}
	if !written {
		slog.Info("Markdown note already exists, skipping", "path", path)
	}
	return written, nil
}

// collectTags gathers food tags into note tags, normalized the way a vault
// expects them (lowercase, dashes, food/ prefix).
func collectTags(p place.Place) []string {
	seen := make(map[string]bool)
	var tags []string
	for _, food := range p.Foods {
		for _, tag := range food.Tags {
			normalized := normalizeTag(tag)
			if normalized == "" || seen[normalized] {
				continue
			}
			seen[normalized] = true
			tags = append(tags, "food/"+normalized)
		}
	}
	return tags
}

func normalizeTag(tag string) string {
	tag = strings.TrimSpace(strings.TrimPrefix(tag, "#"))
	tag = strings.ToLower(tag)
	tag = strings.ReplaceAll(tag, " ", "-")
	return tag
}
