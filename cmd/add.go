package cmd

import (
	"context"
	"log/slog"

	"github.com/lepinkainen/foodmap/internal/amap"
	"github.com/lepinkainen/foodmap/internal/catalog"
	"github.com/lepinkainen/foodmap/internal/cmdutil"
	"github.com/lepinkainen/foodmap/internal/config"
	"github.com/lepinkainen/foodmap/internal/datastore"
	"github.com/lepinkainen/foodmap/internal/deepseek"
	"github.com/lepinkainen/foodmap/internal/extract"
	"github.com/lepinkainen/foodmap/internal/place"
	"github.com/lepinkainen/foodmap/internal/scrape"
	"github.com/lepinkainen/foodmap/internal/tikhub"
	"github.com/lepinkainen/foodmap/internal/tui"
)

// AddCmd represents the add command
type AddCmd struct {
	URL            string `arg:"" help:"Video share link to extract a place from"`
	NonInteractive bool   `help:"Fail instead of prompting when extraction needs human input"`
	Scrape         bool   `help:"Fall back to a headless browser when metadata retrieval fails"`

	// Manual overrides. Name and city together skip all provider calls.
	Name     string `help:"Override: place name"`
	Address  string `help:"Override: street address"`
	City     string `help:"Override: city"`
	Province string `help:"Override: province"`
	Foods    string `help:"Override: JSON-encoded food list"`
}

var runPipeline = executePipeline

func (a *AddCmd) Run() error {
	cfg := config.Load()
	cfg.NonInteractive = a.NonInteractive
	if a.Scrape {
		cfg.ScrapeFallback = true
	}

	rec, count, err := runPipeline(context.Background(), cfg, a.URL, a.suppliedCandidate())
	if err != nil {
		return err
	}

	if cfg.WriteMarkdown {
		if err := writeMarkdownNote(cfg, rec); err != nil {
			slog.Warn("Failed to write markdown note", "error", err)
		}
	}
	if cfg.Datasette {
		if err := mirrorCatalog(cfg); err != nil {
			slog.Warn("Failed to mirror catalog", "error", err)
		}
	}

	slog.Info("Place added", "name", rec.Name, "city", rec.City, "count", count)
	return nil
}

// suppliedCandidate builds the manual-supplied candidate from override flags.
// Malformed foods JSON is a warning, not a fatal error.
func (a *AddCmd) suppliedCandidate() *place.Candidate {
	if a.Name == "" && a.Address == "" && a.City == "" && a.Province == "" && a.Foods == "" {
		return nil
	}

	foods, err := place.ParseFoods(a.Foods)
	if err != nil {
		slog.Warn("Ignoring malformed foods override", "error", err)
		foods = nil
	}

	return &place.Candidate{
		PlaceName: a.Name,
		Address:   a.Address,
		City:      a.City,
		Province:  a.Province,
		Foods:     foods,
	}
}

func executePipeline(ctx context.Context, cfg *config.Config, videoURL string, supplied *place.Candidate) (*place.Place, int, error) {
	if err := cmdutil.EnsureDirs(cfg.DataDir, cfg.ImageDir); err != nil {
		return nil, 0, err
	}

	pipeline := extract.New(buildPipelineOptions(cfg))
	return pipeline.Run(ctx, videoURL, supplied)
}

// buildPipelineOptions translates configuration into the pipeline's explicit
// capability set. Unconfigured providers are simply left out.
func buildPipelineOptions(cfg *config.Config) extract.Options {
	var sources []extract.MetadataSource
	if cfg.TikHubAPIKey != "" {
		client := tikhub.NewClient(cfg.TikHubAPIKey)
		sources = append(sources, extract.SourceFunc(func(ctx context.Context, videoURL string) (extract.Metadata, error) {
			info, err := client.GetVideoInfo(ctx, videoURL)
			if err != nil {
				return extract.Metadata{}, err
			}
			return extract.Metadata{
				Title:       info.Title,
				Description: info.Description,
				CoverURL:    info.CoverURL,
			}, nil
		}))
	}
	if cfg.ScrapeFallback {
		sources = append(sources, extract.SourceFunc(func(ctx context.Context, videoURL string) (extract.Metadata, error) {
			meta, err := scrape.FetchMetadata(ctx, videoURL, scrape.Options{Headless: true})
			if err != nil {
				return extract.Metadata{}, err
			}
			return extract.Metadata{
				Title:       meta.Title,
				Description: meta.Description,
				CoverURL:    meta.CoverURL,
			}, nil
		}))
	}

	var strategies []extract.Strategy
	if cfg.DeepSeekAPIKey != "" {
		ai := deepseek.NewClient(cfg.DeepSeekAPIKey)
		if cfg.VideoModel != "" {
			strategies = append(strategies, &extract.VideoStrategy{Client: ai, Model: cfg.VideoModel})
		}
		if cfg.ImageModel != "" {
			strategies = append(strategies, &extract.ImageStrategy{Client: ai, Model: cfg.ImageModel})
		}
		if cfg.TextModel != "" {
			strategies = append(strategies, &extract.TextStrategy{Client: ai, Model: cfg.TextModel})
		}
	}

	var geocoder extract.Geocoder
	if cfg.AmapAPIKey != "" {
		geocoder = amap.NewClient(cfg.AmapAPIKey)
	}

	var prompter extract.Prompter
	if !cfg.NonInteractive {
		prompter = tui.Prompter{}
	}

	return extract.Options{
		Sources:     sources,
		Strategies:  strategies,
		Geocoder:    geocoder,
		Prompter:    prompter,
		Store:       catalog.NewStore(cfg.CatalogPath()),
		ImageDir:    cfg.ImageDir,
		Interactive: !cfg.NonInteractive,
	}
}

func writeMarkdownNote(cfg *config.Config, rec *place.Place) error {
	if err := cmdutil.EnsureDirs(cfg.MarkdownDir); err != nil {
		return err
	}
	_, err := catalog.WriteMarkdownNote(*rec, cfg.MarkdownDir, cfg.OverwriteFiles)
	return err
}

var mirrorCatalog = func(cfg *config.Config) error {
	cat, err := catalog.NewStore(cfg.CatalogPath()).Load()
	if err != nil {
		return err
	}

	store := datastore.NewSQLiteStore(cfg.DatasetteDB)
	if err := store.Connect(); err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	return datastore.MirrorCatalog(store, cat.Places)
}
