package extract

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lepinkainen/foodmap/internal/errors"
	"github.com/lepinkainen/foodmap/internal/fileutil"
	"github.com/lepinkainen/foodmap/internal/place"
)

// Options configures a Pipeline. Every provider is optional; an absent one
// simply drops its strategy or step from the run.
type Options struct {
	// Sources retrieve video metadata, tried in order.
	Sources []MetadataSource
	// Strategies are the provider-backed extraction strategies in priority
	// order. Manual entry is not part of this list; it is the terminal
	// fallback owned by the pipeline itself.
	Strategies []Strategy
	// Geocoder resolves the candidate's address/city. Nil skips geocoding.
	Geocoder Geocoder
	// Prompter supplies interactive fallbacks. Ignored unless Interactive.
	Prompter Prompter
	// Store persists the assembled record.
	Store Appender
	// ImageDir is where downloaded thumbnails land.
	ImageDir string
	// ThumbClient overrides the thumbnail HTTP client, mainly for tests.
	ThumbClient fileutil.HTTPDoer
	// Interactive enables the manual-entry fallbacks. When false, an
	// exhausted strategy chain is fatal.
	Interactive bool
}

// Pipeline runs the extraction fallback chain for one video reference and
// appends the result to the catalog. Strictly sequential; no step runs
// concurrently with another and no step is retried.
type Pipeline struct {
	opts Options

	now   func() time.Time
	newID func() string
}

// New creates a pipeline from explicit options. Provider configuration is
// decided by the caller; the pipeline never reads ambient state.
func New(opts Options) *Pipeline {
	return &Pipeline{
		opts:  opts,
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
}

// Run executes the chain for videoURL. A supplied candidate that already
// passes the validity gate short-circuits everything up to geocoding; no
// metadata is fetched and no provider strategy runs.
//
// Run fails only when the chain is exhausted in non-interactive mode, or on
// a persistence error. Everything else degrades.
func (p *Pipeline) Run(ctx context.Context, videoURL string, supplied *place.Candidate) (*place.Place, int, error) {
	var (
		cand *place.Candidate
		meta Metadata
	)

	if supplied.IsValid() {
		slog.Info("Using supplied place details", "name", supplied.PlaceName, "city", supplied.City)
		cand = supplied
	} else {
		meta = p.fetchMetadata(ctx, videoURL)

		in := Input{
			VideoURL:    videoURL,
			Title:       meta.Title,
			Description: meta.Description,
			CoverURL:    meta.CoverURL,
		}

		for _, s := range p.opts.Strategies {
			got := s.Attempt(ctx, in)
			if got.IsValid() {
				slog.Info("Extraction strategy succeeded", "strategy", s.Name(), "name", got.PlaceName, "city", got.City)
				cand = got
				break
			}
			slog.Debug("Extraction strategy produced no candidate", "strategy", s.Name())
		}

		if cand == nil {
			if !p.opts.Interactive || p.opts.Prompter == nil {
				return nil, 0, errors.NewStopProcessingError(
					"no extraction strategy produced a usable record; configure a provider API key or supply --name/--city overrides")
			}
			manual, err := p.opts.Prompter.Candidate(ctx)
			if err != nil {
				return nil, 0, err
			}
			// Manual entry terminates the chain with whatever the user
			// gave, valid or not.
			cand = manual
		}
	}

	if cand == nil {
		cand = &place.Candidate{}
	}

	location := p.resolveLocation(ctx, cand)
	thumbnail := p.fetchThumbnail(ctx, meta.CoverURL)

	rec := place.Place{
		ID:        p.newID(),
		Name:      cand.PlaceName,
		Address:   cand.Address,
		City:      cand.City,
		Province:  cand.Province,
		Location:  location,
		Foods:     cand.Foods,
		Thumbnail: thumbnail,
		VideoURL:  videoURL,
		AddedDate: p.now().UTC().Format(time.RFC3339),
	}
	if rec.Name == "" {
		rec.Name = place.DefaultName
	}
	if rec.Foods == nil {
		rec.Foods = []place.Food{}
	}

	count, err := p.opts.Store.Append(rec)
	if err != nil {
		return nil, 0, err
	}

	slog.Info("Catalog updated", "name", rec.Name, "count", count)
	return &rec, count, nil
}

// fetchMetadata tries each source in order and degrades to empty metadata.
// In interactive mode the prompter gets a final say.
func (p *Pipeline) fetchMetadata(ctx context.Context, videoURL string) Metadata {
	for _, src := range p.opts.Sources {
		meta, err := src.Fetch(ctx, videoURL)
		if err != nil {
			slog.Warn("Metadata retrieval failed", "error", err)
			continue
		}
		return meta
	}

	if p.opts.Interactive && p.opts.Prompter != nil {
		meta, err := p.opts.Prompter.Metadata(ctx)
		if err != nil {
			slog.Warn("Manual metadata entry failed", "error", err)
			return Metadata{}
		}
		return meta
	}

	return Metadata{}
}

// resolveLocation geocodes the candidate's address/city. Failure or absence
// degrades to nil; interactive mode may still collect manual coordinates.
func (p *Pipeline) resolveLocation(ctx context.Context, cand *place.Candidate) *place.Coordinates {
	if p.opts.Geocoder != nil && (cand.Address != "" || cand.City != "") {
		coords, err := p.opts.Geocoder.Geocode(ctx, cand.Address, cand.City)
		if err != nil {
			slog.Warn("Geocoding failed", "error", err)
		} else if coords != nil {
			return coords
		}
	}

	if p.opts.Interactive && p.opts.Prompter != nil {
		coords, err := p.opts.Prompter.Coordinates(ctx)
		if err != nil {
			slog.Warn("Manual coordinate entry failed", "error", err)
			return nil
		}
		return coords
	}

	return nil
}

// fetchThumbnail downloads the cover image when one was seen during
// extraction. Failure degrades to an absent thumbnail.
func (p *Pipeline) fetchThumbnail(ctx context.Context, coverURL string) string {
	if coverURL == "" {
		return ""
	}

	path, err := fileutil.DownloadThumbnail(ctx, fileutil.ThumbnailOptions{
		URL:      coverURL,
		ImageDir: p.opts.ImageDir,
		Client:   p.opts.ThumbClient,
	})
	if err != nil {
		slog.Warn("Thumbnail download failed", "error", err)
		return ""
	}
	return path
}
