package extract

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/foodmap/internal/catalog"
	"github.com/lepinkainen/foodmap/internal/errors"
	"github.com/lepinkainen/foodmap/internal/place"
)

type fakeStrategy struct {
	name  string
	cand  *place.Candidate
	calls int
	order *[]string
}

func (s *fakeStrategy) Name() string { return s.name }

func (s *fakeStrategy) Attempt(_ context.Context, _ Input) *place.Candidate {
	s.calls++
	if s.order != nil {
		*s.order = append(*s.order, s.name)
	}
	return s.cand
}

type fakeGeocoder struct {
	coords *place.Coordinates
	err    error

	calls       int
	lastAddress string
	lastCity    string
}

func (g *fakeGeocoder) Geocode(_ context.Context, address, city string) (*place.Coordinates, error) {
	g.calls++
	g.lastAddress = address
	g.lastCity = city
	return g.coords, g.err
}

type fakePrompter struct {
	meta   Metadata
	cand   *place.Candidate
	coords *place.Coordinates

	metaCalls   int
	candCalls   int
	coordsCalls int
}

func (p *fakePrompter) Metadata(_ context.Context) (Metadata, error) {
	p.metaCalls++
	return p.meta, nil
}

func (p *fakePrompter) Candidate(_ context.Context) (*place.Candidate, error) {
	p.candCalls++
	return p.cand, nil
}

func (p *fakePrompter) Coordinates(_ context.Context) (*place.Coordinates, error) {
	p.coordsCalls++
	return p.coords, nil
}

func newTestPipeline(t *testing.T, opts Options) (*Pipeline, *catalog.Store) {
	t.Helper()

	store := catalog.NewStore(filepath.Join(t.TempDir(), "places.json"))
	opts.Store = store
	if opts.ImageDir == "" {
		opts.ImageDir = t.TempDir()
	}

	p := New(opts)
	p.now = func() time.Time {
		return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	}
	p.newID = func() string { return "test-id" }
	return p, store
}

func TestRunSuppliedCandidateSkipsProviders(t *testing.T) {
	sourceCalls := 0
	strategy := &fakeStrategy{name: "text-understanding", cand: &place.Candidate{PlaceName: "never used"}}

	p, _ := newTestPipeline(t, Options{
		Sources: []MetadataSource{SourceFunc(func(context.Context, string) (Metadata, error) {
			sourceCalls++
			return Metadata{}, nil
		})},
		Strategies: []Strategy{strategy},
	})

	supplied := &place.Candidate{PlaceName: "Old Town Noodle House", City: "Chengdu"}
	rec, count, err := p.Run(context.Background(), "https://v.douyin.com/v1", supplied)
	require.NoError(t, err)

	assert.Equal(t, 0, sourceCalls, "supplied candidate must skip metadata retrieval")
	assert.Equal(t, 0, strategy.calls, "supplied candidate must skip provider strategies")
	assert.Equal(t, "Old Town Noodle House", rec.Name)
	assert.Equal(t, 1, count)
}

func TestRunStrategyOrderAndShortCircuit(t *testing.T) {
	var order []string
	video := &fakeStrategy{name: "video-understanding", order: &order}
	image := &fakeStrategy{name: "image-understanding", order: &order, cand: &place.Candidate{City: "Chengdu"}}
	text := &fakeStrategy{name: "text-understanding", order: &order, cand: &place.Candidate{PlaceName: "never reached"}}

	p, _ := newTestPipeline(t, Options{
		Strategies: []Strategy{video, image, text},
	})

	rec, _, err := p.Run(context.Background(), "https://v.douyin.com/v1", nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"video-understanding", "image-understanding"}, order)
	assert.Equal(t, 0, text.calls, "chain must stop at the first valid candidate")
	assert.Equal(t, "Chengdu", rec.City)
	assert.Equal(t, place.DefaultName, rec.Name, "empty name defaults only at assembly")
}

func TestRunExhaustedNonInteractive(t *testing.T) {
	strategy := &fakeStrategy{name: "text-understanding"}
	p, store := newTestPipeline(t, Options{
		Strategies: []Strategy{strategy},
	})

	_, _, err := p.Run(context.Background(), "https://v.douyin.com/v1", nil)
	require.Error(t, err)
	assert.True(t, errors.IsStopProcessingError(err))

	cat, loadErr := store.Load()
	require.NoError(t, loadErr)
	assert.Empty(t, cat.Places, "a fatal run must not touch the catalog")
}

func TestRunExhaustedInteractiveFallsToManualEntry(t *testing.T) {
	prompter := &fakePrompter{cand: &place.Candidate{}}
	p, _ := newTestPipeline(t, Options{
		Strategies:  []Strategy{&fakeStrategy{name: "text-understanding"}},
		Prompter:    prompter,
		Interactive: true,
	})

	rec, count, err := p.Run(context.Background(), "https://v.douyin.com/v1", nil)
	require.NoError(t, err)

	assert.Equal(t, 1, prompter.candCalls)
	assert.Equal(t, place.DefaultName, rec.Name, "manual entry is adopted even when invalid")
	assert.Equal(t, 1, count)
}

func TestRunMetadataSourceFallback(t *testing.T) {
	var seen Input
	capture := &strategyCapture{in: &seen, cand: &place.Candidate{City: "Chengdu"}}

	p, _ := newTestPipeline(t, Options{
		Sources: []MetadataSource{
			SourceFunc(func(context.Context, string) (Metadata, error) {
				return Metadata{}, fmt.Errorf("upstream down")
			}),
			SourceFunc(func(context.Context, string) (Metadata, error) {
				return Metadata{Title: "scraped title"}, nil
			}),
		},
		Strategies: []Strategy{capture},
	})

	_, _, err := p.Run(context.Background(), "https://v.douyin.com/v1", nil)
	require.NoError(t, err)
	assert.Equal(t, "scraped title", seen.Title, "second source must back up the first")
}

type strategyCapture struct {
	in   *Input
	cand *place.Candidate
}

func (s *strategyCapture) Name() string { return "capture" }

func (s *strategyCapture) Attempt(_ context.Context, in Input) *place.Candidate {
	*s.in = in
	return s.cand
}

func TestRunAttachesCoordinates(t *testing.T) {
	geocoder := &fakeGeocoder{coords: &place.Coordinates{Lng: 104.08, Lat: 30.65}}
	p, _ := newTestPipeline(t, Options{
		Strategies: []Strategy{&fakeStrategy{name: "text-understanding", cand: &place.Candidate{
			PlaceName: "Old Town Noodle House",
			Address:   "12 Lane St",
			City:      "Chengdu",
		}}},
		Geocoder: geocoder,
	})

	rec, _, err := p.Run(context.Background(), "https://v.douyin.com/v1", nil)
	require.NoError(t, err)

	require.NotNil(t, rec.Location)
	assert.InDelta(t, 104.08, rec.Location.Lng, 1e-9)
	assert.Equal(t, "12 Lane St", geocoder.lastAddress)
	assert.Equal(t, "Chengdu", geocoder.lastCity)
}

func TestRunGeocodeFailureDegrades(t *testing.T) {
	geocoder := &fakeGeocoder{err: fmt.Errorf("geocode timeout")}
	p, _ := newTestPipeline(t, Options{
		Strategies: []Strategy{&fakeStrategy{name: "text-understanding", cand: &place.Candidate{City: "Chengdu"}}},
		Geocoder:   geocoder,
	})

	rec, _, err := p.Run(context.Background(), "https://v.douyin.com/v1", nil)
	require.NoError(t, err)
	assert.Nil(t, rec.Location)
}

func TestRunDownloadsThumbnailFromCover(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte("not really a jpeg"))
	}))
	defer server.Close()

	p, _ := newTestPipeline(t, Options{
		Sources: []MetadataSource{SourceFunc(func(context.Context, string) (Metadata, error) {
			return Metadata{Title: "a reasonably long title", CoverURL: server.URL + "/cover"}, nil
		})},
		Strategies: []Strategy{&fakeStrategy{name: "text-understanding", cand: &place.Candidate{City: "Chengdu"}}},
	})

	rec, _, err := p.Run(context.Background(), "https://v.douyin.com/v1", nil)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(rec.Thumbnail, "/images/"))
	assert.True(t, strings.HasSuffix(rec.Thumbnail, ".jpg"))
}

func TestRunEndToEndManualEntry(t *testing.T) {
	prompter := &fakePrompter{
		cand: &place.Candidate{
			PlaceName: "Old Town Noodle House",
			City:      "Chengdu",
			Foods:     []place.Food{{Name: "Dandan Noodles"}},
		},
	}

	p, store := newTestPipeline(t, Options{
		Prompter:    prompter,
		Interactive: true,
	})

	rec, count, err := p.Run(context.Background(), "V1", nil)
	require.NoError(t, err)

	assert.Equal(t, "Old Town Noodle House", rec.Name)
	assert.Equal(t, "Chengdu", rec.City)
	assert.Len(t, rec.Foods, 1)
	assert.Nil(t, rec.Location)
	assert.Empty(t, rec.Thumbnail)
	assert.Equal(t, "V1", rec.VideoURL)
	assert.Equal(t, "2026-01-02T03:04:05Z", rec.AddedDate)
	assert.Equal(t, 1, count)

	cat, err := store.Load()
	require.NoError(t, err)
	require.Len(t, cat.Places, 1)
	assert.Equal(t, *rec, cat.Places[0])
}
