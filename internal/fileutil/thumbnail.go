package fileutil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	// thumbnailTimeout is deliberately longer than the metadata/geocode
	// timeouts; cover CDNs are slow.
	thumbnailTimeout    = 15 * time.Second
	defaultMaxThumbSize = 1000
)

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// ThumbnailOptions holds options for downloading a cover thumbnail.
type ThumbnailOptions struct {
	// URL is the source URL of the cover image. Empty means nothing to do.
	URL string
	// ImageDir is the directory where the thumbnail will be saved.
	ImageDir string
	// MaxWidth caps the stored image width; zero means the default.
	MaxWidth int
	// Client overrides the HTTP client, mainly for tests.
	Client HTTPDoer
}

// DownloadThumbnail fetches a cover image and stores it under a fresh uuid
// filename. The extension is .png when the response content-type says
// image/png, .jpg otherwise. Returns the root-relative path for the catalog
// entry ("/images/<file>"), or "" when no URL was given.
func DownloadThumbnail(ctx context.Context, opts ThumbnailOptions) (string, error) {
	if opts.URL == "" {
		return "", nil
	}

	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: thumbnailTimeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, opts.URL, nil)
	if err != nil {
		return "", err
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download thumbnail: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status %d downloading thumbnail from %s", resp.StatusCode, opts.URL)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read thumbnail body: %w", err)
	}

	ext := ".jpg"
	if strings.Contains(resp.Header.Get("Content-Type"), "image/png") {
		ext = ".png"
	}

	if err := os.MkdirAll(opts.ImageDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create image directory: %w", err)
	}

	filename := uuid.New().String() + ext
	savePath := filepath.Join(opts.ImageDir, filename)

	if err := saveThumbnail(data, savePath, opts.MaxWidth); err != nil {
		return "", err
	}

	slog.Info("Downloaded thumbnail", "path", savePath)
	return "/images/" + filename, nil
}

// saveThumbnail re-encodes decodable images (auto-orient plus a width cap);
// anything imaging can't decode is written out verbatim.
func saveThumbnail(data []byte, savePath string, maxWidth int) error {
	if maxWidth <= 0 {
		maxWidth = defaultMaxThumbSize
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		slog.Debug("Thumbnail not decodable, storing raw bytes", "path", savePath, "error", err)
		return os.WriteFile(savePath, data, 0644)
	}

	if img.Bounds().Dx() > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}

	return imaging.Save(img, savePath, imaging.JPEGQuality(85))
}
