package fileutil

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImageBytes(t *testing.T, encode func(*bytes.Buffer, image.Image) error) []byte {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.NRGBA{R: 200, G: 40, B: 40, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, encode(&buf, img))
	return buf.Bytes()
}

func TestDownloadThumbnailPNGExtension(t *testing.T) {
	payload := testImageBytes(t, func(buf *bytes.Buffer, img image.Image) error {
		return png.Encode(buf, img)
	})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(payload)
	}))
	defer server.Close()

	imageDir := t.TempDir()
	relPath, err := DownloadThumbnail(context.Background(), ThumbnailOptions{
		URL:      server.URL,
		ImageDir: imageDir,
		Client:   server.Client(),
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(relPath, "/images/"), "path = %q", relPath)
	assert.True(t, strings.HasSuffix(relPath, ".png"), "path = %q", relPath)

	onDisk := filepath.Join(imageDir, filepath.Base(relPath))
	require.True(t, FileExists(onDisk))
}

func TestDownloadThumbnailDefaultsToJPG(t *testing.T) {
	payload := testImageBytes(t, func(buf *bytes.Buffer, img image.Image) error {
		return jpeg.Encode(buf, img, nil)
	})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// No content-type header at all
		_, _ = w.Write(payload)
	}))
	defer server.Close()

	imageDir := t.TempDir()
	relPath, err := DownloadThumbnail(context.Background(), ThumbnailOptions{
		URL:      server.URL,
		ImageDir: imageDir,
		Client:   server.Client(),
	})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(relPath, ".jpg"), "path = %q", relPath)
}

func TestDownloadThumbnailRawFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write([]byte("definitely not an image"))
	}))
	defer server.Close()

	imageDir := t.TempDir()
	relPath, err := DownloadThumbnail(context.Background(), ThumbnailOptions{
		URL:      server.URL,
		ImageDir: imageDir,
		Client:   server.Client(),
	})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(relPath, ".jpg"), "path = %q", relPath)

	raw, err := os.ReadFile(filepath.Join(imageDir, filepath.Base(relPath)))
	require.NoError(t, err)
	assert.Equal(t, "definitely not an image", string(raw))
}

func TestDownloadThumbnailEmptyURL(t *testing.T) {
	relPath, err := DownloadThumbnail(context.Background(), ThumbnailOptions{ImageDir: t.TempDir()})
	require.NoError(t, err)
	assert.Empty(t, relPath)
}

func TestDownloadThumbnailStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := DownloadThumbnail(context.Background(), ThumbnailOptions{
		URL:      server.URL,
		ImageDir: t.TempDir(),
		Client:   server.Client(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 404")
}
