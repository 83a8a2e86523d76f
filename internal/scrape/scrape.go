// Package scrape retrieves video page metadata with a headless browser when
// the metadata API is unavailable or unconfigured. Share pages render their
// OpenGraph tags even without logging in, which is all the pipeline needs.
package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/chromedp"
)

const defaultScrapeTimeout = 30 * time.Second

// mobileUserAgent makes share links serve their lightweight mobile variant,
// which carries the OpenGraph tags in the initial HTML.
const mobileUserAgent = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) " +
	"AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"

var (
	chromedpExecAllocator = chromedp.NewExecAllocator
	chromedpContext       = chromedp.NewContext
	chromedpRunner        = chromedp.Run
)

// Options holds configuration for a scrape run.
type Options struct {
	Headless bool
	Timeout  time.Duration
}

// PageMetadata is the OpenGraph data found on a video share page.
type PageMetadata struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	CoverURL    string `json:"cover"`
}

// metadataJS reads the OpenGraph tags without failing on missing ones.
const metadataJS = `(() => {
	const read = (prop) => {
		const el = document.querySelector('meta[property="' + prop + '"]');
		return el && el.content ? el.content : "";
	};
	return {
		title: read("og:title"),
		description: read("og:description"),
		cover: read("og:image"),
	};
})()`

// FetchMetadata loads the share page in a headless browser and extracts
// og:title, og:description and og:image. An entirely empty result is an
// error so callers fall through to their next metadata source.
func FetchMetadata(parentCtx context.Context, videoURL string, opts Options) (*PageMetadata, error) {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = defaultScrapeTimeout
	}

	ctx, cancel := context.WithTimeout(parentCtx, timeout)
	defer cancel()

	allocCtx, cancelAllocator := chromedpExecAllocator(ctx, buildExecAllocatorOptions(opts)...)
	defer cancelAllocator()

	browserCtx, cancelBrowser := chromedpContext(allocCtx)
	defer cancelBrowser()

	var meta PageMetadata
	err := chromedpRunner(browserCtx,
		emulation.SetUserAgentOverride(mobileUserAgent),
		chromedp.Navigate(videoURL),
		chromedp.Evaluate(metadataJS, &meta),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scrape %s: %w", videoURL, err)
	}

	normalize(&meta)
	if !hasContent(meta) {
		return nil, fmt.Errorf("no page metadata found at %s", videoURL)
	}

	slog.Debug("Scraped page metadata", "url", videoURL, "title", meta.Title)
	return &meta, nil
}

func buildExecAllocatorOptions(opts Options) []chromedp.ExecAllocatorOption {
	return []chromedp.ExecAllocatorOption{
		chromedp.NoDefaultBrowserCheck,
		chromedp.NoFirstRun,
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.Flag("no-default-browser-check", true),
	}
}

func normalize(meta *PageMetadata) {
	meta.Title = strings.TrimSpace(meta.Title)
	meta.Description = strings.TrimSpace(meta.Description)
	meta.CoverURL = strings.TrimSpace(meta.CoverURL)
}

func hasContent(meta PageMetadata) bool {
	return meta.Title != "" || meta.Description != "" || meta.CoverURL != ""
}
