package extract

import (
	"context"
	"log/slog"
	"unicode/utf8"

	"github.com/lepinkainen/foodmap/internal/deepseek"
	"github.com/lepinkainen/foodmap/internal/place"
)

// lowInfoRunes is the per-field length below which the title/description
// pair is considered too thin for text extraction, making the cover image
// the better signal.
const lowInfoRunes = 10

// ImageStrategy sends the cover image to a vision model. Only attempted when
// a cover URL exists and the accompanying text carries almost no information.
type ImageStrategy struct {
	Client Completer
	Model  string
}

// Name identifies the strategy in logs.
func (s *ImageStrategy) Name() string { return "image-understanding" }

// Attempt asks the vision model to read the cover image.
func (s *ImageStrategy) Attempt(ctx context.Context, in Input) *place.Candidate {
	if s.Client == nil || s.Model == "" || in.CoverURL == "" {
		return nil
	}
	if utf8.RuneCountInString(in.Title) >= lowInfoRunes || utf8.RuneCountInString(in.Description) >= lowInfoRunes {
		return nil
	}

	reply, err := s.Client.Complete(ctx, s.Model, []deepseek.Message{
		deepseek.SystemMessage(systemPrompt),
		deepseek.UserImageMessage(imagePrompt(), in.CoverURL),
	})
	if err != nil {
		slog.Warn("Image extraction failed", "error", err)
		return nil
	}

	cand, err := ParseCandidate(reply)
	if err != nil {
		slog.Warn("Image extraction reply was not parseable", "error", err)
		return nil
	}
	return cand
}
