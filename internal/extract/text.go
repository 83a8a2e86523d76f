package extract

import (
	"context"
	"log/slog"
	"unicode/utf8"

	"github.com/lepinkainen/foodmap/internal/deepseek"
	"github.com/lepinkainen/foodmap/internal/place"
)

// minTextRunes is the combined title+description length the text strategy
// requires. Below it, AI extraction is certain to fail and is skipped.
const minTextRunes = 6

// TextStrategy extracts from the video's title and description text.
type TextStrategy struct {
	Client Completer
	Model  string
}

// Name identifies the strategy in logs.
func (s *TextStrategy) Name() string { return "text-understanding" }

// Attempt asks the text model to extract from title and description.
func (s *TextStrategy) Attempt(ctx context.Context, in Input) *place.Candidate {
	if s.Client == nil || s.Model == "" {
		return nil
	}
	if utf8.RuneCountInString(in.Title)+utf8.RuneCountInString(in.Description) <= minTextRunes {
		return nil
	}

	reply, err := s.Client.Complete(ctx, s.Model, []deepseek.Message{
		deepseek.SystemMessage(systemPrompt),
		deepseek.UserMessage(textPrompt(in.Title, in.Description)),
	})
	if err != nil {
		slog.Warn("Text extraction failed", "error", err)
		return nil
	}

	cand, err := ParseCandidate(reply)
	if err != nil {
		slog.Warn("Text extraction reply was not parseable", "error", err)
		return nil
	}
	return cand
}
