package extract

import (
	"context"
	"log/slog"

	"github.com/lepinkainen/foodmap/internal/deepseek"
	"github.com/lepinkainen/foodmap/internal/place"
)

// VideoStrategy sends the video reference itself to a video-understanding
// model. Highest-priority provider strategy; skipped when unconfigured.
type VideoStrategy struct {
	Client Completer
	Model  string
}

// Name identifies the strategy in logs.
func (s *VideoStrategy) Name() string { return "video-understanding" }

// Attempt asks the video model for a candidate record.
func (s *VideoStrategy) Attempt(ctx context.Context, in Input) *place.Candidate {
	if s.Client == nil || s.Model == "" || in.VideoURL == "" {
		return nil
	}

	reply, err := s.Client.Complete(ctx, s.Model, []deepseek.Message{
		deepseek.SystemMessage(systemPrompt),
		deepseek.UserVideoMessage(videoPrompt(), in.VideoURL),
	})
	if err != nil {
		slog.Warn("Video extraction failed", "error", err)
		return nil
	}

	cand, err := ParseCandidate(reply)
	if err != nil {
		slog.Warn("Video extraction reply was not parseable", "error", err)
		return nil
	}
	return cand
}
