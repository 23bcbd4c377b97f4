package llm

import (
	"context"

	"humanize-ai/api/internal/llm/types"
)

// Humanizer rewrites text through a generative model.
type Humanizer interface {
	Name() string
	GetModel() string
	Humanize(ctx context.Context, text string) (string, error)
}

// Detector scores text for AI authorship.
type Detector interface {
	Name() string
	Detect(ctx context.Context, text string) (types.DetectResult, error)
}

type Engines struct {
	Humanizer Humanizer
	Detector  Detector
}
