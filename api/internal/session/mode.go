package session

import "strings"

// Mode selects which panel pair is rendered. It carries no state of its own.
type Mode string

const (
	ModeHumanizer Mode = "Humanizer"
	ModeDetector  Mode = "AI Detector"
)

// Modes in display order.
var Modes = []Mode{ModeHumanizer, ModeDetector}

// ParseMode accepts the display name or the URL slug; anything else falls
// back to the humanizer.
func ParseMode(s string) Mode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "detector", "ai detector", "ai-detector":
		return ModeDetector
	default:
		return ModeHumanizer
	}
}

func (m Mode) Slug() string {
	if m == ModeDetector {
		return "detector"
	}
	return "humanizer"
}
