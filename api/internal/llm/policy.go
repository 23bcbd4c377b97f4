package llm

import (
	"strconv"

	"humanize-ai/api/internal/llm/types"
)

// Label thresholds on the percentage scale. Both bounds are exclusive, so
// exactly 70.0 is Mixed and exactly 30.0 is Human.
const (
	aiThreshold    = 70.0
	mixedThreshold = 30.0
)

// ScoreResult scales a raw 0..1 probability to a percentage rounded to one
// decimal place and picks the label from the rounded value. Rounding goes
// through the shortest decimal formatting so it is correctly rounded on the
// exact binary value of raw*100 (0.7005 gives 70.0, not 70.1).
func ScoreResult(raw float64) types.DetectResult {
	score := roundTenths(raw * 100)
	return types.DetectResult{Score: score, Label: Label(score)}
}

func roundTenths(v float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 1, 64), 64)
	if err != nil {
		return v
	}
	return r
}

func Label(score float64) string {
	switch {
	case score > aiThreshold:
		return types.LabelAI
	case score > mixedThreshold:
		return types.LabelMixed
	default:
		return types.LabelHuman
	}
}
