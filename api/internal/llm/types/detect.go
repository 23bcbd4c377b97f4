package types

// Detector verdicts.
const (
	LabelAI    = "AI-Generated"
	LabelMixed = "Mixed/Unknown"
	LabelHuman = "Human Written"
)

// DetectResult is a scored verdict: Score is a percentage 0..100 with one
// decimal place.
type DetectResult struct {
	Score float64 `json:"score"`
	Label string  `json:"label"`
}

type DetectRequest struct {
	Text string `json:"text"`
}
