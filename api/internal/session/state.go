package session

import (
	"context"

	"humanize-ai/api/internal/llm/types"
)

// State holds the two result slots of one session. It is a value: the With*
// methods return a copy with exactly one slot replaced.
type State struct {
	HumanizedOutput string              `json:"humanized_output"`
	Detection       *types.DetectResult `json:"detection_result"`
}

func (s State) WithHumanized(out string) State {
	s.HumanizedOutput = out
	return s
}

func (s State) WithDetection(r *types.DetectResult) State {
	if r == nil {
		s.Detection = nil
		return s
	}
	c := *r
	s.Detection = &c
	return s
}

// RecordHumanize stores a humanize outcome. A failure is written into the
// output slot as "Error: <cause>".
func (s State) RecordHumanize(out string, err error) State {
	if err != nil {
		return s.WithHumanized("Error: " + err.Error())
	}
	return s.WithHumanized(out)
}

// RecordDetection stores a detection outcome. A failure clears the slot so
// the placeholder is shown again.
func (s State) RecordDetection(res types.DetectResult, err error) State {
	if err != nil {
		return s.WithDetection(nil)
	}
	return s.WithDetection(&res)
}

// Store keeps State per session id. Get on an unknown or expired id returns
// the zero State; reads and writes both count as activity for expiry.
// Update is atomic per id: slot writers use it so that a slow call finishing
// late never restores a stale copy of the other slot.
type Store interface {
	Get(ctx context.Context, id string) (State, error)
	Put(ctx context.Context, id string, st State) error
	Update(ctx context.Context, id string, fn func(State) State) (State, error)
}
