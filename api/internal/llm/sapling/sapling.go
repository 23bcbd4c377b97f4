package sapling

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"humanize-ai/api/internal/llm"
	"humanize-ai/api/internal/llm/types"
)

const DefaultURL = "https://api.sapling.ai/api/v1/aidetector"

var ErrEmptyKey = errors.New("SAPLING_API_KEY is empty")

type Engine struct {
	APIKey string
	URL    string
	httpc  *http.Client
}

func New(key, url string, timeout time.Duration) *Engine {
	if strings.TrimSpace(url) == "" {
		url = DefaultURL
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Engine{
		APIKey: strings.TrimSpace(key),
		URL:    url,
		httpc:  &http.Client{Timeout: timeout},
	}
}

func (e *Engine) Name() string { return "sapling" }

type detectRequest struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

// Score is a pointer so an absent field can be told apart from 0; both end
// up as 0.
type detectResponse struct {
	Score *float64 `json:"score"`
}

// Detect posts text to the detector and maps its probability to a labelled
// percentage. A missing score field counts as 0.
func (e *Engine) Detect(ctx context.Context, text string) (types.DetectResult, error) {
	if e.APIKey == "" {
		return types.DetectResult{}, ErrEmptyKey
	}
	payload, err := json.Marshal(detectRequest{Key: e.APIKey, Text: text})
	if err != nil {
		return types.DetectResult{}, fmt.Errorf("sapling detect: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.URL, bytes.NewReader(payload))
	if err != nil {
		return types.DetectResult{}, fmt.Errorf("sapling detect: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	log.Debug().Str("stage", "detect").Int("input_len", len(text)).Msg("sapling request")
	resp, err := e.httpc.Do(req)
	if err != nil {
		log.Warn().Err(err).Msg("sapling detect failed")
		return types.DetectResult{}, fmt.Errorf("sapling detect: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		log.Warn().Int("status", resp.StatusCode).Msg("sapling detect rejected")
		return types.DetectResult{}, fmt.Errorf("sapling %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var out detectResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		log.Warn().Err(err).Msg("sapling detect: bad JSON")
		return types.DetectResult{}, fmt.Errorf("sapling detect: bad JSON: %w", err)
	}
	var raw float64
	if out.Score != nil {
		raw = *out.Score
	}
	return llm.ScoreResult(raw), nil
}
