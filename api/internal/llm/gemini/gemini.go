package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

var ErrEmptyKey = errors.New("GEMINI_API_KEY is empty")

// generator performs one blocking completion call.
type generator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}

type Engine struct {
	APIKey string
	Model  string
	gen    generator
}

// New returns an engine backed by the Generative Language API. Extra client
// options (endpoint, http client) are passed through to genai.NewClient.
func New(apiKey, model string, opts ...option.ClientOption) *Engine {
	key := strings.TrimSpace(apiKey)
	return &Engine{
		APIKey: key,
		Model:  strings.TrimSpace(model),
		gen:    clientGenerator{opts: append([]option.ClientOption{option.WithAPIKey(key)}, opts...)},
	}
}

func (e *Engine) Name() string     { return "gemini" }
func (e *Engine) GetModel() string { return e.Model }

// Humanize sends the fixed instruction followed by text and returns the
// model output unmodified. There is no retry; a failed call is returned as is.
func (e *Engine) Humanize(ctx context.Context, text string) (string, error) {
	if e.APIKey == "" {
		return "", ErrEmptyKey
	}
	prompt := BuildPrompt(text)
	log.Debug().Str("stage", "humanize").Str("model", e.Model).Int("input_len", len(text)).Msg("gemini request")

	out, err := e.gen.Generate(ctx, e.Model, prompt)
	if err != nil {
		log.Warn().Err(err).Str("model", e.Model).Msg("gemini humanize failed")
		return "", fmt.Errorf("gemini humanize: %w", err)
	}
	return out, nil
}

type clientGenerator struct {
	opts []option.ClientOption
}

func (g clientGenerator) Generate(ctx context.Context, model, prompt string) (string, error) {
	cl, err := genai.NewClient(ctx, g.opts...)
	if err != nil {
		return "", err
	}
	defer cl.Close()

	m := cl.GenerativeModel(model)
	if m == nil {
		return "", fmt.Errorf("model %q is nil", model)
	}
	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	txt, ok := candidateText(resp)
	if !ok {
		return "", errors.New("empty response")
	}
	return txt, nil
}

// candidateText joins the text parts of the first candidate that has any.
func candidateText(resp *genai.GenerateContentResponse) (string, bool) {
	if resp == nil {
		return "", false
	}
	for _, c := range resp.Candidates {
		if c == nil || c.Content == nil {
			continue
		}
		var b strings.Builder
		found := false
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				b.WriteString(string(t))
				found = true
			}
		}
		if found {
			return b.String(), true
		}
	}
	return "", false
}
