package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	out        string
	err        error
	echo       bool
	gotModel   string
	gotPrompt  string
	callsCount int
}

func (f *fakeGenerator) Generate(_ context.Context, model, prompt string) (string, error) {
	f.callsCount++
	f.gotModel = model
	f.gotPrompt = prompt
	if f.err != nil {
		return "", f.err
	}
	if f.echo {
		return prompt, nil
	}
	return f.out, nil
}

func newTestEngine(g generator) *Engine {
	e := New("key", "gemini-1.5-flash")
	e.gen = g
	return e
}

func TestHumanize_ReturnsModelTextUnchanged(t *testing.T) {
	inputs := []string{"The quick brown fox", "", "  spaced  \n", "Ünïcödé ✍️"}
	for _, in := range inputs {
		fg := &fakeGenerator{out: "  rewritten: " + in + "\n"}
		out, err := newTestEngine(fg).Humanize(context.Background(), in)
		require.NoError(t, err)
		assert.Equal(t, "  rewritten: "+in+"\n", out)
		assert.Equal(t, 1, fg.callsCount)
		assert.Equal(t, "gemini-1.5-flash", fg.gotModel)
	}
}

func TestHumanize_PromptAppendsTextVerbatim(t *testing.T) {
	fg := &fakeGenerator{out: "ok"}
	_, err := newTestEngine(fg).Humanize(context.Background(), "Delve into the tapestry.")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(fg.gotPrompt, humanizeInstruction))
	assert.True(t, strings.HasSuffix(fg.gotPrompt, ": Delve into the tapestry."))
}

func TestHumanize_EmptyInputEchoesInstruction(t *testing.T) {
	fg := &fakeGenerator{echo: true}
	out, err := newTestEngine(fg).Humanize(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, humanizeInstruction, out)
	assert.Contains(t, out, "varying sentence lengths")
	assert.Contains(t, out, "Keep meaning identical")
}

func TestHumanize_ModelErrorIsWrapped(t *testing.T) {
	cause := errors.New("quota exceeded")
	fg := &fakeGenerator{err: cause}
	out, err := newTestEngine(fg).Humanize(context.Background(), "text")
	require.Error(t, err)
	assert.Empty(t, out)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestHumanize_EmptyKey(t *testing.T) {
	fg := &fakeGenerator{out: "never"}
	e := New("   ", "m")
	e.gen = fg
	_, err := e.Humanize(context.Background(), "x")
	assert.ErrorIs(t, err, ErrEmptyKey)
	assert.Zero(t, fg.callsCount)
}

func TestCandidateText(t *testing.T) {
	t.Run("nil response", func(t *testing.T) {
		_, ok := candidateText(nil)
		assert.False(t, ok)
	})

	t.Run("no candidates", func(t *testing.T) {
		_, ok := candidateText(&genai.GenerateContentResponse{})
		assert.False(t, ok)
	})

	t.Run("joins text parts of first candidate", func(t *testing.T) {
		resp := &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{
				{Content: nil},
				{Content: &genai.Content{Parts: []genai.Part{genai.Text("Hello, "), genai.Text("world")}}},
				{Content: &genai.Content{Parts: []genai.Part{genai.Text("ignored")}}},
			},
		}
		txt, ok := candidateText(resp)
		assert.True(t, ok)
		assert.Equal(t, "Hello, world", txt)
	})
}
