package handle

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"humanize-ai/api/internal/llm/types"
	"humanize-ai/api/internal/session"
)

func (h *Handle) detect(ctx context.Context, id, text string) (session.State, types.DetectResult, error) {
	res, derr := h.engs.Detector.Detect(ctx, text)
	st, err := h.sessions.Update(ctx, id, func(cur session.State) session.State {
		return cur.RecordDetection(res, derr)
	})
	if err != nil {
		return session.State{}, types.DetectResult{}, err
	}
	return st, res, derr
}

// Detect handles the page form. A failed call renders the same placeholder
// as a scan that never ran.
func (h *Handle) Detect(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	id := sessionID(w, r)
	text := r.PostForm.Get("text")

	st, _, err := h.detect(r.Context(), id, text)
	if err != nil {
		log.Error().Err(err).Msg("detect: session")
		http.Error(w, "session unavailable", http.StatusInternalServerError)
		return
	}
	render(w, newPageView(session.ModeDetector, text, st))
}

func (h *Handle) APIDetect(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req types.DetectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad json: " + err.Error()})
		return
	}
	id := sessionID(w, r)

	_, res, err := h.detect(r.Context(), id, req.Text)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "detect error: " + err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, res)
}
