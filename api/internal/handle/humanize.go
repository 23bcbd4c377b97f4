package handle

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"humanize-ai/api/internal/llm/types"
	"humanize-ai/api/internal/session"
)

// humanize runs one call and writes its outcome into the humanizer slot only,
// so a detection finishing meanwhile in the same session is kept. The raw
// error is returned for callers that report it separately.
func (h *Handle) humanize(ctx context.Context, id, text string) (session.State, string, error) {
	out, herr := h.engs.Humanizer.Humanize(ctx, text)
	st, err := h.sessions.Update(ctx, id, func(cur session.State) session.State {
		return cur.RecordHumanize(out, herr)
	})
	if err != nil {
		return session.State{}, "", err
	}
	return st, out, herr
}

// Humanize handles the page form. Failures are shown inline as the output.
func (h *Handle) Humanize(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	id := sessionID(w, r)
	text := r.PostForm.Get("text")

	st, _, err := h.humanize(r.Context(), id, text)
	if err != nil {
		log.Error().Err(err).Msg("humanize: session")
		http.Error(w, "session unavailable", http.StatusInternalServerError)
		return
	}
	render(w, newPageView(session.ModeHumanizer, text, st))
}

func (h *Handle) APIHumanize(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req types.HumanizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad json: " + err.Error()})
		return
	}
	id := sessionID(w, r)

	_, out, err := h.humanize(r.Context(), id, req.Text)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "humanize error: " + err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, types.HumanizeResponse{Output: out})
}
