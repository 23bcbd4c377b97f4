package handle

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

// Download returns the current humanized output as a plain-text attachment.
func (h *Handle) Download(w http.ResponseWriter, r *http.Request) {
	id := sessionID(w, r)
	st, err := h.sessions.Get(r.Context(), id)
	if err != nil {
		log.Error().Err(err).Msg("download: session")
		http.Error(w, "session unavailable", http.StatusInternalServerError)
		return
	}
	if st.HumanizedOutput == "" {
		http.Error(w, "nothing to download", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="humanized.txt"`)
	_, _ = w.Write([]byte(st.HumanizedOutput))
}
