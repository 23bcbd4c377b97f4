package handle

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"humanize-ai/api/internal/session"
)

type modeLink struct {
	Label  string
	Slug   string
	Active bool
}

type pageView struct {
	Modes    []modeLink
	Detector bool
	Input    string
	State    session.State
}

func newPageView(mode session.Mode, input string, st session.State) pageView {
	links := make([]modeLink, 0, len(session.Modes))
	for _, m := range session.Modes {
		links = append(links, modeLink{Label: string(m), Slug: m.Slug(), Active: m == mode})
	}
	return pageView{
		Modes:    links,
		Detector: mode == session.ModeDetector,
		Input:    input,
		State:    st,
	}
}

// Page renders the two-panel layout for the selected mode. Switching mode
// only changes which slot is shown.
func (h *Handle) Page(w http.ResponseWriter, r *http.Request) {
	id := sessionID(w, r)
	st, err := h.sessions.Get(r.Context(), id)
	if err != nil {
		log.Error().Err(err).Msg("load session")
		http.Error(w, "session unavailable", http.StatusInternalServerError)
		return
	}
	mode := session.ParseMode(r.URL.Query().Get("mode"))
	render(w, newPageView(mode, "", st))
}

func render(w http.ResponseWriter, v pageView) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTmpl.ExecuteTemplate(w, "page", v); err != nil {
		log.Error().Err(err).Msg("render page")
	}
}
