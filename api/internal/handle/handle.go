package handle

import (
	"embed"
	"encoding/json"
	"html/template"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"humanize-ai/api/internal/llm"
	"humanize-ai/api/internal/session"
)

const (
	cookieName   = "hai_session"
	maxBodyBytes = 1 << 20
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var pageTmpl = template.Must(template.New("_root").Funcs(template.FuncMap{
	"pct": func(score float64) string { return strconv.FormatFloat(score, 'f', 1, 64) + "%" },
}).ParseFS(templateFS, "templates/*.tmpl"))

type Handle struct {
	engs     *llm.Engines
	sessions session.Store
}

func New(engs *llm.Engines, sessions session.Store) *Handle {
	return &Handle{
		engs:     engs,
		sessions: sessions,
	}
}

// sessionID returns the caller's session id, issuing a new cookie when the
// request has none or carries a malformed one.
func sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(cookieName); err == nil {
		if _, perr := uuid.Parse(c.Value); perr == nil {
			return c.Value
		}
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
