package telegram

import (
	"strconv"

	"humanize-ai/api/internal/session"
)

// sessionKey maps a chat onto the shared session store.
func sessionKey(chatID int64) string { return "tg:" + strconv.FormatInt(chatID, 10) }

func (r *Router) setMode(chatID int64, m session.Mode) { r.modes.Store(chatID, m) }

func (r *Router) getMode(chatID int64) session.Mode {
	if v, ok := r.modes.Load(chatID); ok {
		if m, _ := v.(session.Mode); m != "" {
			return m
		}
	}
	return session.ModeHumanizer
}
