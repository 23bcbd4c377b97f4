package telegram

import (
	"context"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"humanize-ai/api/internal/llm"
	"humanize-ai/api/internal/session"
	"humanize-ai/api/internal/util"
)

// Bot is the subset of *tgbotapi.BotAPI the router needs.
type Bot interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUpdates(config tgbotapi.UpdateConfig) ([]tgbotapi.Update, error)
}

type Router struct {
	Bot      Bot
	Engines  *llm.Engines
	Sessions session.Store

	modes sync.Map // chatID -> session.Mode
}

func NewRouter(bot Bot, engs *llm.Engines, sessions session.Store) *Router {
	return &Router{Bot: bot, Engines: engs, Sessions: sessions}
}

func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	if upd.Message == nil || upd.Message.Chat == nil {
		return
	}
	cid := upd.Message.Chat.ID

	if upd.Message.IsCommand() {
		r.handleCommand(ctx, cid, upd.Message.Command())
		return
	}

	text := upd.Message.Text
	if text == "" {
		return
	}
	// mode keyboard buttons arrive as plain text
	for _, m := range session.Modes {
		if strings.TrimSpace(text) == string(m) {
			r.setMode(cid, m)
			r.send(cid, modeIntro(m))
			return
		}
	}

	switch r.getMode(cid) {
	case session.ModeDetector:
		r.runDetect(ctx, cid, text)
	default:
		r.runHumanize(ctx, cid, text)
	}
}

func (r *Router) handleCommand(ctx context.Context, cid int64, cmd string) {
	switch cmd {
	case "start", "help":
		msg := tgbotapi.NewMessage(cid, helpText)
		msg.ReplyMarkup = makeModeKeyboard()
		r.sendChattable(msg)
	case "humanizer":
		r.setMode(cid, session.ModeHumanizer)
		r.send(cid, modeIntro(session.ModeHumanizer))
	case "detector":
		r.setMode(cid, session.ModeDetector)
		r.send(cid, modeIntro(session.ModeDetector))
	case "result":
		r.showResult(ctx, cid)
	default:
		r.send(cid, "Unknown command. "+helpText)
	}
}

// showResult prints the stored slot for the chat's current mode.
func (r *Router) showResult(ctx context.Context, cid int64) {
	st, err := r.Sessions.Get(ctx, sessionKey(cid))
	if err != nil {
		log.Error().Err(err).Int64("chat_id", cid).Msg("telegram: load session")
		r.send(cid, "Session unavailable, try again later.")
		return
	}
	if r.getMode(cid) == session.ModeDetector {
		r.send(cid, formatDetection(st.Detection))
		return
	}
	r.sendHumanized(cid, st.HumanizedOutput)
}

func (r *Router) runHumanize(ctx context.Context, cid int64, text string) {
	out, herr := r.Engines.Humanizer.Humanize(ctx, text)
	st, err := r.Sessions.Update(ctx, sessionKey(cid), func(cur session.State) session.State {
		return cur.RecordHumanize(out, herr)
	})
	if err != nil {
		log.Error().Err(err).Int64("chat_id", cid).Msg("telegram: save session")
		st = session.State{}.RecordHumanize(out, herr)
	}
	r.sendHumanized(cid, st.HumanizedOutput)
}

func (r *Router) runDetect(ctx context.Context, cid int64, text string) {
	res, derr := r.Engines.Detector.Detect(ctx, text)
	st, err := r.Sessions.Update(ctx, sessionKey(cid), func(cur session.State) session.State {
		return cur.RecordDetection(res, derr)
	})
	if err != nil {
		log.Error().Err(err).Int64("chat_id", cid).Msg("telegram: save session")
		st = session.State{}.RecordDetection(res, derr)
	}
	r.send(cid, formatDetection(st.Detection))
}

// sendHumanized replies with the (possibly truncated) text and attaches the
// full output as a plain-text file. An empty output gets the placeholder and
// no file.
func (r *Router) sendHumanized(cid int64, out string) {
	if out == "" {
		r.send(cid, humanizerPlaceholder)
		return
	}
	r.send(cid, util.Truncate(out, maxMessageRunes))
	doc := tgbotapi.NewDocument(cid, tgbotapi.FileBytes{Name: "humanized.txt", Bytes: []byte(out)})
	r.sendChattable(doc)
}

func (r *Router) send(chatID int64, text string) {
	r.sendChattable(tgbotapi.NewMessage(chatID, text))
}

func (r *Router) sendChattable(c tgbotapi.Chattable) {
	if _, err := r.Bot.Send(c); err != nil {
		log.Warn().Err(err).Msg("telegram send failed")
	}
}
