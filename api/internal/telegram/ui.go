package telegram

import (
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"humanize-ai/api/internal/llm/types"
	"humanize-ai/api/internal/session"
)

const (
	maxMessageRunes = 3900

	helpText = "✍️ HumanizeAI\n\n" +
		"Humanizer: send AI text and get a natural rewrite.\n" +
		"AI Detector: send any text and get the probability it was AI-written.\n\n" +
		"Commands: /humanizer, /detector, /result"
	humanizerPlaceholder = "Result will appear here..."
	detectorPlaceholder  = "Scan result will appear here..."
)

// Reply keyboard with one button per mode; pressing a button sends its label.
func makeModeKeyboard() tgbotapi.ReplyKeyboardMarkup {
	row := make([]tgbotapi.KeyboardButton, 0, len(session.Modes))
	for _, m := range session.Modes {
		row = append(row, tgbotapi.NewKeyboardButton(string(m)))
	}
	kb := tgbotapi.NewReplyKeyboard(row)
	kb.ResizeKeyboard = true
	return kb
}

func modeIntro(m session.Mode) string {
	if m == session.ModeDetector {
		return "Mode: AI Detector. Paste text to analyze."
	}
	return "Mode: Humanizer. Paste AI content to refine."
}

func formatDetection(res *types.DetectResult) string {
	if res == nil {
		return detectorPlaceholder
	}
	return "Probability of AI: " + strconv.FormatFloat(res.Score, 'f', 1, 64) + "%\nResult: " + res.Label
}
