package gemini

// humanizeInstruction is prepended verbatim to the user's text.
const humanizeInstruction = "Humanize this AI text. Use natural flow, varying sentence lengths, " +
	"and avoid words like 'delve' or 'tapestry'. Keep meaning identical: "

func BuildPrompt(text string) string {
	return humanizeInstruction + text
}
