package draft

import (
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/leofalp/mmdraft/core/mailmate"
)

const promptHeader = `Your task is to create a brief, polished email response based on the given email thread. Follow these guidelines:

Analyze the email thread to understand the context, including who you are (the sender) and who you're replying to.
If there's any text above the most recent email, treat it as your draft response or additional instructions.
Keep the response ultra-concise, aiming for 2-3 sentences maximum.
Maintain a professional yet approachable tone appropriate for your role.
Address only the most recent points or questions that require a response.
Use clear, simple language.
Include a brief greeting and sign-off appropriate for the conversation stage.

Important: Do not introduce yourself or restate information already known to both parties. Respond as if continuing an ongoing conversation.
`

const promptFooter = `
Respond only with the refined email. Do not include any explanations or comments outside of the response.
`

// BuildPrompt embeds the addresses and the thread text into the fixed
// drafting instructions.
func BuildPrompt(to, from, thread string) string {
	var b strings.Builder
	b.Grow(len(promptHeader) + len(promptFooter) + len(to) + len(from) + len(thread) + 64)

	b.WriteString(promptHeader)
	b.WriteString("To: ")
	b.WriteString(to)
	b.WriteString("\nFrom: ")
	b.WriteString(from)
	b.WriteString("\n\nEmail thread:\n")
	b.WriteString(thread)
	b.WriteString("\n")
	b.WriteString(promptFooter)

	return b.String()
}

// promptThread returns the thread text given to the model. HTML bodies are
// rendered to Markdown when toMarkdown is set; the draft itself always
// keeps the original HTML.
func promptThread(email mailmate.EmailContext, toMarkdown bool) (string, error) {
	if !toMarkdown || !email.IsHTML() {
		return email.Body, nil
	}
	return htmltomarkdown.ConvertString(email.Body)
}
