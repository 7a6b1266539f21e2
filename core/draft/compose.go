package draft

import (
	"html"
	"strings"

	"github.com/leofalp/mmdraft/core/mailmate"
)

// ComposeBody places reply above the original body. Plain text is separated
// by a blank line. HTML gets a minimal document with the escaped reply,
// a line break and the original markup.
func ComposeBody(email mailmate.EmailContext, reply string) string {
	if !email.IsHTML() {
		return reply + "\n\n" + email.Body
	}

	var b strings.Builder
	b.WriteString("<html>\n<body>\n")
	b.WriteString(replyToHTML(reply))
	b.WriteString("\n<br />\n")
	b.WriteString(email.Body)
	b.WriteString("\n</body>\n</html>\n")
	return b.String()
}

// replyToHTML escapes reply and keeps its line breaks visible.
func replyToHTML(reply string) string {
	escaped := html.EscapeString(reply)
	escaped = strings.ReplaceAll(escaped, "\r\n", "\n")
	return strings.ReplaceAll(escaped, "\n", "<br />\n")
}
