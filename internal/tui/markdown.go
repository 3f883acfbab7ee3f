package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// renderMarkdown renders assistant markdown for the terminal. Answers come
// back from the API as plain markdown; on any render failure the raw text is
// shown instead.
func renderMarkdown(content string, width int) string {
	if width < 20 {
		width = 20
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}

	out, err := r.Render(content)
	if err != nil {
		return content
	}

	return strings.Trim(out, "\n")
}
