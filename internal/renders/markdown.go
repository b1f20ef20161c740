package renders

import (
	"io"
	"os"

	markdown "github.com/MichaelMure/go-term-markdown"
	"golang.org/x/term"
)

const (
	defaultWidth = 100
	leftPad      = 2
)

// RenderMarkdown renders markdown for a terminal, wrapping at the width of
// stdout when it is a terminal.
func RenderMarkdown(content string) string {
	width := defaultWidth
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > leftPad*2 {
		width = w - leftPad
	}
	return string(markdown.Render(content, width, leftPad))
}

// WriteMarkdown prints content to w. On a TTY it is rendered with colors
// and wrapping; otherwise the raw markdown is written so pipes stay clean.
func WriteMarkdown(w io.Writer, content string, isTTY bool) error {
	if isTTY {
		content = RenderMarkdown(content)
	}
	_, err := io.WriteString(w, content)
	return err
}
