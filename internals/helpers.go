package internals

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorError  = lipgloss.Color("#EF4444")
	colorHeader = lipgloss.Color("#7C3AED")
)

// Styles used in the listing. They are bound to the listing writer, so
// output going to a file or a buffer stays plain text.
type Styles struct {
	Error  lipgloss.Style
	Header lipgloss.Style
}

func NewStyles(w io.Writer) Styles {
	r := lipgloss.NewRenderer(w)
	return Styles{
		Error:  r.NewStyle().Bold(true).Foreground(colorError),
		Header: r.NewStyle().Bold(true).Foreground(colorHeader),
	}
}
