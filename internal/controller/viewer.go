package controller

import (
	"github.com/charmbracelet/glamour"
)

// MarkdownViewer renders audit documents for the terminal.
type MarkdownViewer struct {
	Style string // "auto", "dark", "light", "notty" or a style file path
	Width int    // 0 keeps glamour's default wrapping
}

// NewMarkdownViewer picks an auto-detected style on a terminal and plain
// output otherwise.
func NewMarkdownViewer(isTTY bool, width int) *MarkdownViewer {
	style := "notty"
	if isTTY {
		style = "auto"
	}

	return &MarkdownViewer{Style: style, Width: width}
}

// Render converts markdown into styled terminal text.
func (v *MarkdownViewer) Render(markdown string) (string, error) {
	var options []glamour.TermRendererOption

	switch v.Style {
	case "", "auto":
		options = append(options, glamour.WithAutoStyle())
	default:
		options = append(options, glamour.WithStylePath(v.Style))
	}

	if v.Width > 0 {
		options = append(options, glamour.WithWordWrap(v.Width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return "", err
	}

	return renderer.Render(markdown)
}
