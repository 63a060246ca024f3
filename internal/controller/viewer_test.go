package controller

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMarkdownViewer(t *testing.T) {
	assert.Equal(t, "notty", NewMarkdownViewer(false, 0).Style)
	assert.Equal(t, "auto", NewMarkdownViewer(true, 120).Style)
	assert.Equal(t, 120, NewMarkdownViewer(true, 120).Width)
}

func TestMarkdownViewer_Render(t *testing.T) {
	viewer := NewMarkdownViewer(false, 80)

	rendered, err := viewer.Render("# Unfold Log\n\n## Renamed Files\n\n- `a.txt` became `[conflict-1]-a.txt`\n")
	require.NoError(t, err)

	assert.Contains(t, rendered, "Unfold Log")
	assert.Contains(t, rendered, "Renamed Files")
	assert.True(t, strings.Contains(rendered, "[conflict-1]-a.txt"), rendered)
}

func TestMarkdownViewer_UnknownStyle(t *testing.T) {
	viewer := &MarkdownViewer{Style: "/no/such/style.json"}

	_, err := viewer.Render("# Title\n")
	assert.Error(t, err)
}
