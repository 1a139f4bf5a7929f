package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

const helpMarkdown = `## Graph Viewer

**Mouse**
- Drag a node to reposition it; release to let go
- Drag empty space to pan
- Scroll to zoom around the cursor
- Hover a node to highlight its neighborhood

**Keys**
- ` + "`+`/`-`" + ` zoom, ` + "`0`" + ` reset view
- ` + "`y`" + ` copy hovered node id
- ` + "`space`" + ` pause/resume the simulation
- ` + "`r`" + ` reload the graph file
- ` + "`?`" + ` toggle this help, ` + "`q`" + ` quit
`

// renderHelp renders the help overlay, falling back to raw markdown if
// glamour cannot build a renderer for this terminal.
func renderHelp(width int) string {
	modalWidth := 56
	if modalWidth > width-4 {
		modalWidth = width - 4
	}

	content := helpMarkdown
	if r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(modalWidth-6),
	); err == nil {
		if out, err := r.Render(helpMarkdown); err == nil {
			content = strings.TrimRight(out, "\n")
		}
	}

	modalStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#5e81ac")).
		Padding(0, 1).
		Width(modalWidth)

	return modalStyle.Render(content)
}
