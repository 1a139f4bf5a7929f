package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the viewer in the alternate screen with full mouse motion
// reporting and blocks until it exits.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	_, err := p.Run()
	return err
}
