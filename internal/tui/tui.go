package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive session and blocks until the user quits.
func Run(opts Options) error {
	applyColorProfilePreference()
	m, err := newAppModel(opts)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
