package controller

import (
	"deployctl/internal/tui/model"
	"deployctl/pkg/logging"

	tea "github.com/charmbracelet/bubbletea"
)

// NewProgram builds the dashboard program. logChannel is the TUI sink returned by
// logging.InitForTUI and may be nil.
func NewProgram(cfg model.TUIConfig, logChannel <-chan logging.LogEntry) *tea.Program {
	if cfg.OpenURL == nil {
		cfg.OpenURL = openInBrowser
	}
	m := model.InitialModel(cfg)
	m.LogChannel = logChannel

	app := NewAppModel(m)
	return tea.NewProgram(app, tea.WithAltScreen())
}
