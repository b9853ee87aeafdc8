package controller

import (
	"deployctl/internal/tui/model"

	tea "github.com/charmbracelet/bubbletea"
)

// handleWindowSizeMsg updates the model with the new terminal dimensions when the window is resized.
// It also transitions from ModeInitializing → ModeMainDashboard once we know the size.
func handleWindowSizeMsg(m *model.Model, msg tea.WindowSizeMsg) (*model.Model, tea.Cmd) {
	m.Width = msg.Width
	m.Height = msg.Height

	// Overlays take 80% x 70% of the screen, minus their frame and title.
	w := m.Width*8/10 - 6
	h := m.Height*7/10 - 6
	if w < 10 {
		w = 10
	}
	if h < 3 {
		h = 3
	}
	m.LogViewport.Width, m.LogViewport.Height = w, h
	m.LogsViewport.Width, m.LogsViewport.Height = w, h
	m.ActivityLogDirty = true

	if m.CurrentAppMode == model.ModeInitializing {
		m.CurrentAppMode = model.ModeMainDashboard
	}
	return m, nil
}
