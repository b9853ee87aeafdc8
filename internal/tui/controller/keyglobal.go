package controller

import (
	"fmt"
	"strings"

	"deployctl/internal/tui/model"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// handleKeyMsgGlobal routes a key press to the open overlay, or to the active tab.
func handleKeyMsgGlobal(m *model.Model, keyMsg tea.KeyMsg) (*model.Model, tea.Cmd) {
	// --- Overlay-specific key handling --------------------------------------
	switch m.CurrentAppMode {
	case model.ModeConfirmOverlay:
		return handleConfirmKeys(m, keyMsg)

	case model.ModeProgressOverlay:
		if key.Matches(keyMsg, m.Keys.Esc) {
			dismissProgress(m)
		}
		return m, nil

	case model.ModeLogsOverlay:
		switch {
		case key.Matches(keyMsg, m.Keys.Esc), key.Matches(keyMsg, m.Keys.Logs):
			m.CurrentAppMode = model.ModeMainDashboard
			return m, nil
		case key.Matches(keyMsg, m.Keys.CopyLogs):
			return m, copyToClipboard(m, m.LogsContent, "Logs copiés dans le presse-papiers")
		}
		var vpCmd tea.Cmd
		m.LogsViewport, vpCmd = m.LogsViewport.Update(keyMsg)
		return m, vpCmd

	case model.ModeLogOverlay:
		switch {
		case key.Matches(keyMsg, m.Keys.Esc), key.Matches(keyMsg, m.Keys.ToggleLog):
			m.CurrentAppMode = model.ModeMainDashboard
			return m, nil
		case key.Matches(keyMsg, m.Keys.CopyLogs):
			return m, copyToClipboard(m, strings.Join(m.ActivityLog, "\n"), "Journal copié dans le presse-papiers")
		}
		var vpCmd tea.Cmd
		m.LogViewport, vpCmd = m.LogViewport.Update(keyMsg)
		return m, vpCmd

	case model.ModeHelpOverlay:
		if key.Matches(keyMsg, m.Keys.Esc) || key.Matches(keyMsg, m.Keys.Help) {
			m.CurrentAppMode = model.ModeMainDashboard
		}
		return m, nil

	case model.ModeInitializing, model.ModeQuitting:
		return m, nil
	}

	// --- Dashboard -----------------------------------------------------------
	switch {
	case key.Matches(keyMsg, m.Keys.Tab):
		return m, activateTab(m, (m.ActiveTab+1)%model.Tab(len(model.Tabs)))
	case key.Matches(keyMsg, m.Keys.ShiftTab):
		return m, activateTab(m, (m.ActiveTab+model.Tab(len(model.Tabs))-1)%model.Tab(len(model.Tabs)))
	case key.Matches(keyMsg, m.Keys.Refresh):
		return m, refreshActiveTab(m)
	}

	if typing(m) {
		return handleFormKeys(m, keyMsg)
	}

	switch keyMsg.String() {
	case "1", "2", "3":
		return m, activateTab(m, model.Tabs[keyMsg.String()[0]-'1'])
	}

	switch {
	case key.Matches(keyMsg, m.Keys.Help):
		m.LastAppMode = m.CurrentAppMode
		m.CurrentAppMode = model.ModeHelpOverlay
		return m, nil
	case key.Matches(keyMsg, m.Keys.ToggleLog):
		m.LastAppMode = m.CurrentAppMode
		m.CurrentAppMode = model.ModeLogOverlay
		m.LogViewport.GotoBottom()
		return m, nil
	case key.Matches(keyMsg, m.Keys.ToggleDark):
		currentIsDark := lipgloss.HasDarkBackground()
		lipgloss.SetHasDarkBackground(!currentIsDark)
		m.ColorMode = fmt.Sprintf("%s (Dark: %v)", lipgloss.ColorProfile().String(), !currentIsDark)
		return m, nil
	}

	switch m.ActiveTab {
	case model.TabCreate:
		return handleFormKeys(m, keyMsg)
	case model.TabDeployments:
		return handleDeploymentKeys(m, keyMsg)
	}
	return m, nil
}

func refreshActiveTab(m *model.Model) tea.Cmd {
	switch m.ActiveTab {
	case model.TabDeployments:
		return loadDeployments(m)
	case model.TabResources:
		return loadResources(m)
	}
	return nil
}

func copyToClipboard(m *model.Model, text, okMessage string) tea.Cmd {
	if err := m.Clipboard(text); err != nil {
		LogError(controllerSubsystem, err, "clipboard copy failed")
		return m.Notify("Copie impossible", model.StatusBarError)
	}
	return m.Notify(okMessage, model.StatusBarSuccess)
}
