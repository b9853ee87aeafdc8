package view

import (
	"fmt"
	"strings"

	"deployctl/internal/tui/components"
	"deployctl/internal/tui/design"
	"deployctl/internal/tui/model"

	"github.com/charmbracelet/lipgloss"
)

const appTitle = "deployctl"

// Render renders the UI according to the current model state.
func Render(m *model.Model) string {
	switch m.CurrentAppMode {
	case model.ModeQuitting:
		return design.TextStyle.Render(m.QuittingMessage)
	case model.ModeInitializing:
		if m.Width == 0 || m.Height == 0 {
			return design.TextStyle.Render("Initialisation... (en attente de la taille du terminal)")
		}
		return design.TextStyle.Render("Initialisation...")
	case model.ModeHelpOverlay:
		return renderHelpOverlay(m)
	case model.ModeLogOverlay:
		return renderLogOverlay(m)
	case model.ModeConfirmOverlay:
		return renderConfirmOverlay(m)
	case model.ModeLogsOverlay:
		return renderLogsOverlay(m)
	case model.ModeProgressOverlay:
		return renderProgressOverlay(m)
	default:
		return renderDashboard(m)
	}
}

func renderDashboard(m *model.Model) string {
	header := renderHeader(m, m.Width)

	labels := make([]string, len(model.Tabs))
	for i, t := range model.Tabs {
		labels[i] = fmt.Sprintf("%d %s", i+1, t)
	}
	tabs := components.NewTabBar(labels...).WithActive(int(m.ActiveTab)).WithWidth(m.Width).Render()
	statusBar := renderStatusBar(m, m.Width)

	bodyHeight := m.Height - lipgloss.Height(header) - lipgloss.Height(tabs) - lipgloss.Height(statusBar)
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	contentWidth := m.Width - design.SpaceSM*2

	var body string
	switch m.ActiveTab {
	case model.TabCreate:
		body = renderCreateTab(m, contentWidth)
	case model.TabDeployments:
		body = renderDeploymentsTab(m, contentWidth, bodyHeight)
	case model.TabResources:
		body = renderResourcesTab(m, contentWidth)
	}
	body = fitHeight(body, bodyHeight)
	body = lipgloss.NewStyle().PaddingLeft(design.SpaceSM).Render(body)

	return lipgloss.JoinVertical(lipgloss.Left, header, tabs, body, statusBar)
}

// renderHeader shows the title, a spinner while anything loads and the connectivity label.
func renderHeader(m *model.Model, width int) string {
	h := components.NewHeader(appTitle).WithWidth(width)
	if m.LoadingList || m.ResourcesLoading {
		h = h.WithSpinner(m.Spinner.View())
	}
	if m.DebugMode {
		h = h.WithSubtitle("debug")
	}

	conn := design.ColorTextMuted
	switch m.Connectivity {
	case model.ConnConnected:
		conn = design.ColorSuccess
	case model.ConnDisconnected, model.ConnError:
		conn = design.ColorError
	}
	indicator := lipgloss.NewStyle().Foreground(conn).Render(IconConnected) + " " + m.Connectivity.Label()
	return h.WithRightContent(indicator).Render()
}

func renderStatusBar(m *model.Model, width int) string {
	c := m.Counts
	left := fmt.Sprintf("%d déploiements · %d actifs · %d en attente", c.Total, c.Running, c.Pending)
	return components.NewStatusBar(width).
		WithLeftText(left).
		WithRightText("? aide  q quitter").
		WithMessage(m.StatusBarMessage, m.StatusBarMessageType).
		Render()
}

// fitHeight pads or cuts s to exactly height lines.
func fitHeight(s string, height int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
