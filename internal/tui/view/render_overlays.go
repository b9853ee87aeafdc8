package view

import (
	"fmt"
	"strings"

	"deployctl/internal/deploy"
	"deployctl/internal/progress"
	"deployctl/internal/tui/design"
	"deployctl/internal/tui/model"
	"deployctl/internal/tui/utils"

	"github.com/charmbracelet/lipgloss"
)

var overlayBackdrop = lipgloss.WithWhitespaceBackground(design.ColorBackgroundOverlay)

// placeOverlay centers box above the status bar.
func placeOverlay(m *model.Model, box string) string {
	canvas := lipgloss.Place(m.Width, max(m.Height-1, 1), lipgloss.Center, lipgloss.Center, box, overlayBackdrop)
	return lipgloss.JoinVertical(lipgloss.Left, canvas, renderStatusBar(m, m.Width))
}

// renderHelpOverlay lays the key map out in columns.
func renderHelpOverlay(m *model.Model) string {
	title := design.HelpTitleStyle.Render("RACCOURCIS CLAVIER")

	columns := m.Keys.FullHelp()
	keyWidths := make([]int, len(columns))
	descWidths := make([]int, len(columns))
	rows := 0
	for c, col := range columns {
		for _, b := range col {
			keyWidths[c] = max(keyWidths[c], lipgloss.Width(b.Help().Key))
			descWidths[c] = max(descWidths[c], lipgloss.Width(b.Help().Desc))
		}
		rows = max(rows, len(col))
	}

	lines := make([]string, 0, rows)
	for r := 0; r < rows; r++ {
		var sb strings.Builder
		for c, col := range columns {
			if c > 0 {
				sb.WriteString("   ")
			}
			k, d := "", ""
			if r < len(col) {
				k, d = col[r].Help().Key, col[r].Help().Desc
			}
			sb.WriteString(design.TextInfoStyle.Render(utils.PadRight(k, keyWidths[c])))
			sb.WriteString("  ")
			sb.WriteString(utils.PadRight(d, descWidths[c]))
		}
		lines = append(lines, strings.TrimRight(sb.String(), " "))
	}

	box := design.CenteredOverlayContainerStyle.Render(title + "\n\n" + strings.Join(lines, "\n"))
	return placeOverlay(m, box)
}

func renderLogOverlay(m *model.Model) string {
	title := design.LogPanelTitleStyle.Render(SafeIcon(IconScroll) + "Journal d'activité  (↑/↓ défiler  •  y copier  •  Esc fermer)")
	return placeOverlay(m, logBox(m, title, m.LogViewport.View()))
}

// renderLogsOverlay shows the provisioning log of one deployment.
func renderLogsOverlay(m *model.Model) string {
	title := design.LogPanelTitleStyle.Render(SafeIcon(IconScroll) + m.LogsTitle)
	hint := design.DimStyle.Render("↑/↓ défiler  •  y copier  •  Esc fermer")
	return placeOverlay(m, logBox(m, title, m.LogsViewport.View()+"\n"+hint))
}

func logBox(m *model.Model, title, body string) string {
	width := m.Width*8/10 - design.LogOverlayStyle.GetHorizontalFrameSize()
	height := m.Height*7/10 - design.LogOverlayStyle.GetVerticalFrameSize()
	return design.LogOverlayStyle.
		Width(max(width, 10)).
		Height(max(height, 3)).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, body))
}

// renderConfirmOverlay asks before a deployment is deleted. Nothing is sent
// until the user answers yes.
func renderConfirmOverlay(m *model.Model) string {
	lines := []string{design.TextWarningStyle.Render(SafeIcon(IconWarning) + deploy.MsgConfirmDelete)}
	if d := m.PendingDelete; d != nil {
		lines = append(lines, "", fmt.Sprintf("%s (#%d)", design.TitleStyle.Render(d.Name), d.ID))
	}
	lines = append(lines, "",
		design.ActionDangerStyle.Render("[y/o] Oui")+"  "+design.ActionHintStyle.Render("[n/Esc] Non"))

	return placeOverlay(m, design.ConfirmOverlayStyle.Render(strings.Join(lines, "\n")))
}

func renderProgressOverlay(m *model.Model) string {
	if m.Progress == nil {
		return renderDashboard(m)
	}
	title := SafeIcon(IconRocket) + deploy.MsgProgressRunning
	if m.ProgressName != "" {
		title += " " + m.ProgressName
	}
	return placeOverlay(m, RenderProgress(m.Progress, title, m.Width*6/10))
}

// RenderProgress draws the step list and the tracker log.
func RenderProgress(t *progress.Tracker, title string, width int) string {
	lines := []string{design.HelpTitleStyle.Render(title), ""}
	for _, s := range t.Steps() {
		lines = append(lines, renderStep(s))
	}

	if log := t.Log(); len(log) > 0 {
		lines = append(lines, "")
		for _, l := range log {
			lines = append(lines, design.DimStyle.Render(l))
		}
	}

	hint := "Esc fermer"
	if t.Phase() == progress.PhaseFailed {
		hint = "Échec du déploiement  •  " + hint
	}
	lines = append(lines, "", design.DimStyle.Render(hint))

	return design.CenteredOverlayContainerStyle.Width(max(width, 30)).Render(strings.Join(lines, "\n"))
}

func renderStep(s progress.Step) string {
	switch s.State {
	case progress.StepActive:
		return design.StepActiveStyle.Render(SafeIcon(IconActive) + s.Label)
	case progress.StepCompleted:
		return design.StepCompletedStyle.Render(SafeIcon(IconCheck) + s.Label)
	case progress.StepFailed:
		return design.StepFailedStyle.Render(SafeIcon(IconCross) + s.Label)
	default:
		return design.StepPendingStyle.Render(SafeIcon(IconPending) + s.Label)
	}
}
