package view

import (
	"fmt"
	"strings"
	"time"

	"deployctl/internal/deploy"
	"deployctl/internal/tui/components"
	"deployctl/internal/tui/design"
	"deployctl/internal/tui/model"

	"github.com/charmbracelet/lipgloss"
)

// actionKeys are the shortcuts printed in front of each action label.
var actionKeys = map[deploy.Action]string{
	deploy.ActionOpen:    "o",
	deploy.ActionRestart: "r",
	deploy.ActionLogs:    "l",
	deploy.ActionDelete:  "d",
}

// RenderDeploymentList draws one card per deployment, or the empty placeholder.
// It depends only on its arguments.
func RenderDeploymentList(deployments []deploy.Deployment, selected, width int, now time.Time) string {
	if len(deployments) == 0 {
		return placeholder(deploy.MsgNoDeployments, width)
	}
	cards := make([]string, len(deployments))
	for i, d := range deployments {
		cards[i] = RenderDeploymentCard(d, i == selected, width, now)
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

// RenderDeploymentCard draws a single deployment.
func RenderDeploymentCard(d deploy.Deployment, selected bool, width int, now time.Time) string {
	status := design.GetStateStyle(string(d.Status)).Render(deploy.StatusLabel(d.Status))

	lines := []string{
		fmt.Sprintf("%s · %s", d.Framework, d.Type.Display()),
		fmt.Sprintf("%d CPU / %d MB", d.Resources.CPU, d.Resources.Memory),
	}
	if d.Proxmox.IP != "" {
		lines = append(lines, "IP: "+d.Proxmox.IP)
	}
	lines = append(lines,
		design.TextSecondaryStyle.Render(d.GithubURL),
		design.DimStyle.Render(deploy.FormatTimestamp(d.CreatedAt, now, time.Local)),
	)
	if d.Status == deploy.StatusFailed && d.ErrorMessage != "" {
		lines = append(lines, design.TextErrorStyle.Render(d.ErrorMessage))
	}

	return components.NewPanel(d.Name).
		WithBadge(status).
		WithLines(lines...).
		WithFooter(renderActions(d)).
		WithWidth(width).
		SetSelected(selected).
		Render()
}

func renderActions(d deploy.Deployment) string {
	actions := deploy.ActionsFor(d)
	parts := make([]string, 0, len(actions))
	for _, a := range actions {
		style := design.ActionHintStyle
		if a == deploy.ActionDelete {
			style = design.ActionDangerStyle
		}
		parts = append(parts, style.Render(fmt.Sprintf("[%s] %s", actionKeys[a], a.Label())))
	}
	return strings.Join(parts, "  ")
}

// renderDeploymentsTab adds the loading and error states around the list and keeps
// the selected card inside height.
func renderDeploymentsTab(m *model.Model, width, height int) string {
	if err := m.Store.Err(); err != nil {
		return placeholder(deploy.MsgLoadError, width)
	}
	if !m.Store.Loaded() {
		return placeholder(m.Spinner.View()+" Chargement...", width)
	}

	list := m.Deployments()
	if len(list) == 0 {
		return placeholder(deploy.MsgNoDeployments, width)
	}

	cardWidth := width
	if cardWidth > design.MaxCardWidth*2 {
		cardWidth = design.MaxCardWidth * 2
	}
	now := m.Now()
	var lines []string
	selectedStart, selectedEnd := 0, 0
	for i, d := range list {
		card := strings.Split(RenderDeploymentCard(d, i == m.Selected, cardWidth, now), "\n")
		if i == m.Selected {
			selectedStart = len(lines)
			selectedEnd = selectedStart + len(card)
		}
		lines = append(lines, card...)
	}
	return windowLines(lines, selectedStart, selectedEnd, height)
}

// windowLines returns at most height lines of lines, keeping [start,end) visible.
func windowLines(lines []string, start, end, height int) string {
	if height <= 0 || len(lines) <= height {
		return strings.Join(lines, "\n")
	}
	offset := 0
	if end > height {
		offset = end - height
	}
	if start < offset {
		offset = start
	}
	return strings.Join(lines[offset:min(offset+height, len(lines))], "\n")
}

func placeholder(text string, width int) string {
	return design.CenterHorizontal(width, design.TextSecondaryStyle.Render(text))
}
