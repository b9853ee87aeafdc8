package view

import (
	"fmt"
	"strconv"

	"deployctl/internal/deploy"
	"deployctl/internal/tui/components"
	"deployctl/internal/tui/design"
	"deployctl/internal/tui/model"

	bar "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// RenderResources draws the node snapshot. A snapshot carrying an error renders
// that message and nothing else.
func RenderResources(snap deploy.ResourceSnapshot, width int) string {
	if snap.Error != "" {
		return placeholder(snap.Error, width)
	}

	cardWidth := design.MinCardWidth + 8
	if width < cardWidth {
		cardWidth = width
	}
	gauge := newGauge(cardWidth - 4)

	cards := []string{
		components.NewPanel("Noeud Proxmox").
			WithLines(
				stat("Nom", snap.Node.Name),
				stat("Statut", design.GetStateStyle(snap.Node.Status).Render(snap.Node.Status)),
			).WithWidth(cardWidth).Render(),
		components.NewPanel("CPU").
			WithLines(
				stat("Coeurs", strconv.Itoa(snap.Node.CPU.Cores)),
				stat("Utilisation", number(snap.Node.CPU.Usage)+"%"),
				gauge.ViewAs(snap.Node.CPU.Usage/100),
			).WithWidth(cardWidth).Render(),
		components.NewPanel("Mémoire").
			WithLines(
				stat("Total", number(snap.Node.Memory.Total)+" GB"),
				stat("Utilisée", number(snap.Node.Memory.Used)+" GB"),
				stat("Disponible", number(snap.Node.Memory.Free)+" GB"),
				gauge.ViewAs(ratio(snap.Node.Memory.Used, snap.Node.Memory.Total)),
			).WithWidth(cardWidth).Render(),
		components.NewPanel("Machines Virtuelles").
			WithLines(
				stat("Total", strconv.Itoa(snap.VMs.Total)),
				stat("En cours", strconv.Itoa(snap.VMs.Running)),
			).WithWidth(cardWidth).Render(),
		components.NewPanel("Conteneurs LXC").
			WithLines(
				stat("Total", strconv.Itoa(snap.Containers.Total)),
				stat("En cours", strconv.Itoa(snap.Containers.Running)),
			).WithWidth(cardWidth).Render(),
	}

	return flowCards(cards, cardWidth, width)
}

func renderResourcesTab(m *model.Model, width int) string {
	switch {
	case m.ResourcesErr != nil:
		return placeholder(deploy.MsgLoadError, width)
	case m.Resources == nil:
		return placeholder(m.Spinner.View()+" Chargement...", width)
	}
	return RenderResources(*m.Resources, width)
}

// flowCards lays cards out left to right, wrapping to a new row when width is full.
func flowCards(cards []string, cardWidth, width int) string {
	perRow := width / (cardWidth + 1)
	if perRow < 1 {
		perRow = 1
	}
	var rows []string
	for i := 0; i < len(cards); i += perRow {
		end := min(i+perRow, len(cards))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[i:end]...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func newGauge(width int) bar.Model {
	g := bar.New(bar.WithDefaultGradient(), bar.WithoutPercentage())
	g.Width = max(width, 4)
	return g
}

func stat(label, value string) string {
	return fmt.Sprintf("%s %s", design.TextSecondaryStyle.Render(label+":"), value)
}

// number prints v the way the backend sent it: no trailing zeros.
func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func ratio(part, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return part / total
}
