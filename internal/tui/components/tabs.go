package components

import (
	"strings"

	"deployctl/internal/tui/design"

	"github.com/charmbracelet/lipgloss"
)

// TabBar renders the page selector under the header.
type TabBar struct {
	Labels []string
	Active int
	Width  int
}

// NewTabBar creates a tab bar for labels.
func NewTabBar(labels ...string) *TabBar {
	return &TabBar{Labels: labels}
}

// WithActive marks the tab at index i.
func (t *TabBar) WithActive(i int) *TabBar {
	t.Active = i
	return t
}

// WithWidth sets the tab bar width
func (t *TabBar) WithWidth(width int) *TabBar {
	t.Width = width
	return t
}

func (t *TabBar) Render() string {
	parts := make([]string, 0, len(t.Labels))
	for i, label := range t.Labels {
		style := design.TabStyle
		if i == t.Active {
			style = design.TabActiveStyle
		}
		parts = append(parts, style.Render(label))
	}
	bar := strings.Join(parts, design.DimStyle.Render("│"))
	if t.Width > 0 {
		return lipgloss.NewStyle().Width(t.Width).MaxWidth(t.Width).Render(bar)
	}
	return bar
}
