package components

import (
	"strings"

	"deployctl/internal/tui/design"
	"deployctl/internal/tui/utils"

	"github.com/charmbracelet/lipgloss"
)

// PanelType defines the border colour of a panel
type PanelType int

const (
	PanelTypeDefault PanelType = iota
	PanelTypeSuccess
	PanelTypeError
	PanelTypeWarning
	PanelTypeInfo
)

// Panel is a bordered card: a title row with an optional badge on the right,
// then body lines, then an optional footer. Height follows the content.
type Panel struct {
	Title    string
	Badge    string
	Lines    []string
	Footer   string
	Width    int
	Selected bool
	Type     PanelType
}

// NewPanel creates a new panel with default settings
func NewPanel(title string) *Panel {
	return &Panel{
		Title: title,
		Width: design.MinCardWidth,
	}
}

// WithBadge sets the right-aligned text of the title row.
func (p *Panel) WithBadge(badge string) *Panel {
	p.Badge = badge
	return p
}

// WithLines appends body lines.
func (p *Panel) WithLines(lines ...string) *Panel {
	p.Lines = append(p.Lines, lines...)
	return p
}

// WithFooter sets the last line, separated from the body by a blank line.
func (p *Panel) WithFooter(footer string) *Panel {
	p.Footer = footer
	return p
}

// WithWidth sets the outer width.
func (p *Panel) WithWidth(width int) *Panel {
	p.Width = width
	return p
}

// WithType sets the panel type for styling
func (p *Panel) WithType(panelType PanelType) *Panel {
	p.Type = panelType
	return p
}

// SetSelected updates the selection state
func (p *Panel) SetSelected(selected bool) *Panel {
	p.Selected = selected
	return p
}

// Render returns the styled panel
func (p *Panel) Render() string {
	if p.Width < design.MinCardWidth {
		p.Width = design.MinCardWidth
	}
	style := p.getStyle()
	inner := p.Width - style.GetHorizontalFrameSize()
	if inner < 1 {
		inner = 1
	}

	lines := []string{p.renderTitle(inner)}
	for _, l := range p.Lines {
		lines = append(lines, utils.TruncateString(l, inner))
	}
	if p.Footer != "" {
		lines = append(lines, "", utils.TruncateString(p.Footer, inner))
	}

	return style.Width(inner + style.GetHorizontalPadding()).Render(strings.Join(lines, "\n"))
}

// getStyle returns the appropriate style based on panel state
func (p *Panel) getStyle() lipgloss.Style {
	style := design.CardStyle
	if p.Selected {
		return design.CardSelectedStyle
	}
	switch p.Type {
	case PanelTypeSuccess:
		return style.BorderForeground(design.ColorSuccess)
	case PanelTypeError:
		return style.BorderForeground(design.ColorError)
	case PanelTypeWarning:
		return style.BorderForeground(design.ColorWarning)
	case PanelTypeInfo:
		return style.BorderForeground(design.ColorInfo)
	default:
		return style
	}
}

func (p *Panel) renderTitle(width int) string {
	title := design.CardTitleStyle.Render(p.Title)
	if p.Badge == "" {
		return utils.TruncateString(title, width)
	}
	gap := width - lipgloss.Width(title) - lipgloss.Width(p.Badge)
	if gap < 1 {
		titleWidth := width - lipgloss.Width(p.Badge) - 1
		if titleWidth < 1 {
			return utils.TruncateString(p.Badge, width)
		}
		title = design.CardTitleStyle.Render(utils.TruncateString(p.Title, titleWidth))
		gap = width - lipgloss.Width(title) - lipgloss.Width(p.Badge)
		if gap < 1 {
			gap = 1
		}
	}
	return title + strings.Repeat(" ", gap) + p.Badge
}
