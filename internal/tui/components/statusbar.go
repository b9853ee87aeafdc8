package components

import (
	"strings"

	"deployctl/internal/tui/design"
	"deployctl/internal/tui/model"
	"deployctl/internal/tui/utils"

	"github.com/charmbracelet/lipgloss"
)

// StatusBar represents the bottom status bar
type StatusBar struct {
	Width       int
	Message     string
	MessageType model.MessageType
	LeftText    string
	RightText   string
	ShowMessage bool
}

// NewStatusBar creates a new status bar
func NewStatusBar(width int) *StatusBar {
	return &StatusBar{
		Width: width,
	}
}

// WithMessage sets a status message
func (s *StatusBar) WithMessage(message string, msgType model.MessageType) *StatusBar {
	s.Message = message
	s.MessageType = msgType
	s.ShowMessage = message != ""
	return s
}

// WithLeftText sets the left side text
func (s *StatusBar) WithLeftText(text string) *StatusBar {
	s.LeftText = text
	return s
}

// WithRightText sets the right side text
func (s *StatusBar) WithRightText(text string) *StatusBar {
	s.RightText = text
	return s
}

// Render returns the styled status bar. A notification replaces the left text
// but keeps the right side.
func (s *StatusBar) Render() string {
	style := s.getStyle()
	inner := s.Width - design.SpaceSM*2

	left := s.LeftText
	if s.ShowMessage {
		left = s.Message
	}

	var content string
	switch {
	case left != "" && s.RightText != "":
		padding := inner - lipgloss.Width(left) - lipgloss.Width(s.RightText)
		if padding > 0 {
			content = left + strings.Repeat(" ", padding) + s.RightText
		} else {
			content = utils.TruncateString(left, inner)
		}
	case left != "":
		content = utils.TruncateString(left, inner)
	default:
		content = s.RightText
	}

	return style.
		Width(s.Width).
		MaxWidth(s.Width).
		Render(content)
}

// getStyle returns the appropriate style based on message type
func (s *StatusBar) getStyle() lipgloss.Style {
	if s.ShowMessage {
		switch s.MessageType {
		case model.StatusBarSuccess:
			return design.StatusBarSuccessStyle
		case model.StatusBarError:
			return design.StatusBarErrorStyle
		case model.StatusBarWarning:
			return design.StatusBarWarningStyle
		case model.StatusBarInfo:
			return design.StatusBarInfoStyle
		}
	}
	return design.StatusBarStyle
}
