package view

import (
	"strings"

	"deployctl/internal/tui/design"
	"deployctl/internal/tui/utils"
)

// PrepareLogContent styles activity log lines by level and wraps them to maxWidth.
func PrepareLogContent(lines []string, maxWidth int) string {
	out := make([]string, len(lines))
	for i, rawLine := range lines {
		out[i] = styleLogLine(WrapText(rawLine, maxWidth))
	}
	return strings.Join(out, "\n")
}

// WrapText hard-wraps s so a viewport of width cells never has to cut it.
func WrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	return utils.WrapLines(s, width)
}

// styleLogLine returns the line wrapped in appropriate lipgloss style depending
// on the level marker it carries.
func styleLogLine(l string) string {
	switch {
	case strings.Contains(l, "[ERROR]"):
		return design.LogErrorStyle.Render(l)
	case strings.Contains(l, "[WARN]"):
		return design.LogWarnStyle.Render(l)
	case strings.Contains(l, "[DEBUG]"):
		return design.LogDebugStyle.Render(l)
	default:
		return design.LogInfoStyle.Render(l)
	}
}
