package view

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Icon constants
const (
	IconCheck     = "✓"
	IconCross     = "✗"
	IconPending   = "○"
	IconActive    = "●"
	IconWarning   = "⚠" // U+26A0 without VS16
	IconScroll    = "📜" // U+1F4DC
	IconQuestion  = "❓" // U+2753
	IconServer    = "🖥" // U+1F5A5 without VS16
	IconRocket    = "🚀"
	IconConnected = "●"
)

// SafeIcon wraps an icon with proper spacing to prevent rendering issues.
// Wide icons (two cells) get two trailing spaces so at least one stays visible.
func SafeIcon(icon string) string {
	spaces := 1
	if runewidth.StringWidth(icon) >= 2 {
		spaces = 2
	}
	return fmt.Sprintf("%s%s", icon, strings.Repeat(" ", spaces))
}

// IconText formats an icon with text, handling spacing properly
func IconText(icon string, text string) string {
	return SafeIcon(icon) + text
}
