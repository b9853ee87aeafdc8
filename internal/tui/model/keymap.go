package model

import "github.com/charmbracelet/bubbles/key"

// FullHelp returns the bindings shown in the help overlay, one slice per column.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Tab, k.ShiftTab, k.Enter},    // Navigation column
		{k.Open, k.CopyURL, k.Restart, k.Logs, k.Delete, k.Refresh},    // Deployment column
		{k.Help, k.ToggleLog, k.CopyLogs, k.ToggleDark, k.Esc, k.Quit}, // UI/General column
	}
}

// ShortHelp returns the bindings kept in the status bar.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}
