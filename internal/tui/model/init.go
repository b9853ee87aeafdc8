package model

import (
	"time"

	"deployctl/internal/deploy"
	"deployctl/internal/store"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
)

// DefaultKeyMap returns the dashboard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "monter"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "descendre"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "diminuer"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "augmenter"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "onglet suivant"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "onglet précédent"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "valider"),
		),
		Esc: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "fermer"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q/ctrl+c", "quitter"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "aide"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("ctrl+r", "f5"),
			key.WithHelp("ctrl+r", "rafraîchir"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "ouvrir"),
		),
		CopyURL: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copier l'adresse"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "redémarrer"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "supprimer"),
		),
		Logs: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "voir logs"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "o"),
			key.WithHelp("y/o", "oui"),
		),
		Deny: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n/esc", "non"),
		),
		CopyLogs: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copier les logs"),
		),
		ToggleLog: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "journal d'activité"),
		),
		ToggleDark: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "thème clair/sombre"),
		),
	}
}

// InitialModel constructs the initial model with sensible defaults.
func InitialModel(cfg TUIConfig) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	catalog := cfg.Catalog
	if catalog == nil {
		catalog = deploy.DefaultCatalog()
	}
	st := cfg.Store
	if st == nil {
		st = store.New()
	}

	limits := deploy.Limits{
		MaxCPU:      cfg.Config.Limits.MaxCPU,
		MaxMemoryMB: cfg.Config.Limits.MaxMemoryMB,
		MaxDiskGB:   cfg.Config.Limits.MaxDiskGB,
	}

	m := &Model{
		CurrentAppMode: ModeInitializing,
		ActiveTab:      TabCreate,
		API:            cfg.API,
		Store:          st,
		Catalog:        catalog,
		Config:         cfg.Config,
		Form:           NewForm(limits, catalog),
		ActivityLog:    make([]string, 0),
		LogViewport:    viewport.New(0, 0),
		LogsViewport:   viewport.New(0, 0),
		Spinner:        s,
		Keys:           DefaultKeyMap(),
		Help:           help.New(),
		DebugMode:      cfg.DebugMode,
		ColorMode:      cfg.ColorMode,
		Now:            cfg.Now,
		OpenURL:        cfg.OpenURL,
		Clipboard:      cfg.Clipboard,
	}
	if m.Now == nil {
		m.Now = time.Now
	}
	if m.Clipboard == nil {
		m.Clipboard = clipboard.WriteAll
	}
	return m
}
