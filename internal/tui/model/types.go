package model

import (
	"time"

	"deployctl/internal/api"
	"deployctl/internal/config"
	"deployctl/internal/deploy"
	"deployctl/internal/progress"
	"deployctl/internal/store"
	"deployctl/pkg/logging"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// AppMode represents the current mode of the application
type AppMode int

const (
	ModeInitializing AppMode = iota
	ModeMainDashboard
	ModeHelpOverlay
	ModeLogOverlay
	ModeConfirmOverlay
	ModeLogsOverlay
	ModeProgressOverlay
	ModeQuitting
)

// String provides a human-readable representation of the AppMode.
func (m AppMode) String() string {
	switch m {
	case ModeInitializing:
		return "Initializing"
	case ModeMainDashboard:
		return "MainDashboard"
	case ModeHelpOverlay:
		return "HelpOverlay"
	case ModeLogOverlay:
		return "LogOverlay"
	case ModeConfirmOverlay:
		return "ConfirmOverlay"
	case ModeLogsOverlay:
		return "LogsOverlay"
	case ModeProgressOverlay:
		return "ProgressOverlay"
	case ModeQuitting:
		return "Quitting"
	default:
		return "Unknown"
	}
}

// IsOverlay reports whether the mode draws on top of the dashboard.
func (m AppMode) IsOverlay() bool {
	switch m {
	case ModeHelpOverlay, ModeLogOverlay, ModeConfirmOverlay, ModeLogsOverlay, ModeProgressOverlay:
		return true
	}
	return false
}

// Tab is one of the three dashboard pages.
type Tab int

const (
	TabCreate Tab = iota
	TabDeployments
	TabResources
)

// Tabs lists the pages in display order.
var Tabs = []Tab{TabCreate, TabDeployments, TabResources}

func (t Tab) String() string {
	switch t {
	case TabCreate:
		return "Nouveau déploiement"
	case TabDeployments:
		return "Mes déploiements"
	case TabResources:
		return "Ressources"
	default:
		return "?"
	}
}

// MessageType represents the type of status bar message
type MessageType int

const (
	StatusBarInfo MessageType = iota
	StatusBarSuccess
	StatusBarError
	StatusBarWarning
)

// Connectivity is the state of the header indicator.
type Connectivity int

const (
	ConnUnknown Connectivity = iota
	ConnConnected
	ConnDisconnected
	ConnError
)

// Label is the French text shown next to the indicator.
func (c Connectivity) Label() string {
	switch c {
	case ConnConnected:
		return deploy.ConnectedLabel
	case ConnDisconnected:
		return deploy.DisconnectedLabel
	case ConnError:
		return deploy.ConnErrorLabel
	default:
		return "…"
	}
}

// Constants for UI
const (
	MaxActivityLogLines = 1000
)

// KeyMap defines all the key bindings for the application
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Tab        key.Binding
	ShiftTab   key.Binding
	Enter      key.Binding
	Esc        key.Binding
	Quit       key.Binding
	Help       key.Binding
	Refresh    key.Binding
	Open       key.Binding
	CopyURL    key.Binding
	Restart    key.Binding
	Delete     key.Binding
	Logs       key.Binding
	Confirm    key.Binding
	Deny       key.Binding
	CopyLogs   key.Binding
	ToggleLog  key.Binding
	ToggleDark key.Binding
}

// TUIConfig carries everything the dashboard needs from the command that starts it.
type TUIConfig struct {
	Config    config.DeployctlConfig
	API       api.DeploymentAPI
	Store     *store.DeploymentStore
	Catalog   *deploy.Catalog
	DebugMode bool
	ColorMode string

	// Clock, browser and clipboard are swappable for tests.
	Now       func() time.Time
	OpenURL   func(url string) error
	Clipboard func(text string) error
}

// Model holds the whole dashboard state. Update is the only writer.
type Model struct {
	// --- Current State & Mode ---
	CurrentAppMode AppMode
	LastAppMode    AppMode
	ActiveTab      Tab
	Width          int
	Height         int

	// --- Backend ---
	API     api.DeploymentAPI
	Store   *store.DeploymentStore
	Catalog *deploy.Catalog
	Config  config.DeployctlConfig

	// --- Header ---
	Connectivity Connectivity
	Counts       deploy.DeploymentCounts

	// --- Deployments tab ---
	Selected    int
	LoadingList bool

	// --- Resources tab ---
	Resources        *deploy.ResourceSnapshot
	ResourcesErr     error
	ResourcesLoading bool

	// --- Create tab ---
	Form *Form

	// --- Progress modal ---
	Progress      *progress.Tracker
	ProgressRunID uint64
	ProgressName  string

	// --- Confirm / logs overlays ---
	PendingDelete *deploy.Deployment
	LogsTitle     string
	LogsContent   string
	LogsViewport  viewport.Model

	// --- Activity log ---
	ActivityLog      []string
	ActivityLogDirty bool
	LogViewport      viewport.Model
	LogChannel       <-chan logging.LogEntry

	// --- Status bar ---
	StatusBarMessage     string
	StatusBarMessageType MessageType
	StatusBarClearCancel chan struct{}

	// --- UI chrome ---
	Spinner         spinner.Model
	Keys            KeyMap
	Help            help.Model
	DebugMode       bool
	ColorMode       string
	QuittingMessage string

	Now       func() time.Time
	OpenURL   func(url string) error
	Clipboard func(text string) error
}

// SetStatusMessage updates the status bar message
func (m *Model) SetStatusMessage(message string, msgType MessageType, clearAfter time.Duration) tea.Cmd {
	m.StatusBarMessage = message
	m.StatusBarMessageType = msgType

	if m.StatusBarClearCancel != nil {
		close(m.StatusBarClearCancel)
	}

	m.StatusBarClearCancel = make(chan struct{})
	captured := m.StatusBarClearCancel

	return tea.Tick(clearAfter, func(t time.Time) tea.Msg {
		select {
		case <-captured:
			return nil
		default:
			return ClearStatusBarMsg{}
		}
	})
}

// Notify shows message for the configured notification timeout.
func (m *Model) Notify(message string, msgType MessageType) tea.Cmd {
	return m.SetStatusMessage(message, msgType, m.Config.UI.NotificationTimeout)
}

// Deployments is the cached list, newest first.
func (m *Model) Deployments() []deploy.Deployment {
	if m.Store == nil {
		return nil
	}
	return m.Store.Snapshot()
}

// SelectedDeployment returns the deployment under the cursor. Nothing is selectable
// while the last fetch failed, since the list is then hidden behind the error.
func (m *Model) SelectedDeployment() (deploy.Deployment, bool) {
	if m.Store == nil || m.Store.Err() != nil {
		return deploy.Deployment{}, false
	}
	list := m.Deployments()
	if m.Selected < 0 || m.Selected >= len(list) {
		return deploy.Deployment{}, false
	}
	return list[m.Selected], true
}

// ClampSelection keeps the cursor inside the list after it shrank.
func (m *Model) ClampSelection() {
	n := len(m.Deployments())
	if m.Selected >= n {
		m.Selected = n - 1
	}
	if m.Selected < 0 {
		m.Selected = 0
	}
}
