package controller

import (
	"fmt"

	"deployctl/internal/api"
	"deployctl/internal/tui/model"
	"deployctl/internal/tui/view"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

const controllerDispatchSubsystem = "ControllerDispatch"

// Update is the single entry point for every message the program receives.
func Update(msg tea.Msg, m *model.Model) (*model.Model, tea.Cmd) {
	model.RecordMsgSample(msg)
	return mainControllerDispatch(m, msg)
}

// mainControllerDispatch is the central message routing function for the TUI application.
// It receives all Bubble Tea messages and directs them to the appropriate handler functions
// based on the message type and current application mode.
func mainControllerDispatch(m *model.Model, msg tea.Msg) (*model.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg.(type) {
	case spinner.TickMsg, tea.MouseMsg, model.NewLogEntryMsg:
	default:
		LogDebug(m, controllerDispatchSubsystem, "Received msg: %T", msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || (msg.String() == "q" && !typing(m)) {
			m.CurrentAppMode = model.ModeQuitting
			m.QuittingMessage = "Au revoir."
			model.FinalizeMsgSampling()
			return m, tea.Quit
		}
		m, cmd = handleKeyMsgGlobal(m, msg)
		cmds = append(cmds, cmd)

	case tea.WindowSizeMsg:
		m, cmd = handleWindowSizeMsg(m, msg)
		cmds = append(cmds, cmd)

	case model.SystemStatusMsg:
		m = handleSystemStatus(m, msg)

	case model.PollTickMsg:
		m, cmd = handlePollTick(m)
		cmds = append(cmds, cmd)

	case model.RefreshDeploymentsMsg:
		cmds = append(cmds, loadDeployments(m))

	case model.DeploymentsLoadedMsg:
		m = handleDeploymentsLoaded(m, msg)

	case model.ResourcesLoadedMsg:
		m = handleResourcesLoaded(m, msg)

	case model.FrameworksLoadedMsg:
		if msg.Err != nil {
			LogWarn(controllerSubsystem, "framework catalog unavailable, using built-in list: %v", msg.Err)
			break
		}
		m.Catalog = m.Catalog.WithRemote(msg.Groups)
		m.Form.SetCatalog(m.Catalog)

	case model.SwitchTabMsg:
		cmds = append(cmds, activateTab(m, msg.Tab))

	case model.DeploymentCreatedMsg:
		m, cmd = handleDeploymentCreated(m, msg)
		cmds = append(cmds, cmd)

	case model.DeploymentDeletedMsg:
		m, cmd = handleDeploymentDeleted(m, msg)
		cmds = append(cmds, cmd)

	case model.DeploymentRestartedMsg:
		m, cmd = handleDeploymentRestarted(m, msg)
		cmds = append(cmds, cmd)

	case model.DeploymentLogsMsg:
		m, cmd = handleDeploymentLogs(m, msg)
		cmds = append(cmds, cmd)

	case model.ProgressTickMsg:
		m, cmd = handleProgressTick(m, msg)
		cmds = append(cmds, cmd)

	case model.ProgressStatusMsg:
		m, cmd = handleProgressStatus(m, msg)
		cmds = append(cmds, cmd)

	case model.ProgressCloseMsg:
		m = handleProgressClose(m, msg)

	case model.OpenURLResultMsg:
		if msg.Err != nil {
			LogError(controllerSubsystem, msg.Err, "could not open %s", msg.URL)
			cmds = append(cmds, m.Notify(fmt.Sprintf("Impossible d'ouvrir %s", msg.URL), model.StatusBarError))
		}

	case model.ClearStatusBarMsg:
		m.StatusBarMessage = ""
		if m.StatusBarClearCancel != nil {
			close(m.StatusBarClearCancel)
			m.StatusBarClearCancel = nil
		}

	case tea.MouseMsg:
		switch m.CurrentAppMode {
		case model.ModeLogOverlay:
			m.LogViewport, cmd = m.LogViewport.Update(msg)
		case model.ModeLogsOverlay:
			m.LogsViewport, cmd = m.LogsViewport.Update(msg)
		}
		cmds = append(cmds, cmd)

	case spinner.TickMsg:
		m.Spinner, cmd = m.Spinner.Update(msg)
		cmds = append(cmds, cmd)

	case model.NewLogEntryMsg:
		m = handleNewLogEntry(m, msg)
		cmds = append(cmds, model.ListenForLogEntriesCmd(m.LogChannel))

	default:
		if m.Form.Focus.IsText() && m.ActiveTab == model.TabCreate {
			m, cmd = updateFocusedInput(m, msg)
			cmds = append(cmds, cmd)
		}
	}

	if m.ActivityLogDirty {
		m.LogViewport.SetContent(view.PrepareLogContent(m.ActivityLog, m.LogViewport.Width))
		if m.CurrentAppMode != model.ModeLogOverlay || m.LogViewport.AtBottom() {
			m.LogViewport.GotoBottom()
		}
		m.ActivityLogDirty = false
	}

	return m, tea.Batch(cmds...)
}

// handleNewLogEntry formats a log entry into the activity log.
func handleNewLogEntry(m *model.Model, msg model.NewLogEntryMsg) *model.Model {
	e := msg.Entry
	line := fmt.Sprintf("%s [%s] [%s] %s", e.Timestamp.Format("15:04:05.000"), e.Level, e.Subsystem, e.Message)
	if e.Err != nil {
		line += " -- Error: " + e.Err.Error()
	}
	model.AddRawLineToActivityLog(m, line)
	return m
}

func handleSystemStatus(m *model.Model, msg model.SystemStatusMsg) *model.Model {
	if msg.Err != nil {
		LogError(controllerSubsystem, msg.Err, "system status check failed")
		m.Connectivity = model.ConnError
		return m
	}
	if msg.Status.System.ProxmoxConnected {
		m.Connectivity = model.ConnConnected
	} else {
		m.Connectivity = model.ConnDisconnected
	}
	m.Counts = msg.Status.Deployments
	return m
}

// handlePollTick refreshes the header from /api/status and reloads the list only
// while its tab is visible. The next tick is always scheduled so the poller lives as
// long as the program.
func handlePollTick(m *model.Model) (*model.Model, tea.Cmd) {
	next := model.PollTickCmd(m.Config.Refresh.PollInterval)
	status := fetchSystemStatus(m)
	if m.ActiveTab != model.TabDeployments {
		return m, tea.Batch(status, next)
	}
	return m, tea.Batch(status, loadDeployments(m), next)
}

func fetchSystemStatus(m *model.Model) tea.Cmd {
	if m.API == nil {
		return nil
	}
	return model.FetchSystemStatusCmd(m.API, m.Config.API.Timeout)
}

func loadDeployments(m *model.Model) tea.Cmd {
	if m.API == nil {
		return nil
	}
	m.LoadingList = true
	return model.LoadDeploymentsCmd(m.API, m.Store, m.Config.API.Timeout)
}

func loadResources(m *model.Model) tea.Cmd {
	if m.API == nil {
		return nil
	}
	m.ResourcesLoading = true
	return model.FetchResourcesCmd(m.API, m.Config.API.Timeout)
}

func handleDeploymentsLoaded(m *model.Model, msg model.DeploymentsLoadedMsg) *model.Model {
	if msg.Err != nil {
		if m.Store.Fail(msg.Token, msg.Err) {
			m.LoadingList = false
			LogError(pollerSubsystem, msg.Err, "loading deployments failed")
		} else {
			LogDebug(m, pollerSubsystem, "ignoring stale failure for fetch %d", msg.Token)
		}
		return m
	}
	if !m.Store.Commit(msg.Token, msg.Deployments) {
		LogDebug(m, pollerSubsystem, "ignoring stale list from fetch %d", msg.Token)
		return m
	}
	m.LoadingList = false
	m.ClampSelection()
	LogDebug(m, pollerSubsystem, "loaded %d deployments", len(msg.Deployments))
	return m
}

func handleResourcesLoaded(m *model.Model, msg model.ResourcesLoadedMsg) *model.Model {
	m.ResourcesLoading = false
	if msg.Err != nil {
		LogError(controllerSubsystem, msg.Err, "loading resources failed")
		m.ResourcesErr = msg.Err
		m.Resources = nil
		return m
	}
	snap := msg.Snapshot
	m.Resources = &snap
	m.ResourcesErr = nil
	return m
}

// activateTab switches page and loads what the page shows.
func activateTab(m *model.Model, tab model.Tab) tea.Cmd {
	m.ActiveTab = tab
	switch tab {
	case model.TabDeployments:
		return loadDeployments(m)
	case model.TabResources:
		return loadResources(m)
	case model.TabCreate:
		m.Form.SetFocus(m.Form.Focus)
	}
	return nil
}

// notifyError surfaces a backend message verbatim, or fallback for transport failures.
func notifyError(m *model.Model, err error, fallback string) tea.Cmd {
	return m.Notify(api.UserMessage(err, fallback), model.StatusBarError)
}

// typing reports whether keystrokes belong to a form text input.
func typing(m *model.Model) bool {
	return m.CurrentAppMode == model.ModeMainDashboard &&
		m.ActiveTab == model.TabCreate &&
		m.Form.Focus.IsText()
}
