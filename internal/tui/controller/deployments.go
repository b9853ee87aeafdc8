package controller

import (
	"fmt"
	"strings"

	"deployctl/internal/deploy"
	"deployctl/internal/tui/model"
	"deployctl/internal/tui/view"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const msgActionUnavailable = "Action indisponible pour ce déploiement"

// handleDeploymentKeys moves the cursor and triggers the card actions.
func handleDeploymentKeys(m *model.Model, keyMsg tea.KeyMsg) (*model.Model, tea.Cmd) {
	switch {
	case key.Matches(keyMsg, m.Keys.Up):
		if m.Selected > 0 {
			m.Selected--
		}
		return m, nil
	case key.Matches(keyMsg, m.Keys.Down):
		if m.Selected < len(m.Deployments())-1 {
			m.Selected++
		}
		return m, nil
	}

	d, ok := m.SelectedDeployment()
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.Keys.Open):
		return openDeployment(m, d)
	case key.Matches(keyMsg, m.Keys.CopyURL):
		if d.Address() == "" {
			return m, m.Notify("Aucune adresse IP attribuée", model.StatusBarWarning)
		}
		return m, copyToClipboard(m, d.Address(), "Adresse copiée: "+d.Address())
	case key.Matches(keyMsg, m.Keys.Restart):
		if !deploy.Has(d, deploy.ActionRestart) {
			return m, m.Notify(msgActionUnavailable, model.StatusBarWarning)
		}
		LogInfo(controllerSubsystem, "restarting deployment %d", d.ID)
		return m, model.RestartDeploymentCmd(m.API, d.ID, m.Config.API.Timeout)
	case key.Matches(keyMsg, m.Keys.Logs), key.Matches(keyMsg, m.Keys.Enter) && d.Status == deploy.StatusFailed:
		if !deploy.Has(d, deploy.ActionLogs) {
			return m, m.Notify(msgActionUnavailable, model.StatusBarWarning)
		}
		return m, model.FetchDeploymentLogsCmd(m.API, d.ID, m.Config.API.Timeout)
	case key.Matches(keyMsg, m.Keys.Delete):
		pending := d
		m.PendingDelete = &pending
		m.LastAppMode = m.CurrentAppMode
		m.CurrentAppMode = model.ModeConfirmOverlay
		return m, nil
	}
	return m, nil
}

func openDeployment(m *model.Model, d deploy.Deployment) (*model.Model, tea.Cmd) {
	if !deploy.Has(d, deploy.ActionOpen) {
		return m, m.Notify(msgActionUnavailable, model.StatusBarWarning)
	}
	url := d.Address()
	if url == "" {
		return m, m.Notify("Aucune adresse IP attribuée", model.StatusBarWarning)
	}
	open := m.OpenURL
	if open == nil {
		open = openInBrowser
	}
	return m, func() tea.Msg {
		return model.OpenURLResultMsg{URL: url, Err: open(url)}
	}
}

// handleConfirmKeys answers the delete confirmation. Only an explicit yes sends the DELETE.
func handleConfirmKeys(m *model.Model, keyMsg tea.KeyMsg) (*model.Model, tea.Cmd) {
	switch {
	case key.Matches(keyMsg, m.Keys.Confirm):
		pending := m.PendingDelete
		m.PendingDelete = nil
		m.CurrentAppMode = model.ModeMainDashboard
		if pending == nil || m.API == nil {
			return m, nil
		}
		LogInfo(controllerSubsystem, "deleting deployment %d", pending.ID)
		return m, model.DeleteDeploymentCmd(m.API, pending.ID, m.Config.API.Timeout)
	case key.Matches(keyMsg, m.Keys.Deny):
		m.PendingDelete = nil
		m.CurrentAppMode = model.ModeMainDashboard
	}
	return m, nil
}

func handleDeploymentDeleted(m *model.Model, msg model.DeploymentDeletedMsg) (*model.Model, tea.Cmd) {
	if msg.Err != nil {
		LogError(controllerSubsystem, msg.Err, "deleting deployment %d failed", msg.ID)
		return m, notifyError(m, msg.Err, deploy.MsgDeleteFailed)
	}
	return m, tea.Batch(
		m.Notify(deploy.MsgDeleted, model.StatusBarSuccess),
		loadDeployments(m),
	)
}

func handleDeploymentRestarted(m *model.Model, msg model.DeploymentRestartedMsg) (*model.Model, tea.Cmd) {
	if msg.Err != nil {
		LogError(controllerSubsystem, msg.Err, "restarting deployment %d failed", msg.ID)
		return m, notifyError(m, msg.Err, deploy.MsgRestartFailed)
	}
	return m, tea.Batch(
		m.Notify(deploy.MsgRestarted, model.StatusBarSuccess),
		model.AfterCmd(m.Config.UI.RestartRefreshDelay, model.RefreshDeploymentsMsg{}),
	)
}

func handleDeploymentLogs(m *model.Model, msg model.DeploymentLogsMsg) (*model.Model, tea.Cmd) {
	if msg.Err != nil {
		LogError(controllerSubsystem, msg.Err, "fetching logs of deployment %d failed", msg.ID)
		return m, notifyError(m, msg.Err, deploy.MsgLogsFailed)
	}

	var b strings.Builder
	if msg.Logs.DeploymentLog != "" {
		b.WriteString(msg.Logs.DeploymentLog)
	} else {
		b.WriteString(deploy.MsgNoLogs)
	}
	if out := strings.TrimSpace(msg.Logs.TerraformOutput); out != "" {
		b.WriteString("\n\n--- Terraform ---\n")
		b.WriteString(out)
	}

	m.LogsTitle = fmt.Sprintf("Logs du déploiement %d", msg.ID)
	m.LogsContent = b.String()
	m.LogsViewport.SetContent(view.WrapText(m.LogsContent, m.LogsViewport.Width))
	m.LogsViewport.GotoTop()
	m.LastAppMode = m.CurrentAppMode
	m.CurrentAppMode = model.ModeLogsOverlay
	return m, nil
}
