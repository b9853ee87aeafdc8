package model

import (
	"context"
	"time"

	"deployctl/internal/api"
	"deployctl/internal/deploy"
	"deployctl/internal/store"
	"deployctl/pkg/logging"

	tea "github.com/charmbracelet/bubbletea"
)

// requestContext bounds one backend call. The client applies api.timeout as well;
// this keeps a hung command from pinning a goroutine when a custom client is used.
func requestContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), timeout)
}

// FetchSystemStatusCmd reads /api/status for the header indicator.
func FetchSystemStatusCmd(client api.DeploymentAPI, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := requestContext(timeout)
		defer cancel()
		status, err := client.SystemStatus(ctx)
		return SystemStatusMsg{Status: status, Err: err}
	}
}

// LoadDeploymentsCmd reserves a store token now and fetches the list in the background.
func LoadDeploymentsCmd(client api.DeploymentAPI, st *store.DeploymentStore, timeout time.Duration) tea.Cmd {
	token := st.Begin()
	return func() tea.Msg {
		ctx, cancel := requestContext(timeout)
		defer cancel()
		list, err := client.ListDeployments(ctx)
		if err == nil {
			deploy.SortNewestFirst(list)
		}
		return DeploymentsLoadedMsg{Token: token, Deployments: list, Err: err}
	}
}

// FetchResourcesCmd reads the Proxmox node snapshot.
func FetchResourcesCmd(client api.DeploymentAPI, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := requestContext(timeout)
		defer cancel()
		snap, err := client.Resources(ctx)
		return ResourcesLoadedMsg{Snapshot: snap, Err: err}
	}
}

// FetchFrameworksCmd refreshes the catalog from the backend.
func FetchFrameworksCmd(client api.DeploymentAPI, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := requestContext(timeout)
		defer cancel()
		groups, err := client.Frameworks(ctx)
		return FrameworksLoadedMsg{Groups: groups, Err: err}
	}
}

// CreateDeploymentCmd submits req exactly once.
func CreateDeploymentCmd(client api.DeploymentAPI, req deploy.CreateRequest, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := requestContext(timeout)
		defer cancel()
		logging.Info("Model", "creating %s deployment of %s (%s)", req.Type, req.GithubURL, req.Framework)
		resp, err := client.CreateDeployment(ctx, req)
		return DeploymentCreatedMsg{Response: resp, Err: err}
	}
}

// DeleteDeploymentCmd sends the DELETE for id. Only issued after confirmation.
func DeleteDeploymentCmd(client api.DeploymentAPI, id int, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := requestContext(timeout)
		defer cancel()
		_, err := client.DeleteDeployment(ctx, id)
		return DeploymentDeletedMsg{ID: id, Err: err}
	}
}

// RestartDeploymentCmd restarts the guest behind id.
func RestartDeploymentCmd(client api.DeploymentAPI, id int, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := requestContext(timeout)
		defer cancel()
		_, err := client.RestartDeployment(ctx, id)
		return DeploymentRestartedMsg{ID: id, Err: err}
	}
}

// FetchDeploymentLogsCmd reads the provisioning logs of id.
func FetchDeploymentLogsCmd(client api.DeploymentAPI, id int, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := requestContext(timeout)
		defer cancel()
		logs, err := client.DeploymentLogs(ctx, id)
		return DeploymentLogsMsg{ID: id, Logs: logs, Err: err}
	}
}

// FetchProgressStatusCmd reads one deployment for the status-driven progress modal.
func FetchProgressStatusCmd(client api.DeploymentAPI, runID uint64, id int, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := requestContext(timeout)
		defer cancel()
		d, err := client.GetDeployment(ctx, id)
		return ProgressStatusMsg{RunID: runID, Deployment: d, Err: err}
	}
}

// PollTickCmd schedules the next list refresh.
func PollTickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return PollTickMsg{}
	})
}

// AfterCmd delivers msg once d has elapsed.
func AfterCmd(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return msg
	})
}

// ListenForLogEntriesCmd waits for the next entry on the logging channel.
func ListenForLogEntriesCmd(ch <-chan logging.LogEntry) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		entry, ok := <-ch
		if !ok {
			return nil
		}
		return NewLogEntryMsg{Entry: entry}
	}
}
