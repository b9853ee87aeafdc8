package model

import (
	"deployctl/internal/deploy"
	"deployctl/internal/store"
	"deployctl/pkg/logging"
)

// ---- Backend reads ----

type SystemStatusMsg struct {
	Status deploy.SystemStatus
	Err    error
}

type DeploymentsLoadedMsg struct {
	Token       store.Token
	Deployments []deploy.Deployment
	Err         error
}

type ResourcesLoadedMsg struct {
	Snapshot deploy.ResourceSnapshot
	Err      error
}

type FrameworksLoadedMsg struct {
	Groups deploy.FrameworkGroups
	Err    error
}

// PollTickMsg fires every refresh interval for the whole program lifetime.
type PollTickMsg struct{}

// RefreshDeploymentsMsg asks for one immediate list reload.
type RefreshDeploymentsMsg struct{}

// ---- Mutations ----

type DeploymentCreatedMsg struct {
	Response deploy.CreateResponse
	Err      error
}

type DeploymentDeletedMsg struct {
	ID  int
	Err error
}

type DeploymentRestartedMsg struct {
	ID  int
	Err error
}

type DeploymentLogsMsg struct {
	ID   int
	Logs deploy.Logs
	Err  error
}

// SwitchTabMsg activates a tab, e.g. after the post-create delay.
type SwitchTabMsg struct {
	Tab Tab
}

// ---- Progress modal ----

type ProgressTickMsg struct {
	RunID uint64
}

type ProgressStatusMsg struct {
	RunID      uint64
	Deployment deploy.Deployment
	Err        error
}

type ProgressCloseMsg struct {
	RunID uint64
}

// ---- Misc overlay / status bar ----

type OpenURLResultMsg struct {
	URL string
	Err error
}

type ClearStatusBarMsg struct{}

// NewLogEntryMsg carries a log entry from pkg/logging into the activity log.
type NewLogEntryMsg struct {
	Entry logging.LogEntry
}
