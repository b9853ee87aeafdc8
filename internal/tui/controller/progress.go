package controller

import (
	"deployctl/internal/config"
	"deployctl/internal/deploy"
	"deployctl/internal/progress"
	"deployctl/internal/tui/model"

	tea "github.com/charmbracelet/bubbletea"
)

// startProgress opens the modal for d. A run already on screen is replaced; its
// pending ticks carry the old run id and are dropped.
func startProgress(m *model.Model, d deploy.Deployment) tea.Cmd {
	m.ProgressRunID++
	t := progress.NewTracker(m.ProgressRunID, d.ID)
	t.Start()
	m.Progress = t
	m.ProgressName = d.Name

	if m.CurrentAppMode != model.ModeProgressOverlay {
		m.LastAppMode = model.ModeMainDashboard
	}
	m.CurrentAppMode = model.ModeProgressOverlay
	LogDebug(m, progressSubsystem, "started %s (%s mode)", t, m.Config.Progress.Mode)

	return nextProgressTick(m)
}

func nextProgressTick(m *model.Model) tea.Cmd {
	return model.AfterCmd(m.Config.Progress.StepInterval, model.ProgressTickMsg{RunID: m.ProgressRunID})
}

func closeProgressAfterDelay(m *model.Model) tea.Cmd {
	return model.AfterCmd(m.Config.Progress.CloseDelay, model.ProgressCloseMsg{RunID: m.ProgressRunID})
}

func currentRun(m *model.Model, runID uint64) bool {
	return m.Progress != nil && runID == m.ProgressRunID && m.Progress.Phase() == progress.PhaseRunning
}

func handleProgressTick(m *model.Model, msg model.ProgressTickMsg) (*model.Model, tea.Cmd) {
	if !currentRun(m, msg.RunID) {
		return m, nil
	}
	if m.Config.Progress.Mode == config.ProgressModeStatus {
		return m, model.FetchProgressStatusCmd(m.API, msg.RunID, m.Progress.DeploymentID, m.Config.API.Timeout)
	}
	if m.Progress.Advance() {
		return m, closeProgressAfterDelay(m)
	}
	return m, nextProgressTick(m)
}

func handleProgressStatus(m *model.Model, msg model.ProgressStatusMsg) (*model.Model, tea.Cmd) {
	if !currentRun(m, msg.RunID) {
		return m, nil
	}
	if msg.Err != nil {
		LogWarn(progressSubsystem, "status poll for deployment %d failed: %v", m.Progress.DeploymentID, msg.Err)
		return m, nextProgressTick(m)
	}
	m.Progress.Observe(msg.Deployment)
	switch m.Progress.Phase() {
	case progress.PhaseFinished:
		return m, closeProgressAfterDelay(m)
	case progress.PhaseFailed:
		LogWarn(progressSubsystem, "deployment %d failed during provisioning", m.Progress.DeploymentID)
		return m, nil
	}
	return m, nextProgressTick(m)
}

func handleProgressClose(m *model.Model, msg model.ProgressCloseMsg) *model.Model {
	if m.Progress == nil || msg.RunID != m.ProgressRunID {
		return m
	}
	m.Progress.Close()
	dismissProgress(m)
	return m
}

// dismissProgress hides the modal and invalidates the run.
func dismissProgress(m *model.Model) {
	m.Progress = nil
	m.ProgressRunID++
	if m.CurrentAppMode == model.ModeProgressOverlay {
		m.CurrentAppMode = model.ModeMainDashboard
	}
}
