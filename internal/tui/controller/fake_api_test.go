package controller

import (
	"context"
	"sync"
	"time"

	"deployctl/internal/config"
	"deployctl/internal/deploy"
	"deployctl/internal/tui/model"

	tea "github.com/charmbracelet/bubbletea"
)

// fakeAPI records calls and answers from canned values.
type fakeAPI struct {
	mu    sync.Mutex
	calls map[string]int

	list      []deploy.Deployment
	listErr   error
	get       deploy.Deployment
	createErr error
	deleteErr error
	logs      deploy.Logs
	resources deploy.ResourceSnapshot
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{calls: map[string]int{}}
}

func (f *fakeAPI) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
}

func (f *fakeAPI) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeAPI) SystemStatus(context.Context) (deploy.SystemStatus, error) {
	f.record("status")
	var s deploy.SystemStatus
	s.System.ProxmoxConnected = true
	return s, nil
}

func (f *fakeAPI) ListDeployments(context.Context) ([]deploy.Deployment, error) {
	f.record("list")
	return f.list, f.listErr
}

func (f *fakeAPI) GetDeployment(_ context.Context, id int) (deploy.Deployment, error) {
	f.record("get")
	return f.get, nil
}

func (f *fakeAPI) CreateDeployment(_ context.Context, req deploy.CreateRequest) (deploy.CreateResponse, error) {
	f.record("create")
	if f.createErr != nil {
		return deploy.CreateResponse{}, f.createErr
	}
	return deploy.CreateResponse{
		Message:    "accepted",
		Deployment: deploy.Deployment{ID: 42, Name: req.Name, Status: deploy.StatusPending},
	}, nil
}

func (f *fakeAPI) DeleteDeployment(_ context.Context, id int) (deploy.ActionResponse, error) {
	f.record("delete")
	return deploy.ActionResponse{Message: "deleted"}, f.deleteErr
}

func (f *fakeAPI) RestartDeployment(_ context.Context, id int) (deploy.ActionResponse, error) {
	f.record("restart")
	return deploy.ActionResponse{Message: "restarted"}, nil
}

func (f *fakeAPI) DeploymentLogs(_ context.Context, id int) (deploy.Logs, error) {
	f.record("logs")
	return f.logs, nil
}

func (f *fakeAPI) Resources(context.Context) (deploy.ResourceSnapshot, error) {
	f.record("resources")
	return f.resources, nil
}

func (f *fakeAPI) Frameworks(context.Context) (deploy.FrameworkGroups, error) {
	f.record("frameworks")
	return deploy.FrameworkGroups{}, nil
}

// fastConfig shrinks every delay so tick commands return at once.
func fastConfig() config.DeployctlConfig {
	cfg := config.GetDefaultConfig()
	cfg.Refresh.PollInterval = time.Millisecond
	cfg.Progress.StepInterval = time.Millisecond
	cfg.Progress.CloseDelay = time.Millisecond
	cfg.UI.NotificationTimeout = time.Hour
	cfg.UI.TabSwitchDelay = time.Millisecond
	cfg.UI.RestartRefreshDelay = time.Millisecond
	return cfg
}

func newTestModel(api *fakeAPI) *model.Model {
	m := model.InitialModel(model.TUIConfig{
		Config:    fastConfig(),
		API:       api,
		Clipboard: func(string) error { return nil },
		OpenURL:   func(string) error { return nil },
	})
	m.Width, m.Height = 120, 40
	m.CurrentAppMode = model.ModeMainDashboard
	return m
}

// runCmd executes cmd and every command batched inside it, returning the produced
// messages. Status bar clear ticks are skipped since they wait for the
// notification timeout.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(50 * time.Millisecond):
		return nil
	}

	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func findMsg[T tea.Msg](msgs []tea.Msg) (T, bool) {
	for _, msg := range msgs {
		if v, ok := msg.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}
