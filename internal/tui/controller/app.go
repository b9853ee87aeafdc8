package controller

import (
	"deployctl/internal/tui/model"
	"deployctl/internal/tui/view"

	tea "github.com/charmbracelet/bubbletea"
)

// AppModel wraps the model to handle updates and views
type AppModel struct {
	model *model.Model
}

// NewAppModel creates a new app wrapper
func NewAppModel(m *model.Model) AppModel {
	return AppModel{model: m}
}

// Init implements tea.Model. The status check, the first list load and the resource
// snapshot are issued together, as the browser dashboard did on page load.
func (a AppModel) Init() tea.Cmd {
	m := a.model
	timeout := m.Config.API.Timeout
	cmds := []tea.Cmd{
		m.Spinner.Tick,
		model.FetchSystemStatusCmd(m.API, timeout),
		model.FetchFrameworksCmd(m.API, timeout),
		model.LoadDeploymentsCmd(m.API, m.Store, timeout),
		model.PollTickCmd(m.Config.Refresh.PollInterval),
	}
	m.LoadingList = true
	if cmd := loadResources(m); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if m.LogChannel != nil {
		cmds = append(cmds, model.ListenForLogEntriesCmd(m.LogChannel))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model
func (a AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	updatedModel, cmd := Update(msg, a.model)
	a.model = updatedModel
	return a, cmd
}

// View implements tea.Model
func (a AppModel) View() string {
	return view.Render(a.model)
}

// Model exposes the wrapped state to tests.
func (a AppModel) Model() *model.Model {
	return a.model
}
