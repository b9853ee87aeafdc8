package controller

import (
	"errors"

	"deployctl/internal/deploy"
	"deployctl/internal/tui/model"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// handleFormKeys drives the creation form. Text fields receive every key that is not
// navigation; the other rows react to arrows, space and enter.
func handleFormKeys(m *model.Model, keyMsg tea.KeyMsg) (*model.Model, tea.Cmd) {
	f := m.Form
	if f.Submitting {
		return m, nil
	}

	switch keyMsg.Type {
	case tea.KeyUp:
		f.PrevField()
		return m, nil
	case tea.KeyDown:
		f.NextField()
		return m, nil
	case tea.KeyEnter:
		if f.Focus == model.FieldSubmit {
			return submitForm(m)
		}
		f.NextField()
		return m, nil
	}

	if f.Focus.IsText() {
		return updateFocusedInput(m, keyMsg)
	}

	switch {
	case key.Matches(keyMsg, m.Keys.Up):
		f.PrevField()
	case key.Matches(keyMsg, m.Keys.Down):
		f.NextField()
	case key.Matches(keyMsg, m.Keys.Left), keyMsg.String() == "-", keyMsg.String() == "h":
		f.Adjust(-1)
	case key.Matches(keyMsg, m.Keys.Right), keyMsg.String() == "+", keyMsg.String() == "l":
		f.Adjust(1)
	case keyMsg.String() == " ":
		if f.Focus == model.FieldSubmit {
			return submitForm(m)
		}
		f.Adjust(1)
	}
	return m, nil
}

// updateFocusedInput forwards msg to the focused text input.
func updateFocusedInput(m *model.Model, msg tea.Msg) (*model.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.Form.Focus {
	case model.FieldName:
		m.Form.Name, cmd = m.Form.Name.Update(msg)
	case model.FieldGithubURL:
		m.Form.GithubURL, cmd = m.Form.GithubURL.Update(msg)
	}
	m.Form.Error = ""
	return m, cmd
}

// submitForm validates locally and sends the creation request once.
func submitForm(m *model.Model) (*model.Model, tea.Cmd) {
	f := m.Form
	if err := f.Validate(); err != nil {
		var verr *deploy.ValidationError
		msg := err.Error()
		if errors.As(err, &verr) {
			msg = verr.Message
		}
		f.Error = msg
		return m, m.Notify(deploy.ErrorNotice(msg), model.StatusBarError)
	}
	if m.API == nil {
		return m, nil
	}
	f.Submitting = true
	f.Error = ""
	req := f.Request()
	return m, model.CreateDeploymentCmd(m.API, req, m.Config.API.Timeout)
}

func handleDeploymentCreated(m *model.Model, msg model.DeploymentCreatedMsg) (*model.Model, tea.Cmd) {
	m.Form.Submitting = false
	if msg.Err != nil {
		LogError(controllerSubsystem, msg.Err, "deployment creation failed")
		return m, notifyError(m, msg.Err, deploy.MsgCreateFailed)
	}

	d := msg.Response.Deployment
	LogInfo(controllerSubsystem, "deployment %d (%s) accepted", d.ID, d.Name)
	m.Form.Reset()

	return m, tea.Batch(
		m.Notify(deploy.MsgCreateStarted, model.StatusBarSuccess),
		startProgress(m, d),
		model.AfterCmd(m.Config.UI.TabSwitchDelay, model.SwitchTabMsg{Tab: model.TabDeployments}),
	)
}
