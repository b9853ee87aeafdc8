package model

import (
	"testing"

	"deployctl/internal/deploy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestForm() *Form {
	return NewForm(deploy.DefaultLimits(), deploy.DefaultCatalog())
}

func TestNewForm_Defaults(t *testing.T) {
	f := newTestForm()
	assert.Equal(t, deploy.TypeVM, f.Type)
	assert.Equal(t, 2, f.CPU)
	assert.Equal(t, 2048, f.Memory)
	assert.Equal(t, 20, f.Disk)
	assert.Equal(t, FieldName, f.Focus)
	assert.True(t, f.Name.Focused())
	assert.Equal(t, "django", f.Framework().ID)
}

func TestForm_AdjustClampsSliders(t *testing.T) {
	f := newTestForm()

	f.SetFocus(FieldCPU)
	for i := 0; i < 20; i++ {
		f.Adjust(1)
	}
	assert.Equal(t, 8, f.CPU)
	for i := 0; i < 20; i++ {
		f.Adjust(-1)
	}
	assert.Equal(t, deploy.MinCPU, f.CPU)

	f.SetFocus(FieldMemory)
	f.Adjust(-10)
	assert.Equal(t, deploy.MinMemoryMB, f.Memory)

	f.SetFocus(FieldDisk)
	f.Adjust(1)
	assert.Equal(t, 30, f.Disk)
}

func TestForm_TypeToggleAndFrameworkWrap(t *testing.T) {
	f := newTestForm()

	f.SetFocus(FieldType)
	f.Adjust(1)
	assert.Equal(t, deploy.TypeLXC, f.Type)
	f.Adjust(-1)
	assert.Equal(t, deploy.TypeVM, f.Type)

	f.SetFocus(FieldFramework)
	f.Adjust(-1)
	all := deploy.DefaultCatalog().All()
	assert.Equal(t, all[len(all)-1].ID, f.Framework().ID)
}

func TestForm_FocusCyclesAndBlursInputs(t *testing.T) {
	f := newTestForm()
	f.NextField()
	assert.Equal(t, FieldGithubURL, f.Focus)
	assert.False(t, f.Name.Focused())
	assert.True(t, f.GithubURL.Focused())

	f.SetFocus(FieldName)
	f.PrevField()
	assert.Equal(t, FieldSubmit, f.Focus)
	assert.False(t, f.GithubURL.Focused())
}

func TestForm_RequestAndValidate(t *testing.T) {
	f := newTestForm()
	err := f.Validate()
	require.Error(t, err)

	f.GithubURL.SetValue("  https://github.com/acme/app  ")
	f.Name.SetValue("demo")
	require.NoError(t, f.Validate())

	req := f.Request()
	assert.Equal(t, "https://github.com/acme/app", req.GithubURL)
	assert.Equal(t, "demo", req.Name)
	assert.Equal(t, "django", req.Framework)
}

func TestForm_ResetRestoresDefaults(t *testing.T) {
	f := newTestForm()
	f.GithubURL.SetValue("https://github.com/acme/app")
	f.SetFocus(FieldCPU)
	f.Adjust(3)
	f.Submitting = true

	f.Reset()
	assert.Empty(t, f.GithubURL.Value())
	assert.Equal(t, 2, f.CPU)
	assert.False(t, f.Submitting)
	assert.Equal(t, FieldName, f.Focus)
}

func TestAddRawLineToActivityLog_Caps(t *testing.T) {
	m := &Model{}
	for i := 0; i < MaxActivityLogLines+5; i++ {
		AddRawLineToActivityLog(m, "line")
	}
	assert.Len(t, m.ActivityLog, MaxActivityLogLines)
	assert.True(t, m.ActivityLogDirty)
}
