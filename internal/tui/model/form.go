package model

import (
	"strings"

	"deployctl/internal/deploy"

	"github.com/charmbracelet/bubbles/textinput"
)

// FormField identifies the focused row of the creation form.
type FormField int

const (
	FieldName FormField = iota
	FieldGithubURL
	FieldType
	FieldFramework
	FieldCPU
	FieldMemory
	FieldDisk
	FieldSubmit
	fieldCount
)

func (f FormField) String() string {
	switch f {
	case FieldName:
		return "Nom (optionnel)"
	case FieldGithubURL:
		return "Dépôt GitHub"
	case FieldType:
		return "Type"
	case FieldFramework:
		return "Framework"
	case FieldCPU:
		return "CPU"
	case FieldMemory:
		return "Mémoire (MB)"
	case FieldDisk:
		return "Disque (GB)"
	case FieldSubmit:
		return "Déployer"
	}
	return ""
}

// IsText reports whether the field forwards keystrokes to a text input.
func (f FormField) IsText() bool {
	return f == FieldName || f == FieldGithubURL
}

// Slider step per resource.
const (
	cpuStep    = 1
	memoryStep = 512
	diskStep   = 10
)

// Form is the state of the creation tab.
type Form struct {
	Name      textinput.Model
	GithubURL textinput.Model

	Type           deploy.Type
	FrameworkIndex int
	CPU            int
	Memory         int
	Disk           int

	Focus      FormField
	Submitting bool
	Error      string

	limits  deploy.Limits
	catalog *deploy.Catalog
}

// NewForm returns a form holding the defaults, with the name field focused.
func NewForm(limits deploy.Limits, catalog *deploy.Catalog) *Form {
	name := textinput.New()
	name.Placeholder = "mon-application"
	name.CharLimit = 100
	name.Width = 40

	url := textinput.New()
	url.Placeholder = "https://github.com/utilisateur/depot"
	url.CharLimit = 256
	url.Width = 50

	f := &Form{Name: name, GithubURL: url, limits: limits, catalog: catalog}
	f.Reset()
	return f
}

// Reset restores every field to its default, as after a successful submission.
func (f *Form) Reset() {
	defaults := deploy.NewCreateRequest()
	f.Name.SetValue("")
	f.GithubURL.SetValue("")
	f.Type = defaults.Type
	f.FrameworkIndex = 0
	f.CPU = defaults.CPU
	f.Memory = defaults.Memory
	f.Disk = defaults.Disk
	f.Submitting = false
	f.Error = ""
	f.SetFocus(FieldName)
}

// SetCatalog swaps the framework list, keeping the current selection when it survives.
func (f *Form) SetCatalog(c *deploy.Catalog) {
	current := f.Framework().ID
	f.catalog = c
	f.FrameworkIndex = 0
	for i, fw := range c.All() {
		if fw.ID == current {
			f.FrameworkIndex = i
			break
		}
	}
}

// Limits are the upper slider bounds.
func (f *Form) Limits() deploy.Limits {
	return f.limits
}

// Framework returns the selected catalog entry.
func (f *Form) Framework() deploy.Framework {
	if f.catalog == nil {
		return deploy.Framework{}
	}
	all := f.catalog.All()
	if f.FrameworkIndex < 0 || f.FrameworkIndex >= len(all) {
		return deploy.Framework{}
	}
	return all[f.FrameworkIndex]
}

// SetFocus moves focus to field, focusing or blurring the text inputs.
func (f *Form) SetFocus(field FormField) {
	f.Focus = field
	f.Name.Blur()
	f.GithubURL.Blur()
	switch field {
	case FieldName:
		f.Name.Focus()
	case FieldGithubURL:
		f.GithubURL.Focus()
	}
}

// NextField moves focus down, wrapping around.
func (f *Form) NextField() {
	f.SetFocus((f.Focus + 1) % fieldCount)
}

// PrevField moves focus up, wrapping around.
func (f *Form) PrevField() {
	f.SetFocus((f.Focus + fieldCount - 1) % fieldCount)
}

// Adjust changes the focused selector or slider by delta steps.
func (f *Form) Adjust(delta int) {
	switch f.Focus {
	case FieldType:
		if f.Type == deploy.TypeVM {
			f.Type = deploy.TypeLXC
		} else {
			f.Type = deploy.TypeVM
		}
	case FieldFramework:
		n := 0
		if f.catalog != nil {
			n = f.catalog.Len()
		}
		if n > 0 {
			f.FrameworkIndex = ((f.FrameworkIndex+delta)%n + n) % n
		}
	case FieldCPU:
		f.CPU = clamp(f.CPU+delta*cpuStep, deploy.MinCPU, f.limits.MaxCPU)
	case FieldMemory:
		f.Memory = clamp(f.Memory+delta*memoryStep, deploy.MinMemoryMB, f.limits.MaxMemoryMB)
	case FieldDisk:
		f.Disk = clamp(f.Disk+delta*diskStep, deploy.MinDiskGB, f.limits.MaxDiskGB)
	}
}

// Request builds the creation request from the current values.
func (f *Form) Request() deploy.CreateRequest {
	return deploy.CreateRequest{
		Type:      f.Type,
		Framework: f.Framework().ID,
		GithubURL: strings.TrimSpace(f.GithubURL.Value()),
		CPU:       f.CPU,
		Memory:    f.Memory,
		Disk:      f.Disk,
		Name:      strings.TrimSpace(f.Name.Value()),
	}
}

// Validate checks the current values against the backend rules.
func (f *Form) Validate() error {
	return f.Request().Validate(f.limits, f.catalog)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if hi > 0 && v > hi {
		return hi
	}
	return v
}
