package view

import (
	"fmt"
	"strings"

	"deployctl/internal/deploy"
	"deployctl/internal/tui/design"
	"deployctl/internal/tui/model"

	"github.com/charmbracelet/lipgloss"
)

func renderCreateTab(m *model.Model, width int) string {
	f := m.Form
	limits := f.Limits()
	gauge := newGauge(min(30, width-40))

	row := func(field model.FormField, value string) string {
		label := design.LabelStyle
		marker := "  "
		if f.Focus == field {
			label = design.LabelFocusedStyle
			marker = design.TextInfoStyle.Render("▸ ")
		}
		return marker + label.Render(field.String()) + value
	}
	slider := func(value, lo, hi int, unit string) string {
		pct := 0.0
		if hi > lo {
			pct = float64(value-lo) / float64(hi-lo)
		}
		return fmt.Sprintf("%s %d%s", gauge.ViewAs(pct), value, unit)
	}

	fw := f.Framework()
	fwLabel := fw.Name
	if fw.Version != "" {
		fwLabel += " " + fw.Version
	}
	if fw.Language != "" {
		fwLabel += design.DimStyle.Render(" (" + fw.Language + ")")
	}

	lines := []string{
		design.TitleStyle.Render("Nouveau déploiement"),
		row(model.FieldName, f.Name.View()),
		row(model.FieldGithubURL, f.GithubURL.View()),
		row(model.FieldType, renderTypeChoice(f.Type)),
		row(model.FieldFramework, "◀ "+fwLabel+" ▶"),
		row(model.FieldCPU, slider(f.CPU, deploy.MinCPU, limits.MaxCPU, "")),
		row(model.FieldMemory, slider(f.Memory, deploy.MinMemoryMB, limits.MaxMemoryMB, " MB")),
		row(model.FieldDisk, slider(f.Disk, deploy.MinDiskGB, limits.MaxDiskGB, " GB")),
		"",
		"  " + renderSubmit(f),
	}
	if f.Error != "" {
		lines = append(lines, "", "  "+design.TextErrorStyle.Render(deploy.ErrorNotice(f.Error)))
	}
	lines = append(lines, "", design.DimStyle.Render("  ↑/↓ champ  ←/→ modifier  enter valider"))

	return lipgloss.NewStyle().MaxWidth(width).Render(strings.Join(lines, "\n"))
}

func renderTypeChoice(t deploy.Type) string {
	opts := []struct {
		t     deploy.Type
		label string
	}{{deploy.TypeVM, "VM"}, {deploy.TypeLXC, "LXC"}}

	parts := make([]string, 0, len(opts))
	for _, o := range opts {
		if o.t == t {
			parts = append(parts, design.ButtonFocusedStyle.Render(o.label))
		} else {
			parts = append(parts, design.ButtonStyle.Render(o.label))
		}
	}
	return strings.Join(parts, " ")
}

func renderSubmit(f *model.Form) string {
	if f.Submitting {
		return design.ButtonStyle.Render("Déploiement...")
	}
	if f.Focus == model.FieldSubmit {
		return design.ButtonFocusedStyle.Render(model.FieldSubmit.String())
	}
	return design.ButtonStyle.Render(model.FieldSubmit.String())
}
