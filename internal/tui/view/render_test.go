package view

import (
	"errors"
	"strings"
	"testing"
	"time"

	"deployctl/internal/config"
	"deployctl/internal/deploy"
	"deployctl/internal/progress"
	"deployctl/internal/tui/model"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T) *model.Model {
	t.Helper()
	m := model.InitialModel(model.TUIConfig{
		Config: config.GetDefaultConfig(),
		Now:    func() time.Time { return testNow },
	})
	m.CurrentAppMode = model.ModeMainDashboard
	m.Width, m.Height = 120, 40
	return m
}

func TestRenderDeploymentList_EmptyShowsPlaceholderOnce(t *testing.T) {
	out := RenderDeploymentList(nil, 0, 80, testNow)
	assert.Equal(t, 1, strings.Count(out, deploy.MsgNoDeployments))
}

func TestRenderDeploymentCard_StatusLabels(t *testing.T) {
	for _, status := range []deploy.Status{
		deploy.StatusPending, deploy.StatusCreating, deploy.StatusRunning,
		deploy.StatusFailed, deploy.StatusStopped,
	} {
		t.Run(string(status), func(t *testing.T) {
			d := deploy.Deployment{ID: 1, Name: "demo", Type: deploy.TypeVM, Framework: "flask", Status: status}
			out := RenderDeploymentCard(d, false, 100, testNow)
			assert.Contains(t, out, deploy.StatusLabel(status))
		})
	}
}

func TestRenderDeploymentCard_RunningOffersOpenAndRestart(t *testing.T) {
	d := deploy.Deployment{
		ID: 3, Name: "shop", Type: deploy.TypeLXC, Framework: "django",
		Status:    deploy.StatusRunning,
		Resources: deploy.Resources{CPU: 2, Memory: 2048, Disk: 20},
		Proxmox:   deploy.ProxmoxRef{IP: "192.168.1.120"},
		GithubURL: "https://github.com/acme/shop",
	}
	out := RenderDeploymentCard(d, true, 100, testNow)

	assert.Contains(t, out, "[o] Ouvrir")
	assert.Contains(t, out, "[r] Redémarrer")
	assert.Contains(t, out, "[d] Supprimer")
	assert.Contains(t, out, "IP: 192.168.1.120")
	assert.Contains(t, out, "django · LXC")
	assert.Contains(t, out, "2 CPU / 2048 MB")
	assert.NotContains(t, out, "Voir logs")
}

func TestRenderDeploymentCard_FailedOffersLogsOnly(t *testing.T) {
	d := deploy.Deployment{
		ID: 4, Name: "broken", Type: deploy.TypeVM, Framework: "laravel",
		Status:       deploy.StatusFailed,
		ErrorMessage: "terraform apply failed",
	}
	out := RenderDeploymentCard(d, false, 100, testNow)

	assert.Contains(t, out, "[l] Voir logs")
	assert.Contains(t, out, "terraform apply failed")
	assert.NotContains(t, out, "Ouvrir")
	assert.NotContains(t, out, "Redémarrer")
	assert.NotContains(t, out, "IP:")
}

func TestRenderDeploymentCard_FitsWidth(t *testing.T) {
	d := deploy.Deployment{Name: strings.Repeat("n", 90), GithubURL: "https://github.com/" + strings.Repeat("x", 120), Status: deploy.StatusPending}
	out := RenderDeploymentCard(d, false, 50, testNow)
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 50)
	}
}

func TestRenderResources(t *testing.T) {
	snap := deploy.ResourceSnapshot{
		Node:       deploy.NodeInfo{Name: "pve", Status: "online"},
		VMs:        deploy.GuestCount{Total: 3, Running: 2},
		Containers: deploy.GuestCount{Total: 5, Running: 4},
	}
	snap.Node.CPU.Cores = 8
	snap.Node.CPU.Usage = 12.5
	snap.Node.Memory.Total = 32
	snap.Node.Memory.Used = 12.5
	snap.Node.Memory.Free = 19.5

	out := RenderResources(snap, 200)
	for _, want := range []string{
		"Noeud Proxmox", "Nom: pve", "Statut: online",
		"Coeurs: 8", "Utilisation: 12.5%",
		"Total: 32 GB", "Utilisée: 12.5 GB", "Disponible: 19.5 GB",
		"Machines Virtuelles", "En cours: 2",
		"Conteneurs LXC", "Total: 5",
	} {
		assert.Contains(t, out, want)
	}
}

func TestRenderResources_PayloadErrorOnly(t *testing.T) {
	out := RenderResources(deploy.ResourceSnapshot{Error: "Proxmox injoignable"}, 120)
	assert.Contains(t, out, "Proxmox injoignable")
	assert.NotContains(t, out, "CPU")
	assert.NotContains(t, out, "Mémoire")
}

func TestWindowLines_KeepsSelectionVisible(t *testing.T) {
	lines := []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"}

	assert.Equal(t, "0\n1\n2", windowLines(lines, 0, 1, 3))
	assert.Equal(t, "6\n7\n8", windowLines(lines, 7, 9, 3))
	assert.Equal(t, strings.Join(lines, "\n"), windowLines(lines, 2, 3, 20))
}

func TestRender_Modes(t *testing.T) {
	m := newTestModel(t)

	m.CurrentAppMode = model.ModeQuitting
	m.QuittingMessage = "Au revoir"
	assert.Contains(t, Render(m), "Au revoir")

	m.CurrentAppMode = model.ModeInitializing
	assert.Contains(t, Render(m), "Initialisation")
}

func TestRender_DashboardTabs(t *testing.T) {
	m := newTestModel(t)

	out := Render(m)
	assert.Contains(t, out, "deployctl")
	assert.Contains(t, out, "Nouveau déploiement")
	assert.Contains(t, out, "Mes déploiements")
	assert.Contains(t, out, "Ressources")
	assert.LessOrEqual(t, lipgloss.Height(out), m.Height)

	m.ActiveTab = model.TabDeployments
	tok := m.Store.Begin()
	m.Store.Fail(tok, errors.New("boom"))
	assert.Contains(t, Render(m), deploy.MsgLoadError)

	m.ActiveTab = model.TabResources
	m.ResourcesErr = errors.New("unreachable")
	assert.Contains(t, Render(m), deploy.MsgLoadError)
}

func TestRender_DeploymentsTabEmptyList(t *testing.T) {
	m := newTestModel(t)
	m.ActiveTab = model.TabDeployments
	tok := m.Store.Begin()
	require.True(t, m.Store.Commit(tok, nil))

	assert.Equal(t, 1, strings.Count(Render(m), deploy.MsgNoDeployments))
}

func TestRender_ConfirmOverlay(t *testing.T) {
	m := newTestModel(t)
	m.PendingDelete = &deploy.Deployment{ID: 9, Name: "shop"}
	m.CurrentAppMode = model.ModeConfirmOverlay

	out := Render(m)
	assert.Contains(t, out, deploy.MsgConfirmDelete)
	assert.Contains(t, out, "shop")
	assert.Contains(t, out, "[y/o] Oui")
}

func TestRenderProgress_StepIcons(t *testing.T) {
	tr := progress.NewTracker(1, 7)
	tr.Start()
	tr.Advance()

	out := RenderProgress(tr, "Déploiement", 60)
	assert.Contains(t, out, IconCheck+" "+progress.DefaultSteps[0].Label)
	assert.Contains(t, out, IconActive+" "+progress.DefaultSteps[1].Label)
	assert.Contains(t, out, IconPending+" "+progress.DefaultSteps[5].Label)
}
