package deploy

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusLabel(t *testing.T) {
	tests := map[Status]string{
		StatusPending:  "En attente",
		StatusCreating: "Création...",
		StatusRunning:  "En cours",
		StatusFailed:   "Échoué",
		StatusStopped:  "Arrêté",
		StatusDeleted:  "Supprimé",
		"migrating":    "migrating",
	}
	for status, want := range tests {
		assert.Equal(t, want, StatusLabel(status), "status %q", status)
	}
}

func TestActionsFor(t *testing.T) {
	running := Deployment{Status: StatusRunning, Proxmox: ProxmoxRef{IP: "10.0.0.5"}}
	assert.Equal(t, []Action{ActionOpen, ActionRestart, ActionDelete}, ActionsFor(running))

	failed := Deployment{Status: StatusFailed}
	assert.Equal(t, []Action{ActionLogs, ActionDelete}, ActionsFor(failed))
	assert.False(t, Has(failed, ActionOpen))
	assert.False(t, Has(failed, ActionRestart))

	for _, s := range []Status{StatusPending, StatusCreating, StatusStopped, StatusDeleted, "weird"} {
		assert.Equal(t, []Action{ActionDelete}, ActionsFor(Deployment{Status: s}), "status %q", s)
	}
}

func TestActionLabels(t *testing.T) {
	assert.Equal(t, "Ouvrir", ActionOpen.Label())
	assert.Equal(t, "Redémarrer", ActionRestart.Label())
	assert.Equal(t, "Voir logs", ActionLogs.Label())
	assert.Equal(t, "Supprimer", ActionDelete.Label())
}

func TestParseType(t *testing.T) {
	for in, want := range map[string]Type{"vm": TypeVM, "VM": TypeVM, "lxc": TypeLXC, "container": TypeLXC} {
		got, err := ParseType(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseType("docker")
	assert.Error(t, err)
}

func TestDeploymentUnmarshal_ContainerAlias(t *testing.T) {
	var d Deployment
	require.NoError(t, json.Unmarshal([]byte(`{"id":3,"type":"container","status":"running","proxmox":{"ip":"1.2.3.4"}}`), &d))
	assert.Equal(t, TypeLXC, d.Type)
	assert.Equal(t, "LXC", d.Type.Display())
	assert.Equal(t, "http://1.2.3.4", d.Address())

	require.NoError(t, json.Unmarshal([]byte(`{"id":4,"type":"kvm"}`), &d))
	assert.Equal(t, Type("kvm"), d.Type)
}

func validRequest() CreateRequest {
	r := NewCreateRequest()
	r.Framework = "django"
	r.GithubURL = "https://github.com/acme/shop.git"
	return r
}

func TestCreateRequestValidate(t *testing.T) {
	catalog := DefaultCatalog()
	limits := DefaultLimits()

	tests := []struct {
		name   string
		mutate func(*CreateRequest)
		field  string
		msg    string
	}{
		{"valid", func(*CreateRequest) {}, "", ""},
		{"missing framework", func(r *CreateRequest) { r.Framework = "" }, "framework", "Champ obligatoire manquant: framework"},
		{"bad type", func(r *CreateRequest) { r.Type = "docker" }, "type", "Type doit être 'vm' ou 'lxc'"},
		{"unsupported framework", func(r *CreateRequest) { r.Framework = "rails" }, "framework", "Framework non supporté: rails"},
		{"gitlab url", func(r *CreateRequest) { r.GithubURL = "https://gitlab.com/a/b" }, "github_url", "URL GitHub invalide"},
		{"cpu too high", func(r *CreateRequest) { r.CPU = 9 }, "cpu", "CPU doit être entre 1 et 8"},
		{"memory too low", func(r *CreateRequest) { r.Memory = 256 }, "memory", "Mémoire doit être entre 512 et 16384 MB"},
		{"disk too high", func(r *CreateRequest) { r.Disk = 501 }, "disk", "Disque doit être entre 10 et 500 GB"},
		{"bad name", func(r *CreateRequest) { r.Name = "my app" }, "name", "Nom invalide (caractères alphanumériques et tirets uniquement)"},
		{"long name", func(r *CreateRequest) { r.Name = strings.Repeat("a", 101) }, "name", ""},
		{"max name", func(r *CreateRequest) { r.Name = strings.Repeat("a", 100) }, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRequest()
			tt.mutate(&r)
			err := r.Validate(limits, catalog)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.field, ve.Field)
			if tt.msg != "" {
				assert.Equal(t, tt.msg, ve.Error())
			}
		})
	}
}

func TestCatalogWithRemote(t *testing.T) {
	c := DefaultCatalog().WithRemote(FrameworkGroups{
		"python": {{ID: "django", Name: "Django", Version: "5.x"}},
		"rust":   {{ID: "axum", Name: "Axum", Version: "0.7"}},
	})

	django, ok := c.Get("DJANGO")
	require.True(t, ok)
	assert.Equal(t, "5.x", django.Version)
	assert.Equal(t, 8000, django.Port)

	axum, ok := c.Get("axum")
	require.True(t, ok)
	assert.Equal(t, "rust", axum.Language)
	assert.Equal(t, DefaultCatalog().Len()+1, c.Len())

	grouped := c.Grouped()
	assert.Len(t, grouped["java"], 1)
}

func TestFormatTimestamp(t *testing.T) {
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "N/A", FormatTimestamp("", now, time.UTC))
	assert.Equal(t, "15/01/2024 10:30:00 (il y a 1 h)", FormatTimestamp("2024-01-15T10:30:00.123456", now, time.UTC))
	assert.Equal(t, "15/01/2024 11:55:00 (il y a 5 min)", FormatTimestamp("2024-01-15T11:55:00Z", now, time.UTC))
	assert.Equal(t, "not-a-date", FormatTimestamp("not-a-date", now, time.UTC))
	assert.Equal(t, "il y a 3 jours", Relative(now.Add(-72*time.Hour), now))
	assert.Equal(t, "à l'instant", Relative(now.Add(time.Minute), now))
}

func TestDefaultName(t *testing.T) {
	now := time.Date(2024, 3, 9, 8, 7, 6, 0, time.UTC)
	assert.Equal(t, "flask-20240309-080706", DefaultName("flask", now))
}

func TestSortNewestFirstAndCount(t *testing.T) {
	ds := []Deployment{
		{ID: 1, CreatedAt: "2024-01-01T00:00:00", Status: StatusRunning},
		{ID: 3, CreatedAt: "2024-01-03T00:00:00", Status: StatusFailed},
		{ID: 2, CreatedAt: "2024-01-02T00:00:00", Status: StatusPending},
	}
	SortNewestFirst(ds)
	assert.Equal(t, []int{3, 2, 1}, []int{ds[0].ID, ds[1].ID, ds[2].ID})
	assert.Equal(t, DeploymentCounts{Total: 3, Running: 1, Failed: 1, Pending: 1}, Count(ds))
}
