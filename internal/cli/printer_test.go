package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"deployctl/internal/config"
	"deployctl/internal/deploy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestPrinter(format OutputFormat) (*Printer, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewPrinter(PrinterOptions{Format: format, Out: &buf, Now: func() time.Time { return fixedNow }}), &buf
}

func sampleDeployments() []deploy.Deployment {
	return []deploy.Deployment{
		{ID: 1, Name: "old-app", Type: deploy.TypeVM, Framework: "django", Status: deploy.StatusRunning,
			Proxmox: deploy.ProxmoxRef{IP: "192.168.1.100"}, CreatedAt: "2025-06-01T10:00:00"},
		{ID: 2, Name: "new-app", Type: deploy.TypeLXC, Framework: "flask", Status: deploy.StatusFailed,
			ErrorMessage: "boom", CreatedAt: "2025-06-01T11:00:00"},
	}
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{"", OutputFormatTable, false},
		{"table", OutputFormatTable, false},
		{"JSON", OutputFormatJSON, false},
		{" yaml ", OutputFormatYAML, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOutputFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrintDeployments_Table(t *testing.T) {
	p, buf := newTestPrinter(OutputFormatTable)
	require.NoError(t, p.PrintDeployments(sampleDeployments()))

	out := buf.String()
	assert.Contains(t, out, "old-app")
	assert.Contains(t, out, "new-app")
	assert.Contains(t, out, deploy.StatusLabel(deploy.StatusRunning))
	assert.Contains(t, out, deploy.StatusLabel(deploy.StatusFailed))
	assert.Contains(t, out, "192.168.1.100")
	assert.Contains(t, out, "Total:")
	assert.Less(t, strings.Index(out, "new-app"), strings.Index(out, "old-app"), "newest first")
}

func TestPrintDeployments_Empty(t *testing.T) {
	p, buf := newTestPrinter(OutputFormatTable)
	require.NoError(t, p.PrintDeployments(nil))
	assert.Contains(t, buf.String(), deploy.MsgNoDeployments)
}

func TestPrintDeployments_Structured(t *testing.T) {
	p, buf := newTestPrinter(OutputFormatJSON)
	require.NoError(t, p.PrintDeployments(sampleDeployments()))

	var list deploy.DeploymentList
	require.NoError(t, json.Unmarshal(buf.Bytes(), &list))
	assert.Equal(t, 2, list.Total)
	assert.Equal(t, 2, list.Deployments[0].ID)

	p, buf = newTestPrinter(OutputFormatYAML)
	require.NoError(t, p.PrintDeployments(sampleDeployments()))
	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 2, decoded["total"])
}

func TestPrintDeployment_ShowsActionsAndError(t *testing.T) {
	p, buf := newTestPrinter(OutputFormatTable)
	require.NoError(t, p.PrintDeployment(sampleDeployments()[1]))

	out := buf.String()
	assert.Contains(t, out, "boom")
	assert.Contains(t, out, deploy.ActionLogs.Label())
	assert.NotContains(t, out, deploy.ActionRestart.Label())
}

func TestPrintResources(t *testing.T) {
	p, buf := newTestPrinter(OutputFormatTable)
	snap := deploy.ResourceSnapshot{
		Node: deploy.NodeInfo{Name: "pve", Status: "online",
			CPU:    deploy.NodeCPU{Cores: 16, Usage: 12.5},
			Memory: deploy.NodeMemory{Total: 64, Used: 16, Free: 48}},
		VMs: deploy.GuestCount{Total: 3, Running: 2},
	}
	require.NoError(t, p.PrintResources(snap))
	out := buf.String()
	assert.Contains(t, out, "pve")
	assert.Contains(t, out, "16 coeurs, 12.5%")
	assert.Contains(t, out, "2 / 3 en cours")

	p, buf = newTestPrinter(OutputFormatTable)
	require.NoError(t, p.PrintResources(deploy.ResourceSnapshot{Error: "Non connecté à Proxmox", Node: deploy.NodeInfo{Name: "pve"}}))
	assert.Contains(t, buf.String(), "Non connecté à Proxmox")
	assert.NotContains(t, buf.String(), "pve")
}

func TestPrintLogs(t *testing.T) {
	p, buf := newTestPrinter(OutputFormatTable)
	require.NoError(t, p.PrintLogs(deploy.Logs{DeploymentID: 1, TerraformOutput: "apply complete", DeploymentLog: "installed"}))
	out := buf.String()
	assert.Contains(t, out, "Terraform")
	assert.Less(t, strings.Index(out, "apply complete"), strings.Index(out, "installed"))

	p, buf = newTestPrinter(OutputFormatTable)
	require.NoError(t, p.PrintLogs(deploy.Logs{DeploymentID: 1}))
	assert.Contains(t, buf.String(), deploy.MsgNoLogs)
}

func TestPrintAction_FallbackMessage(t *testing.T) {
	p, buf := newTestPrinter(OutputFormatTable)
	require.NoError(t, p.PrintAction(deploy.ActionResponse{DeploymentID: 4}, deploy.MsgDeleted))
	assert.Contains(t, buf.String(), deploy.MsgDeleted+" (#4)")
}

func TestPrintToolResult(t *testing.T) {
	p, buf := newTestPrinter(OutputFormatTable)
	require.NoError(t, p.PrintToolResult(`{"message":"ok","deployment_id":3}`))
	assert.Contains(t, buf.String(), "deployment_id")

	p, buf = newTestPrinter(OutputFormatTable)
	require.NoError(t, p.PrintToolResult("plain text"))
	assert.Equal(t, "plain text\n", buf.String())
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Oui\n", true},
		{"o", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		assert.Equal(t, tt.want, Confirm(strings.NewReader(tt.input), &out, "Supprimer ?"), "input %q", tt.input)
		assert.Contains(t, out.String(), "Supprimer ? [y/N]")
	}
}

func TestFollower_SimulatedRunPrintsEveryStep(t *testing.T) {
	var buf bytes.Buffer
	f := NewFollower(&buf, config.ProgressConfig{
		Mode:         config.ProgressModeSimulated,
		StepInterval: time.Millisecond,
		CloseDelay:   time.Millisecond,
	}, nil)

	require.NoError(t, f.Follow(context.Background(), 7))
	out := buf.String()
	assert.Contains(t, out, deploy.MsgProgressRunning)
	assert.Contains(t, out, "Initialisation")
	assert.Contains(t, out, "Terminé")
	assert.Contains(t, out, deploy.MsgProgressDone)
	assert.Equal(t, 1, strings.Count(out, "Initialisation"))
}

func TestFollower_StatusFailure(t *testing.T) {
	var buf bytes.Buffer
	fetch := func(ctx context.Context, id int) (deploy.Deployment, error) {
		return deploy.Deployment{ID: id, Status: deploy.StatusFailed, ErrorMessage: "terraform error"}, nil
	}
	f := NewFollower(&buf, config.ProgressConfig{
		Mode:         config.ProgressModeStatus,
		StepInterval: time.Millisecond,
		CloseDelay:   time.Millisecond,
	}, fetch)

	err := f.Follow(context.Background(), 9)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deployment 9 failed")
	assert.Contains(t, buf.String(), "✗ terraform error")
}
