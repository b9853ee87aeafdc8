package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"deployctl/internal/deploy"
	"deployctl/internal/mockapi"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withBackend points the global --api-url at a fresh mock backend and isolates
// the configuration from the developer's home directory.
func withBackend(t *testing.T) *mockapi.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("DEPLOYCTL_API_URL", "")

	srv := mockapi.New(mockapi.Options{})
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	orig := rootAPIURL
	rootAPIURL = ts.URL
	t.Cleanup(func() { rootAPIURL = orig })
	return srv
}

func execute(t *testing.T, cmd *cobra.Command, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func countRequests(srv *mockapi.Server, prefix string) int {
	n := 0
	for _, r := range srv.Requests() {
		if strings.HasPrefix(r, prefix) {
			n++
		}
	}
	return n
}

func TestDeployThenList(t *testing.T) {
	withBackend(t)

	out, err := execute(t, newDeployCmd(), "", "https://github.com/acme/shop", "--framework", "flask", "--type", "lxc", "-o", "json")
	require.NoError(t, err)
	var created deploy.CreateResponse
	require.NoError(t, json.Unmarshal([]byte(out), &created))
	assert.Equal(t, deploy.TypeLXC, created.Deployment.Type)
	assert.Equal(t, "flask", created.Deployment.Framework)

	out, err = execute(t, newListCmd(), "", "-o", "json")
	require.NoError(t, err)
	var list deploy.DeploymentList
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	require.Equal(t, 1, list.Total)
	assert.Equal(t, created.Deployment.ID, list.Deployments[0].ID)
}

func TestDeploy_InvalidRequestNeverSent(t *testing.T) {
	srv := withBackend(t)

	_, err := execute(t, newDeployCmd(), "", "https://gitlab.com/acme/shop")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "URL GitHub invalide")

	_, err = execute(t, newDeployCmd(), "", "https://github.com/acme/shop", "--cpu", "99")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CPU doit être entre 1 et 8")

	_, err = execute(t, newDeployCmd(), "", "https://github.com/acme/shop", "--type", "docker")
	require.Error(t, err)

	assert.Equal(t, 0, countRequests(srv, http.MethodPost))
}

func TestDeploy_BackendErrorVerbatim(t *testing.T) {
	srv := withBackend(t)
	srv.FailNext(http.MethodPost, "/api/deploy", http.StatusInternalServerError, "Quota Proxmox atteint")

	_, err := execute(t, newDeployCmd(), "", "https://github.com/acme/shop")
	require.Error(t, err)
	assert.Equal(t, "Erreur: Quota Proxmox atteint", err.Error())
}

func TestDelete_DeclinedSendsNothing(t *testing.T) {
	srv := withBackend(t)
	_, err := execute(t, newDeployCmd(), "", "https://github.com/acme/shop", "-q")
	require.NoError(t, err)

	out, err := execute(t, newDeleteCmd(), "n\n", "1")
	require.NoError(t, err)
	assert.Contains(t, out, deploy.MsgConfirmDelete)
	assert.Contains(t, out, "annulée")
	assert.Equal(t, 0, countRequests(srv, http.MethodDelete))

	out, err = execute(t, newDeleteCmd(), "oui\n", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "(#1)")
	assert.Equal(t, 1, countRequests(srv, http.MethodDelete))
}

func TestDelete_YesSkipsPrompt(t *testing.T) {
	srv := withBackend(t)
	_, err := execute(t, newDeployCmd(), "", "https://github.com/acme/shop", "-q")
	require.NoError(t, err)

	out, err := execute(t, newDeleteCmd(), "", "1", "--yes")
	require.NoError(t, err)
	assert.NotContains(t, out, deploy.MsgConfirmDelete)
	assert.Equal(t, 1, countRequests(srv, http.MethodDelete))
}

func TestRestart_RunningOnly(t *testing.T) {
	srv := withBackend(t)
	_, err := execute(t, newDeployCmd(), "", "https://github.com/acme/app-fail", "-q")
	require.NoError(t, err)

	_, err = execute(t, newRestartCmd(), "", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only running deployments")
	assert.Equal(t, 0, srv.Restarts(1))

	_, err = execute(t, newDeployCmd(), "", "https://github.com/acme/ok", "-q")
	require.NoError(t, err)
	_, err = execute(t, newRestartCmd(), "", "2")
	require.NoError(t, err)
	assert.Equal(t, 1, srv.Restarts(2))
}

func TestGet_NotFound(t *testing.T) {
	withBackend(t)
	_, err := execute(t, newGetCmd(), "", "42")
	require.Error(t, err)
	assert.Equal(t, deploy.ErrorNotice(deploy.MsgNotFound), err.Error())

	_, err = execute(t, newGetCmd(), "", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid deployment id")
}

func TestStatusAndResources(t *testing.T) {
	srv := withBackend(t)

	out, err := execute(t, newStatusCmd(), "")
	require.NoError(t, err)
	assert.Contains(t, out, deploy.ConnectedLabel)

	srv.SetProxmoxConnected(false)
	out, err = execute(t, newResourcesCmd(), "")
	require.NoError(t, err)
	assert.Contains(t, out, "Non connecté à Proxmox")
}

func TestLogs(t *testing.T) {
	withBackend(t)
	_, err := execute(t, newDeployCmd(), "", "https://github.com/acme/shop", "-q")
	require.NoError(t, err)

	out, err := execute(t, newLogsCmd(), "", "1", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "deployment_id: 1")
}

func TestParseID(t *testing.T) {
	id, err := parseID("#12")
	require.NoError(t, err)
	assert.Equal(t, 12, id)

	for _, bad := range []string{"", "0", "-3", "x"} {
		_, err := parseID(bad)
		assert.Error(t, err, bad)
	}
}
