package mcptools

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"deployctl/internal/api"
	"deployctl/internal/deploy"
	"deployctl/internal/mockapi"

	"github.com/gin-gonic/gin"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*mockapi.Server, *DeploymentTools) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	srv := mockapi.New(mockapi.Options{})
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return srv, NewDeploymentTools(api.New(ts.URL), deploy.DefaultLimits(), deploy.DefaultCatalog())
}

func call(name string, args map[string]interface{}) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	tc, ok := mcp.AsTextContent(res.Content[0])
	require.True(t, ok)
	return tc.Text
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

func TestTools_Names(t *testing.T) {
	_, dt := setup(t)
	var names []string
	for _, st := range dt.Tools() {
		names = append(names, st.Tool.Name)
		assert.NotNil(t, st.Handler, st.Tool.Name)
	}
	assert.ElementsMatch(t, []string{
		"deployment_list", "deployment_get", "deployment_create", "deployment_delete",
		"deployment_restart", "deployment_logs", "resources_get", "system_status",
	}, names)
}

func TestCreateThenList(t *testing.T) {
	_, dt := setup(t)
	ctx := context.Background()

	res, err := dt.HandleCreate(ctx, call("deployment_create", map[string]interface{}{
		"github_url": "https://github.com/acme/shop",
		"framework":  "django",
		"type":       "lxc",
		"cpu":        float64(4),
	}))
	require.NoError(t, err)
	require.False(t, res.IsError, text(t, res))

	var created deploy.CreateResponse
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &created))
	assert.Equal(t, deploy.TypeLXC, created.Deployment.Type)
	assert.Equal(t, 4, created.Deployment.Resources.CPU)

	res, err = dt.HandleList(ctx, call("deployment_list", nil))
	require.NoError(t, err)
	var listed struct {
		Deployments []deploy.Deployment `json:"deployments"`
		Total       int                 `json:"total"`
	}
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &listed))
	assert.Equal(t, 1, listed.Total)
	assert.Equal(t, created.Deployment.ID, listed.Deployments[0].ID)
}

func TestCreate_InvalidNeverReachesBackend(t *testing.T) {
	srv, dt := setup(t)

	tests := []struct {
		name string
		args map[string]interface{}
		want string
	}{
		{"bad url", map[string]interface{}{"github_url": "https://gitlab.com/a/b", "framework": "django"}, "URL GitHub invalide"},
		{"unknown framework", map[string]interface{}{"github_url": "https://github.com/a/b", "framework": "rails"}, "Framework non supporté: rails"},
		{"cpu too high", map[string]interface{}{"github_url": "https://github.com/a/b", "framework": "flask", "cpu": float64(64)}, "CPU doit être entre 1 et 8"},
		{"fractional memory", map[string]interface{}{"github_url": "https://github.com/a/b", "framework": "flask", "memory": 1.5}, "memory must be an integer"},
		{"missing url", map[string]interface{}{"framework": "flask"}, "github_url is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := dt.HandleCreate(context.Background(), call("deployment_create", tt.args))
			require.NoError(t, err)
			assert.True(t, res.IsError)
			assert.Contains(t, text(t, res), tt.want)
		})
	}
	assert.Equal(t, 0, countRequests(srv, http.MethodPost))
}

func TestDelete_RequiresConfirm(t *testing.T) {
	srv, dt := setup(t)
	ctx := context.Background()
	_, err := dt.HandleCreate(ctx, call("deployment_create", map[string]interface{}{
		"github_url": "https://github.com/acme/shop", "framework": "flask",
	}))
	require.NoError(t, err)

	res, err := dt.HandleDelete(ctx, call("deployment_delete", map[string]interface{}{"id": float64(1)}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Equal(t, 0, countRequests(srv, http.MethodDelete))

	res, err = dt.HandleDelete(ctx, call("deployment_delete", map[string]interface{}{"id": float64(1), "confirm": true}))
	require.NoError(t, err)
	assert.False(t, res.IsError, text(t, res))
	assert.Equal(t, 1, countRequests(srv, http.MethodDelete))
}

func TestBackendErrorIsVerbatim(t *testing.T) {
	srv, dt := setup(t)
	srv.FailNext(http.MethodPost, "/api/deployments/:id/restart", http.StatusInternalServerError, "Proxmox injoignable")

	res, err := dt.HandleRestart(context.Background(), call("deployment_restart", map[string]interface{}{"id": "3"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Equal(t, "Proxmox injoignable", text(t, res))
}

func TestGet_NotFound(t *testing.T) {
	_, dt := setup(t)
	res, err := dt.HandleGet(context.Background(), call("deployment_get", map[string]interface{}{"id": float64(99)}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Equal(t, deploy.MsgNotFound, text(t, res))
}

func TestSystemStatusAndResources(t *testing.T) {
	srv, dt := setup(t)
	ctx := context.Background()

	res, err := dt.HandleSystemStatus(ctx, call("system_status", nil))
	require.NoError(t, err)
	var status deploy.SystemStatus
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &status))
	assert.True(t, status.System.ProxmoxConnected)

	res, err = dt.HandleResources(ctx, call("resources_get", nil))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Contains(t, text(t, res), `"cores"`)

	srv.SetProxmoxConnected(false)
	res, err = dt.HandleResources(ctx, call("resources_get", nil))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestRequireID(t *testing.T) {
	tests := []struct {
		name    string
		args    map[string]interface{}
		want    int
		wantErr bool
	}{
		{"float", map[string]interface{}{"id": float64(7)}, 7, false},
		{"string", map[string]interface{}{"id": " 12 "}, 12, false},
		{"missing", map[string]interface{}{}, 0, true},
		{"zero", map[string]interface{}{"id": float64(0)}, 0, true},
		{"fraction", map[string]interface{}{"id": 2.5}, 0, true},
		{"bool", map[string]interface{}{"id": true}, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, res := requireID(call("x", tt.args))
			if tt.wantErr {
				assert.NotNil(t, res)
				return
			}
			assert.Nil(t, res)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestNewServer(t *testing.T) {
	_, dt := setup(t)
	assert.NotNil(t, NewServer(dt, ""))
}
