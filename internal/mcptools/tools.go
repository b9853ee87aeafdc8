package mcptools

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"deployctl/internal/api"
	"deployctl/internal/deploy"
	"deployctl/pkg/logging"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const subsystem = "MCPTools"

// DeploymentTools provides MCP tools backed by a DeploymentAPI.
type DeploymentTools struct {
	client  api.DeploymentAPI
	limits  deploy.Limits
	catalog *deploy.Catalog
}

// NewDeploymentTools creates the tool set. A nil catalog means the built-in list.
func NewDeploymentTools(client api.DeploymentAPI, limits deploy.Limits, catalog *deploy.Catalog) *DeploymentTools {
	if catalog == nil {
		catalog = deploy.DefaultCatalog()
	}
	return &DeploymentTools{client: client, limits: limits, catalog: catalog}
}

// Tools returns every tool definition paired with its handler.
func (dt *DeploymentTools) Tools() []server.ServerTool {
	idArg := func(verb string) mcp.ToolOption {
		return mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Deployment id to "+verb),
		)
	}

	return []server.ServerTool{
		{
			Tool: mcp.NewTool("deployment_list",
				mcp.WithDescription("List all deployments, newest first"),
			),
			Handler: dt.HandleList,
		},
		{
			Tool: mcp.NewTool("deployment_get",
				mcp.WithDescription("Get one deployment with its status and IP address"),
				idArg("fetch"),
			),
			Handler: dt.HandleGet,
		},
		{
			Tool: mcp.NewTool("deployment_create",
				mcp.WithDescription("Deploy a GitHub repository to a new VM or LXC container on Proxmox"),
				mcp.WithString("github_url",
					mcp.Required(),
					mcp.Description("https://github.com/<owner>/<repo> URL of the application"),
				),
				mcp.WithString("framework",
					mcp.Required(),
					mcp.Description("Framework id, e.g. django, flask, nodejs, laravel"),
				),
				mcp.WithString("type",
					mcp.Description("Guest type: vm (default) or lxc"),
					mcp.Enum("vm", "lxc"),
				),
				mcp.WithString("name",
					mcp.Description("Deployment name; defaults to <framework>-<timestamp>"),
				),
				mcp.WithNumber("cpu", mcp.Description("CPU cores (default 2)")),
				mcp.WithNumber("memory", mcp.Description("Memory in MB (default 2048)")),
				mcp.WithNumber("disk", mcp.Description("Disk in GB (default 20)")),
			),
			Handler: dt.HandleCreate,
		},
		{
			Tool: mcp.NewTool("deployment_delete",
				mcp.WithDescription("Delete a deployment and destroy its guest. Requires confirm=true"),
				idArg("delete"),
				mcp.WithBoolean("confirm",
					mcp.Required(),
					mcp.Description("Must be true; deleting cannot be undone"),
				),
			),
			Handler: dt.HandleDelete,
		},
		{
			Tool: mcp.NewTool("deployment_restart",
				mcp.WithDescription("Restart the guest of a running deployment"),
				idArg("restart"),
			),
			Handler: dt.HandleRestart,
		},
		{
			Tool: mcp.NewTool("deployment_logs",
				mcp.WithDescription("Get the provisioning and Terraform logs of a deployment"),
				idArg("read logs of"),
			),
			Handler: dt.HandleLogs,
		},
		{
			Tool: mcp.NewTool("resources_get",
				mcp.WithDescription("Get CPU, memory and guest counts of the Proxmox node"),
			),
			Handler: dt.HandleResources,
		},
		{
			Tool: mcp.NewTool("system_status",
				mcp.WithDescription("Get backend health, Proxmox connectivity and deployment counters"),
			),
			Handler: dt.HandleSystemStatus,
		},
	}
}

// HandleList handles the deployment_list tool call
func (dt *DeploymentTools) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	list, err := dt.client.ListDeployments(ctx)
	if err != nil {
		return backendError("Failed to list deployments", err), nil
	}
	deploy.SortNewestFirst(list)
	return jsonResult(map[string]interface{}{
		"deployments": list,
		"total":       len(list),
	})
}

// HandleGet handles the deployment_get tool call
func (dt *DeploymentTools) HandleGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errResult := requireID(req)
	if errResult != nil {
		return errResult, nil
	}
	d, err := dt.client.GetDeployment(ctx, id)
	if err != nil {
		return backendError("Failed to get deployment", err), nil
	}
	return jsonResult(d)
}

// HandleCreate handles the deployment_create tool call. The request is checked
// locally first so an invalid one never reaches the backend.
func (dt *DeploymentTools) HandleCreate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	githubURL, err := req.RequireString("github_url")
	if err != nil {
		return mcp.NewToolResultError("github_url is required"), nil
	}
	framework, err := req.RequireString("framework")
	if err != nil {
		return mcp.NewToolResultError("framework is required"), nil
	}

	body := deploy.NewCreateRequest()
	body.GithubURL = strings.TrimSpace(githubURL)
	body.Framework = strings.TrimSpace(framework)

	args := req.GetArguments()
	if s, ok := args["type"].(string); ok && s != "" {
		t, err := deploy.ParseType(s)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		body.Type = t
	}
	if s, ok := args["name"].(string); ok {
		body.Name = strings.TrimSpace(s)
	}
	for key, dst := range map[string]*int{"cpu": &body.CPU, "memory": &body.Memory, "disk": &body.Disk} {
		if _, present := args[key]; !present {
			continue
		}
		v, err := intArg(args, key)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		*dst = v
	}

	if err := body.Validate(dt.limits, dt.catalog); err != nil {
		return mcp.NewToolResultError(deploy.ErrorNotice(err.Error())), nil
	}

	resp, err := dt.client.CreateDeployment(ctx, body)
	if err != nil {
		return backendError(deploy.MsgCreateFailed, err), nil
	}
	logging.Info(subsystem, "deployment %d created for %s", resp.Deployment.ID, body.GithubURL)
	return jsonResult(resp)
}

// HandleDelete handles the deployment_delete tool call
func (dt *DeploymentTools) HandleDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errResult := requireID(req)
	if errResult != nil {
		return errResult, nil
	}
	if confirm, _ := req.GetArguments()["confirm"].(bool); !confirm {
		return mcp.NewToolResultError("Deletion not confirmed: call again with confirm=true"), nil
	}

	resp, err := dt.client.DeleteDeployment(ctx, id)
	if err != nil {
		return backendError(deploy.MsgDeleteFailed, err), nil
	}
	logging.Info(subsystem, "deployment %d deleted", id)
	return jsonResult(resp)
}

// HandleRestart handles the deployment_restart tool call
func (dt *DeploymentTools) HandleRestart(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errResult := requireID(req)
	if errResult != nil {
		return errResult, nil
	}
	resp, err := dt.client.RestartDeployment(ctx, id)
	if err != nil {
		return backendError(deploy.MsgRestartFailed, err), nil
	}
	return jsonResult(resp)
}

// HandleLogs handles the deployment_logs tool call
func (dt *DeploymentTools) HandleLogs(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errResult := requireID(req)
	if errResult != nil {
		return errResult, nil
	}
	logs, err := dt.client.DeploymentLogs(ctx, id)
	if err != nil {
		return backendError(deploy.MsgLogsFailed, err), nil
	}
	return jsonResult(logs)
}

// HandleResources handles the resources_get tool call. A snapshot carrying its
// own error is reported as a tool error.
func (dt *DeploymentTools) HandleResources(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap, err := dt.client.Resources(ctx)
	if err != nil {
		return backendError(deploy.MsgLoadError, err), nil
	}
	if snap.Error != "" {
		return mcp.NewToolResultError(snap.Error), nil
	}
	return jsonResult(snap)
}

// HandleSystemStatus handles the system_status tool call
func (dt *DeploymentTools) HandleSystemStatus(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status, err := dt.client.SystemStatus(ctx)
	if err != nil {
		return backendError(deploy.ConnErrorLabel, err), nil
	}
	return jsonResult(status)
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	resultJSON, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding tool result: %w", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(string(resultJSON)),
		},
	}, nil
}

// backendError keeps the backend's own message and falls back to fallback plus the
// cause for transport failures.
func backendError(fallback string, err error) *mcp.CallToolResult {
	logging.Error(subsystem, err, "%s", fallback)
	if apiErr, ok := api.IsAPIError(err); ok && apiErr.Message != "" {
		return mcp.NewToolResultError(apiErr.Message)
	}
	return mcp.NewToolResultError(fmt.Sprintf("%s: %v", fallback, err))
}

func requireID(req mcp.CallToolRequest) (int, *mcp.CallToolResult) {
	id, err := intArg(req.GetArguments(), "id")
	if err != nil {
		return 0, mcp.NewToolResultError(err.Error())
	}
	if id <= 0 {
		return 0, mcp.NewToolResultError("id must be a positive integer")
	}
	return id, nil
}

// intArg reads a whole number that JSON may have delivered as a float or a string.
func intArg(args map[string]interface{}, key string) (int, error) {
	switch v := args[key].(type) {
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("%s must be an integer", key)
		}
		return int(v), nil
	case int:
		return v, nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("%s must be an integer", key)
		}
		return n, nil
	case nil:
		return 0, fmt.Errorf("%s is required", key)
	default:
		return 0, fmt.Errorf("%s must be an integer", key)
	}
}
