package api

import (
	"context"

	"deployctl/internal/deploy"
)

// DeploymentAPI is everything the frontends need from the backend.
type DeploymentAPI interface {
	SystemStatus(ctx context.Context) (deploy.SystemStatus, error)
	ListDeployments(ctx context.Context) ([]deploy.Deployment, error)
	GetDeployment(ctx context.Context, id int) (deploy.Deployment, error)
	CreateDeployment(ctx context.Context, req deploy.CreateRequest) (deploy.CreateResponse, error)
	DeleteDeployment(ctx context.Context, id int) (deploy.ActionResponse, error)
	RestartDeployment(ctx context.Context, id int) (deploy.ActionResponse, error)
	DeploymentLogs(ctx context.Context, id int) (deploy.Logs, error)
	Resources(ctx context.Context) (deploy.ResourceSnapshot, error)
	Frameworks(ctx context.Context) (deploy.FrameworkGroups, error)
}

var _ DeploymentAPI = (*Client)(nil)
