package deploy

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Status is the lifecycle state reported by the backend.
type Status string

const (
	StatusPending  Status = "pending"
	StatusCreating Status = "creating"
	StatusRunning  Status = "running"
	StatusFailed   Status = "failed"
	StatusStopped  Status = "stopped"
	StatusDeleted  Status = "deleted"
)

// Terminal reports whether the backend will not move the deployment any further on its own.
func (s Status) Terminal() bool {
	switch s {
	case StatusRunning, StatusFailed, StatusStopped, StatusDeleted:
		return true
	}
	return false
}

// Type is the kind of guest provisioned on the Proxmox node.
type Type string

const (
	TypeVM  Type = "vm"
	TypeLXC Type = "lxc"
)

// ParseType accepts "vm", "lxc" and the "container" alias.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vm":
		return TypeVM, nil
	case "lxc", "container":
		return TypeLXC, nil
	}
	return "", fmt.Errorf("Type doit être 'vm' ou 'lxc'")
}

// UnmarshalJSON normalises the container alias to lxc and keeps unknown values as-is.
func (t *Type) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if parsed, err := ParseType(s); err == nil {
		*t = parsed
		return nil
	}
	*t = Type(s)
	return nil
}

// Display is the upper-cased form shown on cards.
func (t Type) Display() string {
	return strings.ToUpper(string(t))
}

// Resources are the compute allocations of a deployment.
type Resources struct {
	CPU    int `json:"cpu" yaml:"cpu"`
	Memory int `json:"memory" yaml:"memory"` // MB
	Disk   int `json:"disk" yaml:"disk"`     // GB
}

// ProxmoxRef locates the guest on the hypervisor once it exists.
type ProxmoxRef struct {
	ID   *int   `json:"id,omitempty" yaml:"id,omitempty"`
	Node string `json:"node,omitempty" yaml:"node,omitempty"`
	IP   string `json:"ip,omitempty" yaml:"ip,omitempty"`
}

// Deployment is the backend's record of one provisioned application.
type Deployment struct {
	ID           int        `json:"id" yaml:"id"`
	Name         string     `json:"name" yaml:"name"`
	Type         Type       `json:"type" yaml:"type"`
	Framework    string     `json:"framework" yaml:"framework"`
	GithubURL    string     `json:"github_url" yaml:"github_url"`
	Resources    Resources  `json:"resources" yaml:"resources"`
	Proxmox      ProxmoxRef `json:"proxmox" yaml:"proxmox"`
	Status       Status     `json:"status" yaml:"status"`
	ErrorMessage string     `json:"error_message,omitempty" yaml:"error_message,omitempty"`
	CreatedAt    string     `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt    string     `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
	DeployedAt   string     `json:"deployed_at,omitempty" yaml:"deployed_at,omitempty"`
}

// Address is the http URL of the running application, or "" without an IP.
func (d Deployment) Address() string {
	if d.Proxmox.IP == "" {
		return ""
	}
	return "http://" + d.Proxmox.IP
}

// DeploymentList is the body of GET /api/deployments.
type DeploymentList struct {
	Deployments []Deployment `json:"deployments"`
	Total       int          `json:"total"`
}

// CreateResponse is the 202 body of POST /api/deploy.
type CreateResponse struct {
	Message    string     `json:"message"`
	Deployment Deployment `json:"deployment"`
}

// ActionResponse is the 2xx body of delete and restart.
type ActionResponse struct {
	Message      string `json:"message"`
	DeploymentID int    `json:"deployment_id"`
}

// Logs is the body of GET /api/deployments/{id}/logs.
type Logs struct {
	DeploymentID    int    `json:"deployment_id" yaml:"deployment_id"`
	TerraformOutput string `json:"terraform_output,omitempty" yaml:"terraform_output,omitempty"`
	DeploymentLog   string `json:"deployment_log,omitempty" yaml:"deployment_log,omitempty"`
}

// ErrorBody is the {error} payload every failing endpoint returns.
type ErrorBody struct {
	Error string `json:"error"`
}

// ResourceSnapshot is the body of GET /api/resources. When Error is set the other
// fields carry no meaning.
type ResourceSnapshot struct {
	Node       NodeInfo   `json:"node" yaml:"node"`
	VMs        GuestCount `json:"vms" yaml:"vms"`
	Containers GuestCount `json:"containers" yaml:"containers"`
	Error      string     `json:"error,omitempty" yaml:"error,omitempty"`
}

// NodeInfo describes the Proxmox node.
type NodeInfo struct {
	Name   string     `json:"name" yaml:"name"`
	Status string     `json:"status" yaml:"status"`
	CPU    NodeCPU    `json:"cpu" yaml:"cpu"`
	Memory NodeMemory `json:"memory" yaml:"memory"`
}

// NodeCPU carries the core count and utilisation in percent.
type NodeCPU struct {
	Cores int     `json:"cores" yaml:"cores"`
	Usage float64 `json:"usage" yaml:"usage"`
}

// NodeMemory is expressed in GB.
type NodeMemory struct {
	Total float64 `json:"total" yaml:"total"`
	Used  float64 `json:"used" yaml:"used"`
	Free  float64 `json:"free" yaml:"free"`
}

// GuestCount is a running-versus-total counter.
type GuestCount struct {
	Total   int `json:"total" yaml:"total"`
	Running int `json:"running" yaml:"running"`
}

// SystemStatus is the body of GET /api/status.
type SystemStatus struct {
	System struct {
		Status           string `json:"status" yaml:"status"`
		ProxmoxConnected bool   `json:"proxmox_connected" yaml:"proxmox_connected"`
	} `json:"system" yaml:"system"`
	Deployments DeploymentCounts `json:"deployments" yaml:"deployments"`
}

// DeploymentCounts summarises deployments by status.
type DeploymentCounts struct {
	Total   int `json:"total" yaml:"total"`
	Running int `json:"running" yaml:"running"`
	Failed  int `json:"failed" yaml:"failed"`
	Pending int `json:"pending" yaml:"pending"`
}

// Connectivity labels shown in the header indicator.
const (
	ConnectedLabel    = "Connecté à Proxmox"
	DisconnectedLabel = "Proxmox déconnecté"
	ConnErrorLabel    = "Erreur de connexion"
)
