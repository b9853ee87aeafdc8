package deploy

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	githubURLPattern = regexp.MustCompile(`^https://github\.com/[\w-]+/[\w.-]+(?:\.git)?$`)
	namePattern      = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
)

const (
	DefaultCPU      = 2
	DefaultMemoryMB = 2048
	DefaultDiskGB   = 20

	MinCPU      = 1
	MinMemoryMB = 512
	MinDiskGB   = 10

	maxNameLength = 100
)

// Limits are the upper resource bounds accepted by the backend.
type Limits struct {
	MaxCPU      int
	MaxMemoryMB int
	MaxDiskGB   int
}

// DefaultLimits mirrors the backend's stock configuration.
func DefaultLimits() Limits {
	return Limits{MaxCPU: 8, MaxMemoryMB: 16384, MaxDiskGB: 500}
}

// CreateRequest is the body of POST /api/deploy.
type CreateRequest struct {
	Type      Type   `json:"type"`
	Framework string `json:"framework"`
	GithubURL string `json:"github_url"`
	CPU       int    `json:"cpu"`
	Memory    int    `json:"memory"`
	Disk      int    `json:"disk"`
	Name      string `json:"name,omitempty"`
}

// NewCreateRequest returns a request carrying the form defaults.
func NewCreateRequest() CreateRequest {
	return CreateRequest{Type: TypeVM, CPU: DefaultCPU, Memory: DefaultMemoryMB, Disk: DefaultDiskGB}
}

// ValidationError names the offending field and carries the backend's wording.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Validate applies the backend rules and returns the first violation.
func (r CreateRequest) Validate(limits Limits, catalog *Catalog) error {
	if r.Type == "" {
		return invalid("type", "Champ obligatoire manquant: type")
	}
	if strings.TrimSpace(r.Framework) == "" {
		return invalid("framework", "Champ obligatoire manquant: framework")
	}
	if strings.TrimSpace(r.GithubURL) == "" {
		return invalid("github_url", "Champ obligatoire manquant: github_url")
	}
	if r.Type != TypeVM && r.Type != TypeLXC {
		return invalid("type", "Type doit être 'vm' ou 'lxc'")
	}
	if catalog != nil && !catalog.Supported(r.Framework) {
		return invalid("framework", "Framework non supporté: %s", r.Framework)
	}
	if !githubURLPattern.MatchString(r.GithubURL) {
		return invalid("github_url", "URL GitHub invalide")
	}
	if r.CPU < MinCPU || r.CPU > limits.MaxCPU {
		return invalid("cpu", "CPU doit être entre %d et %d", MinCPU, limits.MaxCPU)
	}
	if r.Memory < MinMemoryMB || r.Memory > limits.MaxMemoryMB {
		return invalid("memory", "Mémoire doit être entre %d et %d MB", MinMemoryMB, limits.MaxMemoryMB)
	}
	if r.Disk < MinDiskGB || r.Disk > limits.MaxDiskGB {
		return invalid("disk", "Disque doit être entre %d et %d GB", MinDiskGB, limits.MaxDiskGB)
	}
	if r.Name != "" && (!namePattern.MatchString(r.Name) || len(r.Name) > maxNameLength) {
		return invalid("name", "Nom invalide (caractères alphanumériques et tirets uniquement)")
	}
	return nil
}

// DefaultName is the name the backend assigns when the request carries none.
func DefaultName(framework string, now time.Time) string {
	return fmt.Sprintf("%s-%s", framework, now.UTC().Format("20060102-150405"))
}
