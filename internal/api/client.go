package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-cleanhttp"

	"deployctl/internal/deploy"
	"deployctl/pkg/logging"
)

const (
	subsystem       = "API"
	HeaderRequestID = "X-Request-ID"

	statusPath      = "/api/status"
	deploymentsPath = "/api/deployments"
	deployPath      = "/api/deploy"
	resourcesPath   = "/api/resources"
	frameworksPath  = "/api/frameworks"

	maxErrorBody = 64 << 10
)

// HTTPClient is the subset of *http.Client the Client needs.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the deployment backend.
type Client struct {
	httpClient HTTPClient
	baseURL    string
	timeout    time.Duration
	userAgent  string
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the pooled default transport.
func WithHTTPClient(c HTTPClient) Option {
	return func(cl *Client) { cl.httpClient = c }
}

// WithTimeout bounds every request that arrives without its own deadline.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) { cl.timeout = d }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(cl *Client) { cl.userAgent = ua }
}

// New creates a client for the backend rooted at baseURL, e.g. "http://localhost:5000".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient: cleanhttp.DefaultPooledClient(),
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  "deployctl",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend root this client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) SystemStatus(ctx context.Context) (deploy.SystemStatus, error) {
	var status deploy.SystemStatus
	err := c.do(ctx, http.MethodGet, statusPath, nil, &status)
	return status, err
}

func (c *Client) ListDeployments(ctx context.Context) ([]deploy.Deployment, error) {
	var list deploy.DeploymentList
	if err := c.do(ctx, http.MethodGet, deploymentsPath, nil, &list); err != nil {
		return nil, err
	}
	if list.Deployments == nil {
		list.Deployments = []deploy.Deployment{}
	}
	return list.Deployments, nil
}

func (c *Client) GetDeployment(ctx context.Context, id int) (deploy.Deployment, error) {
	var d deploy.Deployment
	err := c.do(ctx, http.MethodGet, deploymentPath(id), nil, &d)
	return d, err
}

func (c *Client) CreateDeployment(ctx context.Context, req deploy.CreateRequest) (deploy.CreateResponse, error) {
	var resp deploy.CreateResponse
	err := c.do(ctx, http.MethodPost, deployPath, req, &resp)
	return resp, err
}

func (c *Client) DeleteDeployment(ctx context.Context, id int) (deploy.ActionResponse, error) {
	var resp deploy.ActionResponse
	err := c.do(ctx, http.MethodDelete, deploymentPath(id), nil, &resp)
	return resp, err
}

func (c *Client) RestartDeployment(ctx context.Context, id int) (deploy.ActionResponse, error) {
	var resp deploy.ActionResponse
	err := c.do(ctx, http.MethodPost, deploymentPath(id, "restart"), nil, &resp)
	return resp, err
}

func (c *Client) DeploymentLogs(ctx context.Context, id int) (deploy.Logs, error) {
	var logs deploy.Logs
	err := c.do(ctx, http.MethodGet, deploymentPath(id, "logs"), nil, &logs)
	return logs, err
}

// Resources returns the node snapshot. A body carrying "error" is not a Go error: it
// comes back in ResourceSnapshot.Error, even on a 5xx.
func (c *Client) Resources(ctx context.Context) (deploy.ResourceSnapshot, error) {
	var snap deploy.ResourceSnapshot
	err := c.do(ctx, http.MethodGet, resourcesPath, nil, &snap)
	if apiErr, ok := IsAPIError(err); ok && apiErr.fromBody {
		return deploy.ResourceSnapshot{Error: apiErr.Message}, nil
	}
	return snap, err
}

func (c *Client) Frameworks(ctx context.Context) (deploy.FrameworkGroups, error) {
	groups := deploy.FrameworkGroups{}
	err := c.do(ctx, http.MethodGet, frameworksPath, nil, &groups)
	return groups, err
}

func deploymentPath(id int, sub ...string) string {
	return strings.Join(append([]string{deploymentsPath, strconv.Itoa(id)}, sub...), "/")
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	u, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return &TransportError{Op: method, URL: c.baseURL + path, Err: err}
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline && c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding %s body: %w", path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return &TransportError{Op: method, URL: u, Err: err}
	}
	requestID := uuid.NewString()
	req.Header.Set(HeaderRequestID, requestID)
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logging.Debug(subsystem, "%s %s failed after %s (request %s): %v", method, path, time.Since(start), requestID, err)
		return &TransportError{Op: method, URL: u, Err: err}
	}
	defer resp.Body.Close()
	logging.Debug(subsystem, "%s %s -> %d in %s (request %s)", method, path, resp.StatusCode, time.Since(start), requestID)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp, requestID)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return &TransportError{Op: method, URL: u, Err: fmt.Errorf("decoding response: %w", err)}
	}
	return nil
}

func decodeError(resp *http.Response, requestID string) error {
	apiErr := &APIError{StatusCode: resp.StatusCode, RequestID: requestID}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var body deploy.ErrorBody
	if json.Unmarshal(data, &body) == nil && body.Error != "" {
		apiErr.Message = body.Error
		apiErr.fromBody = true
	} else {
		apiErr.Message = http.StatusText(resp.StatusCode)
		if apiErr.Message == "" {
			apiErr.Message = fmt.Sprintf("HTTP %d", resp.StatusCode)
		}
	}
	return apiErr
}
