// Package mockapi is an in-memory stand-in for the deployment backend. It serves
// the same REST contract so the dashboard and the CLI can be developed and tested
// without a Proxmox node.
//
// Deployments move through pending and creating to running on a timer. A
// repository whose name contains "fail" ends up failed instead.
package mockapi

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"deployctl/internal/deploy"
)

const timestampLayout = "2006-01-02T15:04:05.000000"

// Options configures a Server.
type Options struct {
	// ProvisionDelay is the time spent in each of pending and creating.
	ProvisionDelay time.Duration
	Limits         deploy.Limits
	Catalog        *deploy.Catalog
	Logger         *zap.Logger
	// Now defaults to time.Now; tests move it forward to drive the lifecycle.
	Now func() time.Time
}

type record struct {
	deploy.Deployment
	created  time.Time
	deleted  bool
	willFail bool
	logs     []string
}

type failure struct {
	code    int
	message string
}

// Server holds the fake backend state.
type Server struct {
	mu          sync.Mutex
	opts        Options
	records     map[int]*record
	nextID      int
	nextIP      int
	connected   bool
	failures    map[string]failure
	restarts    map[int]int
	requestLogs []string
}

// New creates a Server with one node, no deployments and Proxmox reachable.
func New(opts Options) *Server {
	if opts.Catalog == nil {
		opts.Catalog = deploy.DefaultCatalog()
	}
	if opts.Limits == (deploy.Limits{}) {
		opts.Limits = deploy.DefaultLimits()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Server{
		opts:      opts,
		records:   map[int]*record{},
		nextID:    1,
		nextIP:    100,
		connected: true,
		failures:  map[string]failure{},
		restarts:  map[int]int{},
	}
}

// Router builds the gin engine serving the REST contract.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestid.New())
	r.Use(s.accessLog())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions}
	corsConfig.AddAllowHeaders("X-Request-ID")
	r.Use(cors.New(corsConfig))

	r.Use(s.injectFailures())

	api := r.Group("/api")
	{
		api.GET("/status", s.handleStatus)
		api.GET("/frameworks", s.handleFrameworks)
		api.GET("/resources", s.handleResources)
		api.POST("/deploy", s.handleCreate)

		deployments := api.Group("/deployments")
		{
			deployments.GET("", s.handleList)
			deployments.GET("/:id", s.handleGet)
			deployments.DELETE("/:id", s.handleDelete)
			deployments.POST("/:id/restart", s.handleRestart)
			deployments.GET("/:id/logs", s.handleLogs)
		}
	}
	return r
}

// FailNext makes the next request matching method and route path (e.g.
// "DELETE", "/api/deployments/:id") answer code with {error: message}.
func (s *Server) FailNext(method, path string, code int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" "+path] = failure{code: code, message: message}
}

// SetProxmoxConnected toggles the simulated hypervisor connection.
func (s *Server) SetProxmoxConnected(connected bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connected = connected
}

// Restarts returns how many times deployment id was restarted.
func (s *Server) Restarts(id int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.restarts[id]
}

// Requests returns "METHOD /path" for every request served so far.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requestLogs...)
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		s.mu.Lock()
		s.requestLogs = append(s.requestLogs, c.Request.Method+" "+c.Request.URL.Path)
		s.mu.Unlock()

		c.Next()

		s.opts.Logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", requestid.Get(c)),
		)
	}
}

func (s *Server) injectFailures() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.Request.Method + " " + c.FullPath()
		s.mu.Lock()
		f, ok := s.failures[key]
		if ok {
			delete(s.failures, key)
		}
		s.mu.Unlock()
		if ok {
			s.opts.Logger.Warn("injected failure", zap.String("route", key), zap.Int("status", f.code))
			c.AbortWithStatusJSON(f.code, deploy.ErrorBody{Error: f.message})
			return
		}
		c.Next()
	}
}

// advance moves a record along its lifecycle according to the clock. Callers hold s.mu.
func (s *Server) advance(rec *record) {
	if rec.deleted {
		return
	}
	elapsed := s.opts.Now().Sub(rec.created)
	delay := s.opts.ProvisionDelay

	switch {
	case elapsed < delay:
		rec.Status = deploy.StatusPending
	case elapsed < 2*delay:
		if rec.Status != deploy.StatusCreating {
			rec.Status = deploy.StatusCreating
			rec.logs = append(rec.logs, "terraform apply: creating "+string(rec.Type)+" "+rec.Name)
		}
	default:
		if rec.Status == deploy.StatusRunning || rec.Status == deploy.StatusFailed {
			return
		}
		now := s.format(s.opts.Now())
		rec.UpdatedAt = now
		if rec.willFail {
			rec.Status = deploy.StatusFailed
			rec.ErrorMessage = "Échec de l'installation du framework " + rec.Framework
			rec.logs = append(rec.logs, "✗ "+rec.ErrorMessage)
			return
		}
		rec.Status = deploy.StatusRunning
		rec.DeployedAt = now
		vmid := 100 + rec.ID
		rec.Proxmox = deploy.ProxmoxRef{ID: &vmid, Node: "pve", IP: fmt.Sprintf("192.168.1.%d", s.nextIP)}
		s.nextIP++
		rec.logs = append(rec.logs, "application available on http://"+rec.Proxmox.IP)
	}
}

func (s *Server) format(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// sorted returns every record advanced to now, newest first. Callers hold s.mu.
func (s *Server) sorted() []deploy.Deployment {
	out := make([]deploy.Deployment, 0, len(s.records))
	for _, rec := range s.records {
		s.advance(rec)
		out = append(out, rec.Deployment)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, deploy.ErrorBody{Error: deploy.MsgNotFound})
}

func isFailingRepo(githubURL string) bool {
	parts := strings.Split(strings.TrimSuffix(githubURL, ".git"), "/")
	return strings.Contains(strings.ToLower(parts[len(parts)-1]), "fail")
}
