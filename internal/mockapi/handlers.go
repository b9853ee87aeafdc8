package mockapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"deployctl/internal/deploy"
)

func (s *Server) handleStatus(c *gin.Context) {
	s.mu.Lock()
	list := s.sorted()
	connected := s.connected
	s.mu.Unlock()

	var status deploy.SystemStatus
	status.System.Status = "operational"
	status.System.ProxmoxConnected = connected
	status.Deployments = deploy.Count(list)
	c.JSON(http.StatusOK, status)
}

func (s *Server) handleFrameworks(c *gin.Context) {
	c.JSON(http.StatusOK, s.opts.Catalog.Grouped())
}

func (s *Server) handleResources(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.connected {
		c.JSON(http.StatusOK, deploy.ErrorBody{Error: "Non connecté à Proxmox"})
		return
	}

	snap := deploy.ResourceSnapshot{
		Node: deploy.NodeInfo{
			Name:   "pve",
			Status: "online",
			CPU:    deploy.NodeCPU{Cores: 16},
			Memory: deploy.NodeMemory{Total: 62.79},
		},
	}
	usedMB := 0
	for _, d := range s.sorted() {
		if d.Status != deploy.StatusRunning && d.Status != deploy.StatusCreating {
			continue
		}
		counter := &snap.VMs
		if d.Type == deploy.TypeLXC {
			counter = &snap.Containers
		}
		counter.Total++
		if d.Status == deploy.StatusRunning {
			counter.Running++
			usedMB += d.Resources.Memory
			snap.Node.CPU.Usage += float64(d.Resources.CPU) / float64(snap.Node.CPU.Cores) * 25
		}
	}
	snap.Node.Memory.Used = round2(float64(usedMB)/1024 + 3.2)
	snap.Node.Memory.Free = round2(snap.Node.Memory.Total - snap.Node.Memory.Used)
	snap.Node.CPU.Usage = round2(snap.Node.CPU.Usage + 1.5)
	c.JSON(http.StatusOK, snap)
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}

// createBody mirrors deploy.CreateRequest but keeps the type as a raw string so that
// unknown values reach validation instead of failing to decode.
type createBody struct {
	Type      string `json:"type"`
	Framework string `json:"framework"`
	GithubURL string `json:"github_url"`
	CPU       *int   `json:"cpu"`
	Memory    *int   `json:"memory"`
	Disk      *int   `json:"disk"`
	Name      string `json:"name"`
}

func (s *Server) handleCreate(c *gin.Context) {
	var body createBody
	if err := c.ShouldBindJSON(&body); err != nil {
		s.opts.Logger.Error("Invalid deploy request", zap.Error(err))
		c.JSON(http.StatusBadRequest, deploy.ErrorBody{Error: "Corps JSON invalide"})
		return
	}

	req := deploy.NewCreateRequest()
	req.Type = deploy.Type(body.Type)
	if strings.EqualFold(body.Type, "container") {
		req.Type = deploy.TypeLXC
	}
	req.Framework = body.Framework
	req.GithubURL = body.GithubURL
	req.Name = body.Name
	if body.CPU != nil {
		req.CPU = *body.CPU
	}
	if body.Memory != nil {
		req.Memory = *body.Memory
	}
	if body.Disk != nil {
		req.Disk = *body.Disk
	}

	if err := req.Validate(s.opts.Limits, s.opts.Catalog); err != nil {
		c.JSON(http.StatusBadRequest, deploy.ErrorBody{Error: err.Error()})
		return
	}

	s.mu.Lock()
	now := s.opts.Now()
	if req.Name == "" {
		req.Name = deploy.DefaultName(req.Framework, now)
	}
	rec := &record{
		Deployment: deploy.Deployment{
			ID:        s.nextID,
			Name:      req.Name,
			Type:      req.Type,
			Framework: strings.ToLower(req.Framework),
			GithubURL: req.GithubURL,
			Resources: deploy.Resources{CPU: req.CPU, Memory: req.Memory, Disk: req.Disk},
			Status:    deploy.StatusPending,
			CreatedAt: s.format(now),
			UpdatedAt: s.format(now),
		},
		created:  now,
		willFail: isFailingRepo(req.GithubURL),
		logs:     []string{"Déploiement créé: " + req.Name},
	}
	s.records[rec.ID] = rec
	s.nextID++
	created := rec.Deployment
	s.mu.Unlock()

	s.opts.Logger.Info("deployment created", zap.Int("id", created.ID), zap.String("name", created.Name))
	c.JSON(http.StatusAccepted, deploy.CreateResponse{Message: "Déploiement démarré", Deployment: created})
}

func (s *Server) handleList(c *gin.Context) {
	s.mu.Lock()
	list := s.sorted()
	s.mu.Unlock()
	c.JSON(http.StatusOK, deploy.DeploymentList{Deployments: list, Total: len(list)})
}

// lookup resolves the :id parameter. Callers hold s.mu.
func (s *Server) lookup(c *gin.Context) (*record, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		notFound(c)
		return nil, false
	}
	rec, ok := s.records[id]
	if !ok {
		notFound(c)
		return nil, false
	}
	s.advance(rec)
	return rec, true
}

func (s *Server) handleGet(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, rec.Deployment)
}

func (s *Server) handleDelete(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.lookup(c)
	if !ok {
		return
	}
	rec.deleted = true
	rec.Status = deploy.StatusDeleted
	rec.UpdatedAt = s.format(s.opts.Now())
	rec.logs = append(rec.logs, "terraform destroy: done")
	c.JSON(http.StatusOK, deploy.ActionResponse{Message: deploy.MsgDeleted, DeploymentID: rec.ID})
}

func (s *Server) handleRestart(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.lookup(c)
	if !ok {
		return
	}
	if rec.Proxmox.ID == nil {
		c.JSON(http.StatusInternalServerError, deploy.ErrorBody{Error: "Échec du redémarrage"})
		return
	}
	s.restarts[rec.ID]++
	rec.UpdatedAt = s.format(s.opts.Now())
	rec.logs = append(rec.logs, "VM redémarrée")
	c.JSON(http.StatusOK, deploy.ActionResponse{Message: deploy.MsgRestarted, DeploymentID: rec.ID})
}

func (s *Server) handleLogs(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.lookup(c)
	if !ok {
		return
	}
	logs := deploy.Logs{DeploymentID: rec.ID, DeploymentLog: strings.Join(rec.logs, "\n")}
	if rec.Status != deploy.StatusPending {
		logs.TerraformOutput = "Apply complete! Resources: 1 added, 0 changed, 0 destroyed."
	}
	c.JSON(http.StatusOK, logs)
}
