// Package progress models the deployment progress modal: six fixed steps that are
// activated one after the other, either on a wall-clock timer (simulated mode) or
// from the deployment's real status (status mode).
package progress

import (
	"fmt"

	"deployctl/internal/deploy"
)

// StepState is the display state of one step.
type StepState int

const (
	StepPending StepState = iota
	StepActive
	StepCompleted
	StepFailed
)

func (s StepState) String() string {
	switch s {
	case StepActive:
		return "active"
	case StepCompleted:
		return "completed"
	case StepFailed:
		return "failed"
	default:
		return "pending"
	}
}

// Step is one stage of the sequence.
type Step struct {
	Key   string
	Label string
	State StepState
}

// DefaultSteps is the fixed sequence shown for every deployment.
var DefaultSteps = []Step{
	{Key: "init", Label: "Initialisation"},
	{Key: "terraform", Label: "Création infrastructure Terraform"},
	{Key: "vm", Label: "Création VM/LXC"},
	{Key: "install", Label: "Installation framework"},
	{Key: "deploy", Label: "Déploiement application"},
	{Key: "done", Label: "Terminé"},
}

// lastCreatingStep is the furthest step a deployment still in "creating" may reach.
const lastCreatingStep = 4

// Phase is where the run is in its lifecycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseFinished // every step activated, close pending
	PhaseFailed
	PhaseClosed
)

func (p Phase) String() string {
	return [...]string{"idle", "running", "finished", "failed", "closed"}[p]
}

// Tracker is the state of one progress run. It holds no timers.
type Tracker struct {
	RunID        uint64
	DeploymentID int

	steps []Step
	index int // next step to activate
	log   []string
	phase Phase
}

// NewTracker prepares a run for deploymentID.
func NewTracker(runID uint64, deploymentID int) *Tracker {
	steps := make([]Step, len(DefaultSteps))
	copy(steps, DefaultSteps)
	return &Tracker{
		RunID:        runID,
		DeploymentID: deploymentID,
		steps:        steps,
		log:          []string{deploy.MsgProgressRunning},
	}
}

// Start activates the first step.
func (t *Tracker) Start() {
	if t.phase != PhaseIdle {
		return
	}
	t.phase = PhaseRunning
	t.Advance()
}

// Advance activates the next step, completing the previous one, and logs it.
// It returns true once every step has been activated.
func (t *Tracker) Advance() bool {
	if t.phase != PhaseRunning {
		return t.phase == PhaseFinished
	}
	if t.index < len(t.steps) {
		if t.index > 0 {
			t.steps[t.index-1].State = StepCompleted
		}
		t.steps[t.index].State = StepActive
		t.log = append(t.log, "✓ "+t.steps[t.index].Label)
		t.index++
	}
	if t.index >= len(t.steps) {
		t.phase = PhaseFinished
		return true
	}
	return false
}

// Observe drives the run from the real deployment status. It returns true when the
// run reached a terminal phase (finished or failed).
func (t *Tracker) Observe(d deploy.Deployment) bool {
	if t.phase == PhaseIdle {
		t.Start()
	}
	if t.phase != PhaseRunning {
		return t.phase == PhaseFinished || t.phase == PhaseFailed
	}

	switch d.Status {
	case deploy.StatusPending:
		// Stay on the first step.
	case deploy.StatusCreating:
		if t.index <= lastCreatingStep {
			t.Advance()
		}
	case deploy.StatusRunning:
		for !t.Advance() {
		}
		return true
	case deploy.StatusFailed, deploy.StatusStopped, deploy.StatusDeleted:
		msg := d.ErrorMessage
		if msg == "" {
			msg = deploy.StatusLabel(d.Status)
		}
		t.Fail(msg)
		return true
	}
	return false
}

// Fail marks the active step failed and logs msg. The run stays visible until closed.
func (t *Tracker) Fail(msg string) {
	if t.phase != PhaseRunning && t.phase != PhaseFinished {
		return
	}
	if i := t.index - 1; i >= 0 {
		t.steps[i].State = StepFailed
	}
	t.log = append(t.log, "✗ "+msg)
	t.phase = PhaseFailed
}

// Close ends the run. A finished run has its last step marked completed.
func (t *Tracker) Close() {
	if t.phase == PhaseFinished {
		t.steps[len(t.steps)-1].State = StepCompleted
	}
	t.phase = PhaseClosed
}

// Steps returns a copy of the steps.
func (t *Tracker) Steps() []Step {
	return append([]Step(nil), t.steps...)
}

// Log returns the log lines shown under the steps.
func (t *Tracker) Log() []string {
	return append([]string(nil), t.log...)
}

// Phase returns the current phase.
func (t *Tracker) Phase() Phase {
	return t.phase
}

// Active returns the index of the active step, or -1.
func (t *Tracker) Active() int {
	for i, s := range t.steps {
		if s.State == StepActive {
			return i
		}
	}
	return -1
}

// Activated is the number of steps activated so far.
func (t *Tracker) Activated() int {
	return t.index
}

func (t *Tracker) String() string {
	return fmt.Sprintf("run %d deployment %d: %s %d/%d", t.RunID, t.DeploymentID, t.phase, t.index, len(t.steps))
}
