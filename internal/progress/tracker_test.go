package progress

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deployctl/internal/config"
	"deployctl/internal/deploy"
)

func states(t *Tracker) []StepState {
	var out []StepState
	for _, s := range t.Steps() {
		out = append(out, s.State)
	}
	return out
}

func TestTracker_SimulatedSequence(t *testing.T) {
	tr := NewTracker(1, 42)
	assert.Equal(t, PhaseIdle, tr.Phase())
	assert.Equal(t, []string{"Déploiement en cours..."}, tr.Log())

	tr.Start()
	assert.Equal(t, 0, tr.Active())

	for i := 1; i < len(DefaultSteps); i++ {
		done := tr.Advance()
		assert.Equal(t, i, tr.Active())
		assert.Equal(t, StepCompleted, tr.Steps()[i-1].State, "step %d completed before %d activates", i-1, i)
		assert.Equal(t, i == len(DefaultSteps)-1, done)
	}
	assert.Equal(t, PhaseFinished, tr.Phase())
	assert.Equal(t, []string{
		"Déploiement en cours...",
		"✓ Initialisation",
		"✓ Création infrastructure Terraform",
		"✓ Création VM/LXC",
		"✓ Installation framework",
		"✓ Déploiement application",
		"✓ Terminé",
	}, tr.Log())

	tr.Close()
	assert.Equal(t, PhaseClosed, tr.Phase())
	for _, s := range states(tr) {
		assert.Equal(t, StepCompleted, s)
	}
}

func TestTracker_AdvanceAfterFinishIsNoop(t *testing.T) {
	tr := NewTracker(1, 1)
	tr.Start()
	for !tr.Advance() {
	}
	logLen := len(tr.Log())
	assert.True(t, tr.Advance())
	assert.Len(t, tr.Log(), logLen)
}

func TestSimulatedTimeline(t *testing.T) {
	tl := SimulatedTimeline(len(DefaultSteps), 2*time.Second, 2*time.Second)
	assert.Equal(t, []time.Duration{0, 2 * time.Second, 4 * time.Second, 6 * time.Second, 8 * time.Second, 10 * time.Second}, tl.Activations)
	assert.Equal(t, 12*time.Second, tl.Close)
}

func TestTracker_ObserveStatus(t *testing.T) {
	tr := NewTracker(1, 7)

	assert.False(t, tr.Observe(deploy.Deployment{Status: deploy.StatusPending}))
	assert.Equal(t, 0, tr.Active())

	for i := 0; i < 10; i++ {
		assert.False(t, tr.Observe(deploy.Deployment{Status: deploy.StatusCreating}))
	}
	assert.Equal(t, lastCreatingStep, tr.Active(), "creating never reaches the final step")

	assert.True(t, tr.Observe(deploy.Deployment{Status: deploy.StatusRunning}))
	assert.Equal(t, PhaseFinished, tr.Phase())
	assert.Equal(t, len(DefaultSteps)-1, tr.Active())
}

func TestTracker_ObserveFailure(t *testing.T) {
	tr := NewTracker(1, 7)
	tr.Observe(deploy.Deployment{Status: deploy.StatusCreating})
	tr.Observe(deploy.Deployment{Status: deploy.StatusCreating})

	assert.True(t, tr.Observe(deploy.Deployment{Status: deploy.StatusFailed, ErrorMessage: "terraform apply failed"}))
	assert.Equal(t, PhaseFailed, tr.Phase())
	assert.Equal(t, StepFailed, tr.Steps()[2].State)
	assert.Equal(t, "✗ terraform apply failed", tr.Log()[len(tr.Log())-1])

	// Without a message the French status label is logged.
	tr2 := NewTracker(2, 8)
	tr2.Observe(deploy.Deployment{Status: deploy.StatusStopped})
	assert.Equal(t, "✗ Arrêté", tr2.Log()[len(tr2.Log())-1])
}

// virtualClock fires every wait immediately and records the elapsed virtual time.
type virtualClock struct {
	now time.Duration
}

func (c *virtualClock) after(d time.Duration) <-chan time.Time {
	c.now += d
	ch := make(chan time.Time, 1)
	ch <- time.Time{}
	return ch
}

func TestRunner_SimulatedTimeline(t *testing.T) {
	clock := &virtualClock{}
	var activations []time.Duration
	var closedAt time.Duration
	lastActivated := 0

	r := &Runner{
		Mode:         config.ProgressModeSimulated,
		StepInterval: 2 * time.Second,
		CloseDelay:   2 * time.Second,
		After:        clock.after,
		Fetch: func(ctx context.Context, id int) (deploy.Deployment, error) {
			t.Fatal("simulated mode never polls the backend")
			return deploy.Deployment{}, nil
		},
		OnUpdate: func(tr *Tracker) {
			if tr.Activated() > lastActivated {
				activations = append(activations, clock.now)
				lastActivated = tr.Activated()
			}
			if tr.Phase() == PhaseClosed {
				closedAt = clock.now
			}
		},
	}

	require.NoError(t, r.Run(context.Background(), NewTracker(1, 1)))
	assert.Equal(t, SimulatedTimeline(6, 2*time.Second, 2*time.Second).Activations, activations)
	assert.Equal(t, 12*time.Second, closedAt)
}

func TestRunner_StatusModeFailure(t *testing.T) {
	clock := &virtualClock{}
	statuses := []deploy.Status{deploy.StatusPending, deploy.StatusCreating, deploy.StatusFailed}
	polls := 0

	r := &Runner{
		Mode:         config.ProgressModeStatus,
		StepInterval: time.Second,
		CloseDelay:   time.Second,
		After:        clock.after,
		Fetch: func(ctx context.Context, id int) (deploy.Deployment, error) {
			assert.Equal(t, 5, id)
			s := statuses[polls]
			polls++
			return deploy.Deployment{ID: id, Status: s, ErrorMessage: "boom"}, nil
		},
	}

	tr := NewTracker(1, 5)
	err := r.Run(context.Background(), tr)
	assert.ErrorIs(t, err, ErrDeploymentFailed)
	assert.Equal(t, 3, polls)
	assert.Equal(t, PhaseFailed, tr.Phase())
}

func TestRunner_StatusModeSkipsPollErrors(t *testing.T) {
	clock := &virtualClock{}
	calls := 0
	r := &Runner{
		Mode:         config.ProgressModeStatus,
		StepInterval: time.Second,
		CloseDelay:   time.Second,
		After:        clock.after,
		Fetch: func(ctx context.Context, id int) (deploy.Deployment, error) {
			calls++
			if calls == 1 {
				return deploy.Deployment{}, errors.New("timeout")
			}
			return deploy.Deployment{ID: id, Status: deploy.StatusRunning}, nil
		},
	}

	tr := NewTracker(1, 5)
	require.NoError(t, r.Run(context.Background(), tr))
	assert.Equal(t, PhaseClosed, tr.Phase())
	assert.Equal(t, 2, calls)
}

func TestRunner_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := &Runner{Mode: config.ProgressModeSimulated, StepInterval: time.Hour, CloseDelay: time.Hour}
	err := r.Run(ctx, NewTracker(1, 1))
	assert.ErrorIs(t, err, context.Canceled)
}
