package progress

import (
	"context"
	"errors"
	"time"

	"deployctl/internal/config"
	"deployctl/internal/deploy"
	"deployctl/pkg/logging"
)

// ErrDeploymentFailed is returned by Run when the status driver saw a terminal failure.
var ErrDeploymentFailed = errors.New("deployment failed")

// FetchFunc reads the current state of a deployment.
type FetchFunc func(ctx context.Context, id int) (deploy.Deployment, error)

// Runner drives a Tracker outside the TUI, e.g. for `deploy --follow`.
type Runner struct {
	Mode         config.ProgressMode
	StepInterval time.Duration
	CloseDelay   time.Duration
	Fetch        FetchFunc
	OnUpdate     func(t *Tracker)

	// After defaults to time.After; tests swap it for a virtual clock.
	After func(d time.Duration) <-chan time.Time
}

// Run blocks until the tracker closes, the deployment fails or ctx is done.
func (r *Runner) Run(ctx context.Context, t *Tracker) error {
	after := r.After
	if after == nil {
		after = time.After
	}
	wait := func(d time.Duration) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-after(d):
			return nil
		}
	}
	notify := func() {
		if r.OnUpdate != nil {
			r.OnUpdate(t)
		}
	}

	t.Start()
	notify()

	for {
		if t.Phase() == PhaseFinished {
			if err := wait(r.CloseDelay); err != nil {
				return err
			}
			t.Close()
			notify()
			return nil
		}
		if t.Phase() == PhaseFailed {
			return ErrDeploymentFailed
		}

		if err := wait(r.StepInterval); err != nil {
			return err
		}

		if r.Mode == config.ProgressModeStatus && r.Fetch != nil {
			d, err := r.Fetch(ctx, t.DeploymentID)
			if err != nil {
				logging.Warn("Progress", "status poll for deployment %d failed: %v", t.DeploymentID, err)
				continue
			}
			t.Observe(d)
		} else {
			t.Advance()
		}
		notify()
	}
}
