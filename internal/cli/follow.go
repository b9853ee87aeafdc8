package cli

import (
	"context"
	"fmt"
	"io"

	"deployctl/internal/config"
	"deployctl/internal/deploy"
	"deployctl/internal/progress"

	"github.com/jedib0t/go-pretty/v6/text"
)

// Follower prints a progress run step by step for `deploy --follow`.
type Follower struct {
	Out    io.Writer
	Runner *progress.Runner

	printedLog int
}

// NewFollower wires a Runner from the progress settings. fetch is only used in
// status mode.
func NewFollower(out io.Writer, cfg config.ProgressConfig, fetch progress.FetchFunc) *Follower {
	f := &Follower{Out: out}
	f.Runner = &progress.Runner{
		Mode:         cfg.Mode,
		StepInterval: cfg.StepInterval,
		CloseDelay:   cfg.CloseDelay,
		Fetch:        fetch,
	}
	return f
}

// Follow blocks until the run for deploymentID closes or fails.
func (f *Follower) Follow(ctx context.Context, deploymentID int) error {
	t := progress.NewTracker(1, deploymentID)
	f.Runner.OnUpdate = f.print
	err := f.Runner.Run(ctx, t)
	if err == progress.ErrDeploymentFailed {
		return fmt.Errorf("deployment %d failed", deploymentID)
	}
	return err
}

// print writes the log lines added since the previous update, then a final
// line once the run closed.
func (f *Follower) print(t *progress.Tracker) {
	log := t.Log()
	for _, line := range log[min(f.printedLog, len(log)):] {
		fmt.Fprintln(f.Out, line)
	}
	f.printedLog = len(log)

	if t.Phase() == progress.PhaseClosed {
		fmt.Fprintf(f.Out, "%s %s\n", text.FgGreen.Sprint("✓"), deploy.MsgProgressDone)
	}
}
