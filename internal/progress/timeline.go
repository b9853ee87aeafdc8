package progress

import "time"

// Timeline lists when the simulated run activates each step and closes the modal,
// as offsets from the moment it starts.
type Timeline struct {
	Activations []time.Duration
	Close       time.Duration
}

// SimulatedTimeline computes the schedule of a simulated run: the first step
// activates immediately, the others every stepInterval, and the modal closes
// closeDelay after the last activation.
func SimulatedTimeline(steps int, stepInterval, closeDelay time.Duration) Timeline {
	tl := Timeline{Activations: make([]time.Duration, steps)}
	for i := range tl.Activations {
		tl.Activations[i] = time.Duration(i) * stepInterval
	}
	if steps > 0 {
		tl.Close = tl.Activations[steps-1] + closeDelay
	}
	return tl
}
