package deploy

import "sort"

// SortNewestFirst orders deployments by created_at descending, then by id descending.
func SortNewestFirst(deployments []Deployment) {
	sort.SliceStable(deployments, func(i, j int) bool {
		ti, erri := ParseTimestamp(deployments[i].CreatedAt)
		tj, errj := ParseTimestamp(deployments[j].CreatedAt)
		if erri == nil && errj == nil && !ti.Equal(tj) {
			return ti.After(tj)
		}
		return deployments[i].ID > deployments[j].ID
	})
}

// Count tallies deployments the way GET /api/status does.
func Count(deployments []Deployment) DeploymentCounts {
	c := DeploymentCounts{Total: len(deployments)}
	for _, d := range deployments {
		switch d.Status {
		case StatusRunning:
			c.Running++
		case StatusFailed:
			c.Failed++
		case StatusPending:
			c.Pending++
		}
	}
	return c
}
