// Package store keeps the client-side copy of the deployment list.
//
// Every fetch takes a token from Begin before it is issued. Commit only accepts a
// result whose token is newer than the last committed one, so a slow response
// can never overwrite the result of a later request.
package store

import (
	"sync"
	"time"

	"deployctl/internal/deploy"
)

// Token identifies one fetch of the deployment list.
type Token uint64

// DeploymentStore is safe for concurrent use.
type DeploymentStore struct {
	mu          sync.RWMutex
	next        Token
	committed   Token
	deployments []deploy.Deployment
	updatedAt   time.Time
	lastErr     error
	loaded      bool
}

// New returns an empty store.
func New() *DeploymentStore {
	return &DeploymentStore{}
}

// Begin reserves the token for a fetch about to be issued.
func (s *DeploymentStore) Begin() Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	return s.next
}

// Commit replaces the cached list with deployments if token is the newest seen so far.
// It returns false and leaves the cache untouched for a stale token.
func (s *DeploymentStore) Commit(token Token, deployments []deploy.Deployment) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token <= s.committed {
		return false
	}
	s.committed = token
	s.deployments = append([]deploy.Deployment(nil), deployments...)
	s.updatedAt = time.Now()
	s.lastErr = nil
	s.loaded = true
	return true
}

// Fail records a failed fetch. The cached list is kept as it was.
// It returns false for a stale token.
func (s *DeploymentStore) Fail(token Token, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token <= s.committed {
		return false
	}
	s.committed = token
	s.lastErr = err
	return true
}

// Snapshot returns a copy of the cached list.
func (s *DeploymentStore) Snapshot() []deploy.Deployment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]deploy.Deployment(nil), s.deployments...)
}

// Find looks up a cached deployment by id.
func (s *DeploymentStore) Find(id int) (deploy.Deployment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.deployments {
		if d.ID == id {
			return d, true
		}
	}
	return deploy.Deployment{}, false
}

// Err is the error of the last accepted fetch, nil if it succeeded.
func (s *DeploymentStore) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Loaded reports whether any fetch has succeeded yet.
func (s *DeploymentStore) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// UpdatedAt is the time of the last successful commit.
func (s *DeploymentStore) UpdatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updatedAt
}
