package store

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deployctl/internal/deploy"
)

func list(ids ...int) []deploy.Deployment {
	out := make([]deploy.Deployment, 0, len(ids))
	for _, id := range ids {
		out = append(out, deploy.Deployment{ID: id})
	}
	return out
}

func ids(ds []deploy.Deployment) []int {
	out := make([]int, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.ID)
	}
	return out
}

func TestCommit_StaleResponseDiscarded(t *testing.T) {
	s := New()
	older := s.Begin()
	newer := s.Begin()

	require.True(t, s.Commit(newer, list(1, 2)))
	assert.False(t, s.Commit(older, list(9)), "older fetch resolved late")
	assert.Equal(t, []int{1, 2}, ids(s.Snapshot()))
}

func TestCommit_InOrder(t *testing.T) {
	s := New()
	first := s.Begin()
	require.True(t, s.Commit(first, list(1)))
	second := s.Begin()
	require.True(t, s.Commit(second, list(1, 2)))
	assert.Equal(t, []int{1, 2}, ids(s.Snapshot()))
	assert.True(t, s.Loaded())
	assert.False(t, s.UpdatedAt().IsZero())
}

func TestFail_KeepsStaleCache(t *testing.T) {
	s := New()
	require.True(t, s.Commit(s.Begin(), list(4)))

	boom := errors.New("connection refused")
	require.True(t, s.Fail(s.Begin(), boom))
	assert.Equal(t, boom, s.Err())
	assert.Equal(t, []int{4}, ids(s.Snapshot()))

	require.True(t, s.Commit(s.Begin(), list(4, 5)))
	assert.NoError(t, s.Err())
}

func TestFail_StaleTokenIgnored(t *testing.T) {
	s := New()
	older := s.Begin()
	require.True(t, s.Commit(s.Begin(), list(1)))
	assert.False(t, s.Fail(older, errors.New("late failure")))
	assert.NoError(t, s.Err())
}

func TestSnapshotIsACopy(t *testing.T) {
	s := New()
	require.True(t, s.Commit(s.Begin(), list(1)))
	snap := s.Snapshot()
	snap[0].ID = 42

	d, ok := s.Find(1)
	require.True(t, ok)
	assert.Equal(t, 1, d.ID)
	_, ok = s.Find(42)
	assert.False(t, ok)
}

func TestConcurrentCommitsKeepNewest(t *testing.T) {
	s := New()
	tokens := make([]Token, 50)
	for i := range tokens {
		tokens[i] = s.Begin()
	}

	var wg sync.WaitGroup
	for i, tok := range tokens {
		wg.Add(1)
		go func(i int, tok Token) {
			defer wg.Done()
			s.Commit(tok, list(i))
		}(i, tok)
	}
	wg.Wait()

	assert.Equal(t, []int{49}, ids(s.Snapshot()))
}
