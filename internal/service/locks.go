package service

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/semaphore"
)

// ProjectLocks serializes writes per project. Distributions, investment transitions
// and revenue recording all mutate the same project row and take the same lock.
type ProjectLocks struct {
	mu   sync.Mutex
	sems map[string]*semaphore.Weighted
}

// NewProjectLocks creates an empty lock table.
func NewProjectLocks() *ProjectLocks {
	return &ProjectLocks{sems: make(map[string]*semaphore.Weighted)}
}

// Acquire blocks until the project's lock is held or ctx is done.
// The returned func releases the lock and must be called exactly once.
func (l *ProjectLocks) Acquire(ctx context.Context, projectID string) (func(), error) {
	l.mu.Lock()
	sem, ok := l.sems[projectID]
	if !ok {
		sem = semaphore.NewWeighted(1)
		l.sems[projectID] = sem
	}
	l.mu.Unlock()

	if err := sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("failed to lock project %s: %w", projectID, err)
	}
	return func() { sem.Release(1) }, nil
}
