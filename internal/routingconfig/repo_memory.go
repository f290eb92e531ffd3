package routingconfig

import (
	"context"
	"sync"

	"callflow-studio/internal/callrouting"
)

// MemoryRepo keeps snapshots in process memory. Used for local runs and tests.
type MemoryRepo struct {
	mu        sync.Mutex
	snapshots map[string]callrouting.Snapshot
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{snapshots: make(map[string]callrouting.Snapshot)}
}

func (r *MemoryRepo) Get(ctx context.Context, workspaceID string) (callrouting.Snapshot, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.snapshots[workspaceID]
	return s, ok, nil
}

// Update holds the repo lock for the whole read-modify-write; fn is pure and short.
func (r *MemoryRepo) Update(ctx context.Context, workspaceID string, fn UpdateFunc) (callrouting.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return callrouting.Snapshot{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, found := r.snapshots[workspaceID]
	next, err := fn(cur, found)
	if err != nil {
		return callrouting.Snapshot{}, err
	}
	r.snapshots[workspaceID] = next
	return next, nil
}
