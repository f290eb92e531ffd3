package routingconfig

import (
	"context"
	"errors"

	"callflow-studio/internal/callrouting"
)

// UpdateFunc computes the next snapshot from the stored one.
// found is false when the workspace has no snapshot yet.
type UpdateFunc func(current callrouting.Snapshot, found bool) (callrouting.Snapshot, error)

// Repository holds the authoritative snapshot per workspace.
//
// Update must run read-modify-write atomically per workspace, so concurrent
// requests for one workspace apply one after another.
type Repository interface {
	Get(ctx context.Context, workspaceID string) (callrouting.Snapshot, bool, error)
	Update(ctx context.Context, workspaceID string, fn UpdateFunc) (callrouting.Snapshot, error)
}

var ErrWorkspaceRequired = errors.New("routingconfig: workspace_id required")
