package audit

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Repository is the persistence contract for audit events.
// It is append-only: no Update/Delete methods exist.
type Repository interface {
	Append(ctx context.Context, e Event) error
	// List returns the newest events first, at most limit.
	List(ctx context.Context, workspaceID string, limit int) ([]Event, error)
}

// Service records internal audit information.
// Callers treat Append as best-effort.
type Service struct {
	repo  Repository
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

var ErrInvalidEvent = errors.New("audit: invalid event")

const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

func (s *Service) Append(ctx context.Context, e Event) error {
	if s.repo == nil {
		return errors.New("audit: repository not configured")
	}
	if e.WorkspaceID == "" || e.Type == "" {
		return ErrInvalidEvent
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.clock().UTC()
	}
	return s.repo.Append(ctx, e)
}

// Recent lists the newest events of a workspace, clamping limit to [1, MaxListLimit].
func (s *Service) Recent(ctx context.Context, workspaceID string, limit int) ([]Event, error) {
	if s.repo == nil {
		return nil, errors.New("audit: repository not configured")
	}
	if workspaceID == "" {
		return nil, ErrInvalidEvent
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	return s.repo.List(ctx, workspaceID, limit)
}

// LogChange records one configuration change by actor.
func (s *Service) LogChange(ctx context.Context, workspaceID string, actor Actor, typ EventType, operation, before, after, metadata string) error {
	return s.Append(ctx, Event{
		WorkspaceID:   workspaceID,
		Type:          typ,
		ActorUserID:   actor.UserID,
		ActorRole:     actor.Role,
		IPAddress:     actor.IPAddress,
		Operation:     operation,
		RoutingBefore: before,
		RoutingAfter:  after,
		Message:       messageFor(typ, operation),
		Metadata:      metadata,
	})
}

func messageFor(typ EventType, operation string) string {
	switch typ {
	case EventTypeOperation:
		return "routing operation " + operation + " applied"
	case EventTypeReplaced:
		return "routing configuration replaced"
	case EventTypeReset:
		return "routing configuration reset"
	default:
		return ""
	}
}
