package audit

import "time"

// Event is an immutable, append-only record of a routing configuration change.
//
// Invariants:
// - Events are never updated or deleted.
// - workspace_id is required for tenancy isolation.
// - Audit failures never block a configuration change.
type Event struct {
	ID          string    `json:"id" db:"id"`
	WorkspaceID string    `json:"workspace_id" db:"workspace_id"`
	Type        EventType `json:"type" db:"type"`

	ActorUserID string `json:"actor_user_id,omitempty" db:"actor_user_id"`
	ActorRole   string `json:"actor_role,omitempty" db:"actor_role"`
	IPAddress   string `json:"ip_address,omitempty" db:"ip_address"`

	// Operation is the form action name for EventTypeOperation.
	Operation string `json:"operation,omitempty" db:"operation"`

	// RoutingBefore and RoutingAfter are routing mode names.
	RoutingBefore string `json:"routing_before,omitempty" db:"routing_before"`
	RoutingAfter  string `json:"routing_after,omitempty" db:"routing_after"`

	Message string `json:"message,omitempty" db:"message"`

	// Metadata is optional JSON, typically the resulting snapshot.
	Metadata string `json:"metadata,omitempty" db:"metadata"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type EventType string

const (
	EventTypeOperation EventType = "routing_operation"
	EventTypeReplaced  EventType = "routing_replaced"
	EventTypeReset     EventType = "routing_reset"
)

// Actor identifies who caused a change.
type Actor struct {
	UserID    string
	Role      string
	IPAddress string
}
