package routingconfig

import (
	"context"
	"encoding/json"

	"callflow-studio/internal/audit"
	"callflow-studio/internal/callrouting"
	"callflow-studio/internal/diagram"
	"callflow-studio/pkg/logger"
	"callflow-studio/pkg/metrics"
)

// View is what the client renders after every action.
type View struct {
	WorkspaceID string               `json:"workspace_id"`
	Snapshot    callrouting.Snapshot `json:"configuration"`
	RoutingType callrouting.ModeKind `json:"routing_type"`
	Graph       diagram.Graph        `json:"diagram"`
	Bounds      diagram.Bounds       `json:"bounds"`
}

// Service owns the authoritative configuration of each workspace.
//
// Audit and Metrics are optional.
type Service struct {
	Repo     Repository
	Defaults callrouting.Defaults
	Layout   diagram.Layout

	Audit   *audit.Service
	Metrics *metrics.Metrics
}

func NewService(repo Repository, defaults callrouting.Defaults, layout diagram.Layout) *Service {
	return &Service{Repo: repo, Defaults: defaults, Layout: layout}
}

// Current returns the stored configuration, or the default one when the
// workspace has never been edited.
func (s *Service) Current(ctx context.Context, workspaceID string) (View, error) {
	if workspaceID == "" {
		return View{}, ErrWorkspaceRequired
	}
	snap, found, err := s.Repo.Get(ctx, workspaceID)
	if err != nil {
		return View{}, err
	}
	if !found {
		snap = callrouting.DefaultSnapshot(s.Defaults)
	}
	return s.view(workspaceID, snap)
}

// unknownOperation labels every unsupported operation name in metrics.
const unknownOperation = "unknown"

func (s *Service) Apply(ctx context.Context, workspaceID string, actor audit.Actor, op callrouting.Operation) (View, error) {
	name := string(op)
	if !op.Known() {
		name = unknownOperation
	}
	return s.change(ctx, workspaceID, actor, audit.EventTypeOperation, name, func(c callrouting.Configuration) (callrouting.Configuration, error) {
		return c.Apply(op)
	})
}

// Select switches to kind, or removes routing for ModeNone.
func (s *Service) Select(ctx context.Context, workspaceID string, actor audit.Actor, kind callrouting.ModeKind) (View, error) {
	return s.change(ctx, workspaceID, actor, audit.EventTypeOperation, "select-"+string(kind), func(c callrouting.Configuration) (callrouting.Configuration, error) {
		return c.SelectRouting(kind), nil
	})
}

// Replace commits snap wholesale after validating it.
func (s *Service) Replace(ctx context.Context, workspaceID string, actor audit.Actor, snap callrouting.Snapshot) (View, error) {
	next, err := callrouting.FromSnapshot(snap, s.Defaults)
	if err != nil {
		s.Metrics.ObserveOperation("replace", err)
		return View{}, err
	}
	return s.change(ctx, workspaceID, actor, audit.EventTypeReplaced, "replace", func(callrouting.Configuration) (callrouting.Configuration, error) {
		return next, nil
	})
}

func (s *Service) Reset(ctx context.Context, workspaceID string, actor audit.Actor) (View, error) {
	return s.change(ctx, workspaceID, actor, audit.EventTypeReset, "reset", func(callrouting.Configuration) (callrouting.Configuration, error) {
		return callrouting.New(s.Defaults), nil
	})
}

// History lists recent changes, newest first. Without an audit service it is empty.
func (s *Service) History(ctx context.Context, workspaceID string, limit int) ([]audit.Event, error) {
	if workspaceID == "" {
		return nil, ErrWorkspaceRequired
	}
	if s.Audit == nil {
		return []audit.Event{}, nil
	}
	return s.Audit.Recent(ctx, workspaceID, limit)
}

func (s *Service) change(
	ctx context.Context,
	workspaceID string,
	actor audit.Actor,
	typ audit.EventType,
	name string,
	fn func(callrouting.Configuration) (callrouting.Configuration, error),
) (View, error) {
	if workspaceID == "" {
		return View{}, ErrWorkspaceRequired
	}

	var before callrouting.ModeKind
	snap, err := s.Repo.Update(ctx, workspaceID, func(cur callrouting.Snapshot, found bool) (callrouting.Snapshot, error) {
		if !found {
			cur = callrouting.DefaultSnapshot(s.Defaults)
		}
		cfg, err := callrouting.FromSnapshot(cur, s.Defaults)
		if err != nil {
			return callrouting.Snapshot{}, err
		}
		before = cfg.RoutingType()

		next, err := fn(cfg)
		if err != nil {
			return callrouting.Snapshot{}, err
		}
		return next.Snapshot(), nil
	})
	s.Metrics.ObserveOperation(name, err)
	if err != nil {
		return View{}, err
	}

	v, err := s.view(workspaceID, snap)
	if err != nil {
		return View{}, err
	}
	s.record(ctx, workspaceID, actor, typ, name, before, v)
	return v, nil
}

func (s *Service) record(ctx context.Context, workspaceID string, actor audit.Actor, typ audit.EventType, name string, before callrouting.ModeKind, v View) {
	if s.Audit == nil {
		return
	}
	operation := name
	if typ != audit.EventTypeOperation {
		operation = ""
	}
	meta, _ := json.Marshal(v.Snapshot)
	if err := s.Audit.LogChange(ctx, workspaceID, actor, typ, operation, string(before), string(v.RoutingType), string(meta)); err != nil {
		logger.From(ctx).Warn("audit append failed",
			"workspace_id", workspaceID,
			"operation", name,
			"error", err,
		)
	}
}

func (s *Service) view(workspaceID string, snap callrouting.Snapshot) (View, error) {
	cfg, err := callrouting.FromSnapshot(snap, s.Defaults)
	if err != nil {
		return View{}, err
	}
	g := s.Layout.Build(&cfg)
	s.Metrics.ObserveLayout(len(g.Nodes))
	return View{
		WorkspaceID: workspaceID,
		Snapshot:    cfg.Snapshot(),
		RoutingType: cfg.RoutingType(),
		Graph:       g,
		Bounds:      g.Bounds(),
	}, nil
}
