package supervisor

import "github.com/fizzAI/fauxtp/actor"

// StartFunc starts one child, linked to sup's own scope so that cancelling
// sup transitively cancels every descendant. group is the supervisor's own
// [actor.Group]; onExit must be wired to the new child's link so the
// supervisor learns of its exit — implementations built on [genserver]
// satisfy this by calling genserver.StartLinkedTo(sup, group, ..., onExit).
type StartFunc func(sup actor.PID, group *actor.Group, onExit func(actor.PID, error)) (actor.PID, actor.CancelScope, error)

// ChildSpecOpt configures a [ChildSpec] at construction time.
type ChildSpecOpt func(ChildSpec) ChildSpec

// SetRestart overrides the default [Permanent] restart policy.
func SetRestart(r Restart) ChildSpecOpt {
	return func(cs ChildSpec) ChildSpec {
		cs.Restart = r
		return cs
	}
}

// SetShutdown overrides the default 5-second graceful shutdown.
func SetShutdown(s ShutdownOpt) ChildSpecOpt {
	return func(cs ChildSpec) ChildSpec {
		cs.Shutdown = s
		return cs
	}
}

// SetChildType overrides the default [WorkerChild] type.
func SetChildType(t ChildType) ChildSpecOpt {
	return func(cs ChildSpec) ChildSpec {
		cs.Type = t
		return cs
	}
}

// ChildSpec describes one supervised child: how to start it, and how it
// should be treated when it exits.
type ChildSpec struct {
	// ID identifies this child within its supervisor. Must be unique among
	// a supervisor's children.
	ID    string
	Start StartFunc

	Restart  Restart
	Shutdown ShutdownOpt
	Type     ChildType

	pid        actor.PID
	scope      actor.CancelScope
	ignored    bool
	terminated bool
}

// NewChildSpec builds a ChildSpec with the spec's defaults — Permanent
// restart, a 5-second graceful shutdown, WorkerChild type — overridden by
// any opts given.
func NewChildSpec(id string, start StartFunc, opts ...ChildSpecOpt) ChildSpec {
	cs := ChildSpec{
		ID:       id,
		Start:    start,
		Restart:  Permanent,
		Shutdown: ShutdownOpt{Timeout: 5000},
		Type:     WorkerChild,
	}
	for _, opt := range opts {
		cs = opt(cs)
	}
	return cs
}
