package supervisor

import (
	"time"

	"github.com/fizzAI/fauxtp/actor"
	"github.com/fizzAI/fauxtp/actor/genserver"
	"github.com/fizzAI/fauxtp/actor/timeout"
	"github.com/fizzAI/fauxtp/actor/tuple"
)

type linkOpts struct {
	name actor.Name
}

// LinkOpts configures supervisor startup via [StartLink]/[StartDefaultLink].
type LinkOpts func(linkOpts) linkOpts

// SetName registers the supervisor under name so it can be addressed
// through [actor.WhereIs] instead of by PID.
func SetName(name actor.Name) LinkOpts {
	return func(o linkOpts) linkOpts {
		o.name = name
		return o
	}
}

// StartDefaultLink starts a supervisor over a static, compile-time-known
// child list — the common case when children don't depend on runtime args.
func StartDefaultLink(self actor.PID, group *actor.Group, children []ChildSpec, flags SupFlagsS, opts ...LinkOpts) (genserver.Handle, error) {
	return StartLink(self, group, defaultSup{children: children, supflags: flags}, nil, opts...)
}

// StartLink starts a supervisor whose children are decided by callback.Init
// from args, linked under self: cancelling self, or self exiting, tears
// down the supervisor and every descendant. A supervisor's own Init has no
// bounded timeout, since starting every child can legitimately take a
// while.
func StartLink(self actor.PID, group *actor.Group, callback Supervisor, args any, opts ...LinkOpts) (genserver.Handle, error) {
	o := linkOpts{}
	for _, fn := range opts {
		o = fn(o)
	}

	gsOpts := []genserver.StartOpt{genserver.SetStartTimeout(timeout.Infinity)}
	if o.name != "" {
		gsOpts = append(gsOpts, genserver.SetName(o.name))
	}

	sup := &SupervisorS{callback: callback}
	return genserver.StartLinkedTo[supervisorState](self, group, sup, args, nil, gsOpts...)
}

// StartChild starts and adds a new child to a running supervisor, failing
// with [ErrAlreadyPresent] or [AlreadyStartedError] if spec.ID is already
// in use.
func StartChild(self actor.PID, sup actor.Dest, spec ChildSpec, callTimeout time.Duration) (actor.PID, error) {
	reply, err := genserver.Call(self, sup, tuple.New("$start_child", spec), callTimeout)
	if err != nil {
		return actor.UndefinedPID, err
	}
	result := reply.(startChildReply)
	return result.PID, result.Err
}

// TerminateChild stops the running child identified by id, respecting its
// [ChildSpec.Shutdown], without removing its spec — [RestartChild] can
// bring it back. Returns [ErrNotFound] if id isn't a known child.
func TerminateChild(self actor.PID, sup actor.Dest, id string, callTimeout time.Duration) error {
	reply, err := genserver.Call(self, sup, tuple.New("$terminate_child", id), callTimeout)
	if err != nil {
		return err
	}
	if reply == nil {
		return nil
	}
	return reply.(error)
}

// RestartChild restarts a previously terminated child by id. Returns
// [ErrNotFound] if id isn't known, or [ErrRunning] if it's still running.
func RestartChild(self actor.PID, sup actor.Dest, id string, callTimeout time.Duration) (actor.PID, error) {
	reply, err := genserver.Call(self, sup, tuple.New("$restart_child", id), callTimeout)
	if err != nil {
		return actor.UndefinedPID, err
	}
	result := reply.(startChildReply)
	return result.PID, result.Err
}

// DeleteChild removes a terminated child's spec entirely. Returns
// [ErrNotFound] if id isn't known, or [ErrRunning] if it's still running —
// terminate it first.
func DeleteChild(self actor.PID, sup actor.Dest, id string, callTimeout time.Duration) error {
	reply, err := genserver.Call(self, sup, tuple.New("$delete_child", id), callTimeout)
	if err != nil {
		return err
	}
	if reply == nil {
		return nil
	}
	return reply.(error)
}

// WhichChildren lists every child currently known to sup.
func WhichChildren(self actor.PID, sup actor.Dest, callTimeout time.Duration) ([]ChildInfo, error) {
	reply, err := genserver.Call(self, sup, "$which_children", callTimeout)
	if err != nil {
		return nil, err
	}
	return reply.([]ChildInfo), nil
}

// CountChildren summarizes sup's children by type and running status.
func CountChildren(self actor.PID, sup actor.Dest, callTimeout time.Duration) (ChildCount, error) {
	reply, err := genserver.Call(self, sup, "$count_children", callTimeout)
	if err != nil {
		return ChildCount{}, err
	}
	return reply.(ChildCount), nil
}
