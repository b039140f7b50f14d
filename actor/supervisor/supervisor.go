package supervisor

import (
	"errors"
	"fmt"
	"time"

	"github.com/uberbrodt/fungo/fun"

	"github.com/fizzAI/fauxtp/actor"
	"github.com/fizzAI/fauxtp/actor/exitreason"
	"github.com/fizzAI/fauxtp/actor/genserver"
	"github.com/fizzAI/fauxtp/actor/tuple"
)

var _ genserver.GenServer[supervisorState] = (*SupervisorS)(nil)

// SupFlagsS configures a supervisor's restart strategy and restart-rate
// limit. Build one with [NewSupFlags].
type SupFlagsS struct {
	// Strategy determines which children restart when one of them exits
	// and qualifies for restart. Default: [OneForOne].
	Strategy Strategy

	// MaxSeconds is the trailing window, in seconds, over which restarts
	// are counted against MaxRestarts. Default: 5.0.
	MaxSeconds float64

	// MaxRestarts is how many restarts may happen within MaxSeconds before
	// the supervisor gives up and exits with [MaxRestartsExceeded],
	// propagating the failure to its own supervisor. Default: 3.
	MaxRestarts int
}

// SupFlag configures [SupFlagsS] via [NewSupFlags].
type SupFlag func(SupFlagsS) SupFlagsS

func SetStrategy(strategy Strategy) SupFlag {
	return func(f SupFlagsS) SupFlagsS { f.Strategy = strategy; return f }
}

func SetMaxSeconds(seconds float64) SupFlag {
	return func(f SupFlagsS) SupFlagsS { f.MaxSeconds = seconds; return f }
}

func SetMaxRestarts(n int) SupFlag {
	return func(f SupFlagsS) SupFlagsS { f.MaxRestarts = n; return f }
}

// NewSupFlags builds [SupFlagsS] with the spec's defaults — OneForOne, 3
// restarts per 5 seconds — overridden by any opts given.
func NewSupFlags(opts ...SupFlag) SupFlagsS {
	f := SupFlagsS{Strategy: OneForOne, MaxSeconds: 5.0, MaxRestarts: 3}
	for _, opt := range opts {
		f = opt(f)
	}
	return f
}

// InitResult is returned by [Supervisor.Init] to configure the supervisor.
type InitResult struct {
	SupFlags   SupFlagsS
	ChildSpecs []ChildSpec

	// Ignore, if true, makes the supervisor exit with [exitreason.Ignore]
	// instead of starting.
	Ignore bool
}

// Supervisor is the callback a dynamic supervisor implements: Init decides
// the child set and restart strategy at startup time, from args.
type Supervisor interface {
	Init(self actor.PID, args any) InitResult
}

// SupervisorS drives a [Supervisor] callback as a [genserver.GenServer]: it
// starts children linked to its own scope, restarts them per Strategy and
// each child's Restart policy, and answers the dynamic child-management
// calls ($start_child, $terminate_child, $restart_child, $delete_child,
// $which_children, $count_children).
//
// Cancelling the supervisor's own scope cancels every child whose
// [StartFunc] links it under the supervisor's PID (for example with
// [genserver.StartLinkedTo] or [actor.SpawnLinkedTo]) rather than under the
// top-level group.
type SupervisorS struct {
	callback Supervisor
}

type startChildReply struct {
	PID actor.PID
	Err error
}

// Init satisfies [genserver.GenServer]. Calls the callback's Init, rejects
// duplicate child IDs, and starts every child in order; if any child fails
// to start, the children already started are stopped (in reverse order)
// and the supervisor itself fails to start.
func (s *SupervisorS) Init(self actor.PID, args any) (supervisorState, error) {
	result := s.callback.Init(self, args)
	if result.Ignore {
		return supervisorState{}, exitreason.Ignore
	}

	children, err := newChildSpecs(result.ChildSpecs)
	if err != nil {
		return supervisorState{}, exitreason.Shutdown(err)
	}

	flags := result.SupFlags
	if (flags == SupFlagsS{}) {
		flags = NewSupFlags()
	}

	state := supervisorState{
		self:     self,
		group:    actor.SelfGroup(self),
		args:     args,
		callback: s.callback,
		children: children,
		flags:    flags,
	}

	if startErr := s.startChildren(self, state.group, state.children); startErr != nil {
		actor.DebugPrintf("supervisor[%v]: error starting children: %v", self, startErr)
		if exitreason.IsShutdown(startErr) {
			return state, startErr
		}
		return state, exitreason.Shutdown(startErr)
	}

	actor.DebugPrintf("supervisor[%v]: done initializing: %+v", self, state.children.list())
	return state, nil
}

// HandleCall answers the dynamic child-management protocol. Requests that
// fail in an expected way (ErrNotFound, ErrAlreadyPresent, ...) are
// returned as the reply value rather than as err, so they never crash the
// supervisor; a request this supervisor doesn't recognize at all surfaces
// as an actor failure via err.
func (s *SupervisorS) HandleCall(self actor.PID, request any, ref actor.Ref, from actor.PID, state supervisorState) (any, supervisorState, error) {
	switch req := request.(type) {
	case tuple.Tuple:
		if len(req) < 1 {
			break
		}
		tag, _ := req[0].(string)
		switch tag {
		case "$start_child":
			spec := tuple.Get[ChildSpec](req, 1)
			pid, newState, err := s.handleStartChild(self, spec, state)
			return startChildReply{PID: pid, Err: err}, newState, nil
		case "$terminate_child":
			id := tuple.Get[string](req, 1)
			newState, err := s.handleTerminateChild(self, id, state)
			return err, newState, nil
		case "$restart_child":
			id := tuple.Get[string](req, 1)
			pid, newState, err := s.handleRestartChild(self, id, state)
			return startChildReply{PID: pid, Err: err}, newState, nil
		case "$delete_child":
			id := tuple.Get[string](req, 1)
			newState, err := s.handleDeleteChild(id, state)
			return err, newState, nil
		}
	case string:
		switch req {
		case "$which_children":
			return s.whichChildren(state), state, nil
		case "$count_children":
			return s.countChildren(state), state, nil
		}
	}
	return nil, state, exitreason.Exception(fmt.Errorf("supervisor: unmatched call: %#v", request))
}

// HandleCast satisfies [genserver.GenServer]; the supervisor protocol has
// no fire-and-forget operations, so any cast is logged and dropped.
func (s *SupervisorS) HandleCast(self actor.PID, request any, state supervisorState) (supervisorState, error) {
	actor.DebugPrintf("supervisor[%v]: ignoring cast %#v", self, request)
	return state, nil
}

// HandleInfo dispatches $child_down notifications — sent by a child's
// on_exit callback — to restartChild. Anything else is logged and dropped.
func (s *SupervisorS) HandleInfo(self actor.PID, msg any, state supervisorState) (supervisorState, error) {
	t, ok := msg.(tuple.Tuple)
	if !ok || len(t) != 4 {
		actor.DebugPrintf("supervisor[%v]: got unexpected info message: %#v", self, msg)
		return state, nil
	}
	tag, ok := t[0].(string)
	if !ok || tag != "$child_down" {
		return state, nil
	}

	id := tuple.Get[string](t, 1)
	pid := tuple.Get[actor.PID](t, 2)
	reason, _ := t[3].(error)
	if reason == nil {
		reason = exitreason.Exception(fmt.Errorf("%v", t[3]))
	}
	return s.restartChild(self, id, pid, reason, state)
}

func (s *SupervisorS) HandleTaskSuccess(self actor.PID, taskPID actor.PID, result any, state supervisorState) (supervisorState, error) {
	return state, nil
}

func (s *SupervisorS) HandleTaskFailure(self actor.PID, taskPID actor.PID, reason error, state supervisorState) (supervisorState, error) {
	return state, nil
}

// Terminate stops every child, in reverse start order, respecting each
// child's [ShutdownOpt].
func (s *SupervisorS) Terminate(self actor.PID, reason error, state supervisorState) {
	actor.DebugPrintf("supervisor[%v]: terminating: %v", self, reason)
	s.stopChildren(self, state.children.reverse())
}

// restartChild handles one $child_down notification: Temporary children are
// dropped, Transient children are restarted on an abnormal
// ([exitreason.Exception]) exit and dropped otherwise, Permanent children
// are always restarted.
//
// The notification carries the PID of the instance that exited; restartChild
// looks that PID up rather than trusting id alone, so a delayed or duplicate
// $child_down for an instance this supervisor has already superseded (by a
// prior restart, or by stopChild/awaitChildDown racing a slow Terminate) is
// ignored instead of triggering an extra restart.
//
// A child already marked terminated exited because this supervisor itself
// cancelled it (a sibling restart or shutdown in progress) — that case was
// already accounted for synchronously by stopChild/awaitChildDown, so the
// notification is ignored here to avoid double-processing it.
func (s *SupervisorS) restartChild(self actor.PID, id string, pid actor.PID, reason error, state supervisorState) (supervisorState, error) {
	childSpec, err := state.children.findByPID(pid)
	if err != nil || childSpec.ID != id {
		actor.DebugPrintf("supervisor[%v]: stale child_down for %q (pid %v), ignoring", self, id, pid)
		return state, nil
	}
	if childSpec.terminated {
		return state, nil
	}

	switch childSpec.Restart {
	case Temporary:
		state.children.delete(id)
		return state, nil
	case Transient:
		if !exitreason.IsException(reason) {
			actor.DebugPrintf("supervisor[%v]: transient child %q exited without an exception, not restarting", self, id)
			state.children.delete(id)
			return state, nil
		}
		return s.processChildRestart(self, childSpec, state)
	default: // Permanent
		return s.processChildRestart(self, childSpec, state)
	}
}

// processChildRestart applies the supervisor's Strategy once a restart has
// been decided: OneForOne restarts only childSpec; OneForAll stops every
// child (reverse order) and restarts the whole set (start order);
// RestForOne stops childSpec and everything started after it, then
// restarts that suffix in order.
func (s *SupervisorS) processChildRestart(self actor.PID, childSpec ChildSpec, state supervisorState) (supervisorState, error) {
	actor.DebugPrintf("supervisor[%v]: restarting child %q", self, childSpec.ID)

	var err error
	state, err = state.addRestart()
	if err != nil {
		return state, err
	}

	switch state.flags.Strategy {
	case OneForAll:
		stopped := s.stopChildren(self, state.children.reverse())
		startOrdered := stopped.reverse()
		if startErr := s.startChildren(self, state.group, startOrdered); startErr != nil {
			return state, startErr
		}
		state.children = startOrdered

	case RestForOne:
		keep, restart, splitErr := state.children.split(childSpec.ID)
		if splitErr != nil {
			return state, exitreason.Exception(splitErr)
		}
		stopped := s.stopChildren(self, restart.reverse())
		startOrdered := stopped.reverse()
		if startErr := s.startChildren(self, state.group, startOrdered); startErr != nil {
			return state, startErr
		}
		if appendErr := keep.append(startOrdered); appendErr != nil {
			return state, exitreason.Exception(appendErr)
		}
		state.children = keep

	default: // OneForOne
		c, startErr := s.startChild(self, state.group, childSpec)
		if startErr != nil {
			return state, startErr
		}
		state.children.update(c)
	}
	return state, nil
}

// startChild runs child.Start, recovering any panic as an
// [exitreason.Exception]. A start returning [exitreason.Ignore] marks the
// child tracked-but-not-running rather than failing.
func (s *SupervisorS) startChild(self actor.PID, group *actor.Group, child ChildSpec) (cs ChildSpec, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				if exitreason.IsException(e) {
					err = e
				} else {
					err = exitreason.Exception(e)
				}
			} else {
				err = exitreason.Exception(fmt.Errorf("panic starting child %q: %v", child.ID, r))
			}
		}
	}()

	pid, scope, startErr := child.Start(self, group, s.onExitFor(self, child.ID))
	switch {
	case startErr == nil:
		child.pid = pid
		child.scope = scope
		child.terminated = false
		child.ignored = false
		return child, nil
	case errors.Is(startErr, exitreason.Ignore):
		actor.DebugPrintf("supervisor[%v]: child %q returned :ignore", self, child.ID)
		child.pid = actor.UndefinedPID
		child.ignored = true
		return child, nil
	default:
		return child, exitreason.Wrap(startErr)
	}
}

// startChildren starts every child in order, rolling back (stopping
// everything already started, in reverse order) on the first failure.
func (s *SupervisorS) startChildren(self actor.PID, group *actor.Group, children *childSpecs) error {
	for _, spec := range children.list() {
		child, err := s.startChild(self, group, spec)
		if err != nil {
			actor.DebugPrintf("supervisor[%v]: child %q failed to start: %v", self, spec.ID, err)
			s.stopChildren(self, children.reverse())
			return err
		}
		children.update(child)
	}
	return nil
}

// stopChildren stops every child in the given order, dropping Temporary
// children from the returned set entirely.
func (s *SupervisorS) stopChildren(self actor.PID, children *childSpecs) *childSpecs {
	snapshot := children.copy()
	for _, child := range snapshot.list() {
		c := s.stopChild(self, child)
		if c.Restart == Temporary {
			children.delete(c.ID)
		} else {
			children.update(c)
		}
	}
	return children
}

// stopChild cancels child's scope and, unless its ShutdownOpt says
// BrutalKill, waits for its $child_down confirmation — up to Timeout, or
// indefinitely if Infinity is set.
func (s *SupervisorS) stopChild(self actor.PID, c ChildSpec) ChildSpec {
	if !actor.IsAlive(c.pid) {
		c.terminated = true
		return c
	}

	actor.DebugPrintf("supervisor[%v]: stopping child %q", self, c.ID)
	c.scope.Cancel()
	if !c.Shutdown.BrutalKill {
		s.awaitChildDown(self, c.ID, c.pid, shutdownTimeout(c.Shutdown))
	}
	c.terminated = true
	return c
}

func shutdownTimeout(opt ShutdownOpt) time.Duration {
	if opt.Infinity {
		return 0
	}
	if opt.Timeout <= 0 {
		return 5 * time.Second
	}
	return time.Duration(opt.Timeout) * time.Millisecond
}

// awaitChildDown blocks on self's own mailbox for the $child_down envelope
// matching id and pid, consuming it directly rather than waiting for it to
// reach HandleInfo's normal dispatch. Matching on pid as well as id means a
// stale $child_down left over from an earlier instance of this same id
// can't be mistaken for this stop's own confirmation. A zero timeout blocks
// with no deadline.
func (s *SupervisorS) awaitChildDown(self actor.PID, id string, pid actor.PID, timeout time.Duration) {
	cases := []actor.Case{{
		Match: func(v any) ([]any, bool) {
			t, ok := v.(tuple.Tuple)
			if !ok || len(t) != 4 {
				return nil, false
			}
			tag, ok := t[0].(string)
			if !ok || tag != "$child_down" {
				return nil, false
			}
			gotID, ok := t[1].(string)
			if !ok || gotID != id {
				return nil, false
			}
			gotPID, ok := t[2].(actor.PID)
			return nil, ok && gotPID.Equals(pid)
		},
		Handle: func([]any) (any, error) { return nil, nil },
	}}
	actor.Receive(self, nil, timeout, cases)
}

func (s *SupervisorS) onExitFor(self actor.PID, id string) func(actor.PID, error) {
	return func(pid actor.PID, reason error) {
		actor.Send(self, tuple.New("$child_down", id, pid, reason))
	}
}

func (s *SupervisorS) handleStartChild(self actor.PID, spec ChildSpec, state supervisorState) (actor.PID, supervisorState, error) {
	if _, existing, err := state.children.get(spec.ID); err == nil {
		if actor.IsAlive(existing.pid) {
			return actor.UndefinedPID, state, AlreadyStartedError{PID: existing.pid}
		}
		return actor.UndefinedPID, state, ErrAlreadyPresent
	}

	child, err := s.startChild(self, state.group, spec)
	if err != nil {
		return actor.UndefinedPID, state, err
	}
	state.children.add(child)
	return child.pid, state, nil
}

func (s *SupervisorS) handleTerminateChild(self actor.PID, id string, state supervisorState) (supervisorState, error) {
	_, spec, err := state.children.get(id)
	if err != nil {
		return state, ErrNotFound
	}
	c := s.stopChild(self, spec)
	state.children.update(c)
	return state, nil
}

func (s *SupervisorS) handleRestartChild(self actor.PID, id string, state supervisorState) (actor.PID, supervisorState, error) {
	_, spec, err := state.children.get(id)
	if err != nil {
		return actor.UndefinedPID, state, ErrNotFound
	}
	if actor.IsAlive(spec.pid) {
		return actor.UndefinedPID, state, ErrRunning
	}
	child, startErr := s.startChild(self, state.group, spec)
	if startErr != nil {
		return actor.UndefinedPID, state, startErr
	}
	state.children.update(child)
	return child.pid, state, nil
}

func (s *SupervisorS) handleDeleteChild(id string, state supervisorState) (supervisorState, error) {
	_, spec, err := state.children.get(id)
	if err != nil {
		return state, ErrNotFound
	}
	if actor.IsAlive(spec.pid) {
		return state, ErrRunning
	}
	state.children.delete(id)
	return state, nil
}

func (s *SupervisorS) whichChildren(state supervisorState) []ChildInfo {
	specs := state.children.list()
	out := make([]ChildInfo, 0, len(specs))
	for _, c := range specs {
		out = append(out, ChildInfo{
			ID:      c.ID,
			PID:     c.pid,
			Type:    c.Type,
			Status:  childStatus(c),
			Restart: c.Restart,
		})
	}
	return out
}

func childStatus(c ChildSpec) ChildStatus {
	switch {
	case c.ignored:
		return ChildUndefined
	case actor.IsAlive(c.pid):
		return ChildRunning
	default:
		return ChildTerminated
	}
}

func (s *SupervisorS) countChildren(state supervisorState) ChildCount {
	specs := state.children.list()
	active := fun.Filter(specs, func(c ChildSpec) bool { return actor.IsAlive(c.pid) })

	count := ChildCount{Specs: len(specs), Active: len(active)}
	for _, c := range active {
		if c.Type == SupervisorChild {
			count.Supervisors++
		} else {
			count.Workers++
		}
	}
	return count
}
