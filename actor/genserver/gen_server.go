// Package genserver is the request/reply, fire-and-forget actor
// specialization: it dispatches the three tagged-tuple shapes a client
// speaks over [actor.Send]/[actor.Call] — $call, $cast, and everything
// else — to user-supplied handlers, and gives handlers a way to run
// background work bound to the server's own lifetime.
package genserver

import (
	"errors"
	"fmt"

	"github.com/fizzAI/fauxtp/actor"
	"github.com/fizzAI/fauxtp/actor/exitreason"
	"github.com/fizzAI/fauxtp/actor/pattern"
)

// GenServer is the set of callbacks a concrete server implements. STATE is
// whatever shape the server's own state takes between messages.
type GenServer[STATE any] interface {
	// Init runs once, before Start/StartLink return, and produces the
	// server's initial state. Returning [exitreason.Ignore] makes Start
	// return that error without the server ever entering its receive loop;
	// any other error aborts startup the same way.
	Init(self actor.PID, args any) (STATE, error)

	// HandleCall answers a synchronous [Call]: reply is sent back to the
	// caller immediately after HandleCall returns, paired with the ref
	// from the original request.
	HandleCall(self actor.PID, request any, ref actor.Ref, from actor.PID, state STATE) (reply any, newState STATE, err error)

	// HandleCast answers a fire-and-forget [Cast].
	HandleCast(self actor.PID, request any, state STATE) (newState STATE, err error)

	// HandleInfo answers any message that isn't a $call or $cast envelope —
	// timer ticks scheduled with [actor.SendAfter], and anything else sent
	// directly with [actor.Send].
	HandleInfo(self actor.PID, msg any, state STATE) (newState STATE, err error)

	// HandleTaskSuccess and HandleTaskFailure answer the outcome of a
	// background task started with [StartBackgroundTask].
	HandleTaskSuccess(self actor.PID, taskPID actor.PID, result any, state STATE) (newState STATE, err error)
	HandleTaskFailure(self actor.PID, taskPID actor.PID, reason error, state STATE) (newState STATE, err error)

	// Terminate runs exactly once, on every exit path, after the receive
	// loop stops. It cannot itself fail the server any further.
	Terminate(self actor.PID, reason error, state STATE)
}

type initAck struct {
	ignore bool
	err    error
}

// GenServerS is the [actor.Actor] driving a GenServer callback set. Build
// one with [Start] or [StartLink], never directly.
type GenServerS[STATE any] struct {
	callback       GenServer[STATE]
	state          STATE
	opts           StartOpts
	args           any
	group          *actor.Group
	initAckChan    chan initAck
	nameRegistered bool
}

func (gs *GenServerS[STATE]) unregisterName() {
	if gs.nameRegistered {
		actor.Unregister(gs.opts.GetName())
	}
}

// Init satisfies [actor.Actor]. It registers the configured name (if any),
// runs the callback's Init, and acks [gs.initAckChan] so awaitInit can
// unblock the caller of Start/StartLink.
func (gs *GenServerS[STATE]) Init(self actor.PID) (any, error) {
	if gs.opts.GetName() != "" {
		if regErr := actor.Register(gs.opts.GetName(), self); regErr != nil {
			err := exitreason.Exception(fmt.Errorf("genserver: register %q: %w", gs.opts.GetName(), regErr))
			gs.initAckChan <- initAck{err: err}
			return gs.state, err
		}
		gs.nameRegistered = true
	}

	initState, err := gs.handleInit(self)
	if err != nil {
		if errors.Is(err, exitreason.Ignore) {
			gs.unregisterName()
			gs.initAckChan <- initAck{ignore: true}
			return gs.state, exitreason.Ignore
		}
		actor.DebugPrintf("genserver[%v]: Init returned error: %v", self, err)
		gs.unregisterName()
		err = exitreason.Wrap(err)
		gs.initAckChan <- initAck{err: err}
		return gs.state, err
	}

	gs.state = initState
	gs.initAckChan <- initAck{}
	return gs.state, nil
}

func (gs *GenServerS[STATE]) handleInit(self actor.PID) (state STATE, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				if exitreason.IsException(e) {
					err = e
				} else {
					err = exitreason.Exception(e)
				}
			} else {
				err = exitreason.Exception(fmt.Errorf("panic in Init: %v", r))
			}
		}
	}()
	return gs.callback.Init(self, gs.args)
}

// Run satisfies [actor.Actor]: one call performs exactly one selective
// receive against self's own mailbox and dispatches whichever of $call,
// $cast, $task_success, $task_failure, or plain-message shape matched.
func (gs *GenServerS[STATE]) Run(self actor.PID, _ any) (any, error) {
	cases := []actor.Case{
		{
			Match: func(v any) ([]any, bool) {
				return pattern.Match(v, pattern.Tuple(pattern.Literal("$call"), pattern.Type[actor.Ref](), pattern.Type[actor.PID](), pattern.Any))
			},
			Handle: func(b []any) (any, error) {
				return nil, gs.handleCall(self, b[0].(actor.Ref), b[1].(actor.PID), b[2])
			},
		},
		{
			Match: func(v any) ([]any, bool) {
				return pattern.Match(v, pattern.Tuple(pattern.Literal("$cast"), pattern.Any))
			},
			Handle: func(b []any) (any, error) {
				return nil, gs.handleCast(self, b[0])
			},
		},
		{
			Match: func(v any) ([]any, bool) {
				return pattern.Match(v, pattern.Tuple(pattern.Literal("$task_success"), pattern.Type[actor.PID](), pattern.Any))
			},
			Handle: func(b []any) (any, error) {
				return nil, gs.handleTaskSuccess(self, b[0].(actor.PID), b[1])
			},
		},
		{
			Match: func(v any) ([]any, bool) {
				return pattern.Match(v, pattern.Tuple(pattern.Literal("$task_failure"), pattern.Type[actor.PID](), pattern.Any))
			},
			Handle: func(b []any) (any, error) {
				reason, _ := b[1].(error)
				if reason == nil {
					reason = exitreason.Exception(fmt.Errorf("%v", b[1]))
				}
				return nil, gs.handleTaskFailure(self, b[0].(actor.PID), reason)
			},
		},
		{
			Match: func(v any) ([]any, bool) { return pattern.Match(v, pattern.Any) },
			Handle: func(b []any) (any, error) {
				return nil, gs.handleInfo(self, b[0])
			},
		},
	}

	_, err := actor.Receive(self, actor.SelfContext(self), 0, cases)
	return gs.state, err
}

// Terminate satisfies [actor.Actor]. Always releases the registered name
// (if any) before handing off to the callback.
func (gs *GenServerS[STATE]) Terminate(self actor.PID, reason error, _ any) {
	gs.unregisterName()
	gs.callback.Terminate(self, reason, gs.state)
}

func (gs *GenServerS[STATE]) handleCall(self actor.PID, ref actor.Ref, from actor.PID, request any) error {
	reply, newState, err := gs.callback.HandleCall(self, request, ref, from, gs.state)
	if err != nil {
		return exitreason.Wrap(err)
	}
	gs.state = newState
	actor.Reply(from, ref, reply)
	return nil
}

func (gs *GenServerS[STATE]) handleCast(self actor.PID, request any) error {
	newState, err := gs.callback.HandleCast(self, request, gs.state)
	if err != nil {
		return exitreason.Wrap(err)
	}
	gs.state = newState
	return nil
}

func (gs *GenServerS[STATE]) handleInfo(self actor.PID, msg any) error {
	newState, err := gs.callback.HandleInfo(self, msg, gs.state)
	if err != nil {
		return exitreason.Wrap(err)
	}
	gs.state = newState
	return nil
}

func (gs *GenServerS[STATE]) handleTaskSuccess(self actor.PID, taskPID actor.PID, result any) error {
	newState, err := gs.callback.HandleTaskSuccess(self, taskPID, result, gs.state)
	if err != nil {
		return exitreason.Wrap(err)
	}
	gs.state = newState
	return nil
}

func (gs *GenServerS[STATE]) handleTaskFailure(self actor.PID, taskPID actor.PID, reason error) error {
	newState, err := gs.callback.HandleTaskFailure(self, taskPID, reason, gs.state)
	if err != nil {
		return exitreason.Wrap(err)
	}
	gs.state = newState
	return nil
}
