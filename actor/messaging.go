package actor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fizzAI/fauxtp/actor/exitreason"
	"github.com/fizzAI/fauxtp/actor/internal/mailbox"
	"github.com/fizzAI/fauxtp/actor/pattern"
	"github.com/fizzAI/fauxtp/actor/tuple"
)

var errNoProc = exitreason.NoProc

// Send delivers term to pid's mailbox asynchronously and never blocks or
// reports an error: if pid does not identify a live actor, the message is
// silently discarded, matching Erlang's fire-and-forget send semantics.
func Send(pid PID, term any) {
	if pid.IsNil() {
		return
	}
	pid.p.mailbox.Put(term)
}

// DefaultCallTimeout is used by [Call] and [genserver.Call] when the caller
// does not specify a positive timeout.
const DefaultCallTimeout = 5 * time.Second

// callerGroup owns the ephemeral stand-in actors Call spawns when self is
// [UndefinedPID] — callers outside any actor (tests, a program's main) that
// still want request/reply semantics against a running actor.
var callerGroup = NewGroup(context.Background())

type replyWaiter struct{}

func (replyWaiter) Init(PID) (any, error) { return nil, nil }

func (replyWaiter) Run(self PID, state any) (any, error) {
	<-SelfContext(self).Done()
	return state, SelfContext(self).Err()
}

func (replyWaiter) Terminate(PID, error, any) {}

// Call sends a ("$call", ref, self, request) tuple to dest and blocks, up
// to timeout (defaulting to [DefaultCallTimeout]), for a matching
// ("$reply", ref, term) reply sent back to self's own mailbox — exactly as
// if the caller had performed a selective receive for that one tuple.
// Calling yourself is rejected immediately as a guaranteed deadlock rather
// than left to time out.
//
// If self is [UndefinedPID] (the caller is not itself a running actor —
// e.g. a test or a program's top level), Call transparently spawns and
// tears down a throwaway actor to serve as the reply target.
func Call(self PID, dest Dest, request any, timeout time.Duration) (any, error) {
	pid, err := dest.ResolvePID()
	if err != nil {
		return nil, exitreason.NoProc
	}
	if !self.IsNil() && self.Equals(pid) {
		return nil, exitreason.Exception(fmt.Errorf("actor: cannot call self"))
	}
	if timeout <= 0 {
		timeout = DefaultCallTimeout
	}

	from := self
	if from.IsNil() {
		handle := StartLink(callerGroup, replyWaiter{}, nil)
		defer handle.Scope.Cancel()
		from = handle.PID
	}

	ref := MakeRef()
	Send(pid, tuple.New("$call", ref, from, request))

	cases := []mailbox.Case{{
		Match: func(v any) ([]any, bool) {
			return pattern.Match(v, pattern.Tuple(pattern.Literal("$reply"), pattern.Literal(ref), pattern.Any))
		},
		Handle: func(b []any) (any, error) { return b[0], nil },
	}}

	value, err := from.p.mailbox.Receive(SelfContext(from), timeout, cases)
	if err != nil {
		if errors.Is(err, mailbox.ErrTimeout) {
			return nil, exitreason.Timeout
		}
		return nil, exitreason.Wrap(err)
	}
	return value, nil
}

// Reply delivers a $call's response to the caller recorded as "from" in
// the original request tuple. Exported at the package level (rather than
// only through genserver) so any [Actor] implementation, not just
// GenServer, can answer a $call it chooses to handle.
func Reply(from PID, ref Ref, term any) {
	Send(from, tuple.New("$reply", ref, term))
}
