package actor

import (
	"context"
	"time"

	"github.com/fizzAI/fauxtp/actor/internal/mailbox"
)

// Case is one candidate clause for [Receive]: Match inspects a queued
// message and reports whether it applies along with any bound sub-values;
// Handle runs with those bindings once the message is dequeued. Build Match
// funcs from the [actor/pattern] package rather than hand-rolling type
// switches, so the vocabulary of what can be matched stays in one place.
type Case = mailbox.Case

// ErrReceiveTimeout is returned by [Receive] when no case matched before
// the deadline elapsed.
var ErrReceiveTimeout = mailbox.ErrTimeout

// Receive performs one selective receive against self's own mailbox: it
// scans queued messages in order for the first one any case matches,
// removes only that message (messages it skips over stay queued, in order,
// for the next Receive), and runs the matching case's Handle. If nothing
// matches yet, it suspends until a new message arrives, ctx is cancelled,
// or timeout elapses (0 means wait indefinitely).
//
// This is the primitive [genserver] and [supervisor] are built on; an
// [Actor] with its own protocol calls it directly from Run.
func Receive(self PID, ctx context.Context, timeout time.Duration, cases []Case) (any, error) {
	if self.IsNil() {
		return nil, errNoProc
	}
	return self.p.mailbox.Receive(ctx, timeout, cases)
}
