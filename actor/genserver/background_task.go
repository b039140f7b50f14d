package genserver

import (
	"context"

	"github.com/fizzAI/fauxtp/actor"
	"github.com/fizzAI/fauxtp/actor/exitreason"
	"github.com/fizzAI/fauxtp/actor/tuple"
)

// taskRunner is the [actor.Actor] behind [StartBackgroundTask]: it runs fn
// in a goroutine (so a slow or blocking fn never stalls this actor's own
// cancellation check) and reports the outcome to its parent's mailbox as a
// $task_success/$task_failure envelope.
type taskRunner struct {
	fn     func(ctx context.Context) (any, error)
	parent actor.PID
}

type taskOutcome struct {
	result any
	err    error
}

func (*taskRunner) Init(actor.PID) (any, error) { return nil, nil }

func (t *taskRunner) Run(self actor.PID, state any) (any, error) {
	ctx := actor.SelfContext(self)
	done := make(chan taskOutcome, 1)
	go func() {
		result, err := t.fn(ctx)
		done <- taskOutcome{result: result, err: err}
	}()

	select {
	case outcome := <-done:
		if outcome.err != nil {
			actor.Send(t.parent, tuple.New("$task_failure", self, outcome.err))
		} else {
			actor.Send(t.parent, tuple.New("$task_success", self, outcome.result))
		}
		return state, exitreason.Normal
	case <-ctx.Done():
		return state, ctx.Err()
	}
}

func (*taskRunner) Terminate(actor.PID, error, any) {}

// StartBackgroundTask runs fn on its own goroutine, tied to self's
// lifetime: fn's ctx is cancelled the moment self exits for any reason, and
// self's HandleTaskSuccess or HandleTaskFailure receives the outcome as
// soon as fn returns. Use this instead of blocking directly inside a
// handler when fn may take a while — a handler blocking self would stall
// every other message self could otherwise be processing.
func StartBackgroundTask(self actor.PID, fn func(ctx context.Context) (any, error)) actor.PID {
	return actor.SpawnLinkedTo(self, actor.SelfGroup(self), &taskRunner{fn: fn, parent: self}, nil)
}
