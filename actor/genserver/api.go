package genserver

import (
	"time"

	"github.com/fizzAI/fauxtp/actor"
	"github.com/fizzAI/fauxtp/actor/exitreason"
	"github.com/fizzAI/fauxtp/actor/tuple"
)

// Handle is returned by [StartLink]: the running server's PID together with
// the [actor.CancelScope] that stops it. There is no generic Stop(pid) —
// the caller that linked the server is the only one who can cancel it,
// mirroring the rest of the package's cancel-scope-only shutdown model.
type Handle struct {
	PID   actor.PID
	Scope actor.CancelScope
}

// Start spawns a GenServer into group with no way for the caller to cancel
// it later; only the server's own logic (or group teardown) ends it. Blocks
// until Init completes or the configured start timeout elapses.
func Start[STATE any](group *actor.Group, callback GenServer[STATE], args any, opts ...StartOpt) (actor.PID, error) {
	gs, finalOpts := build(group, callback, args, opts...)
	pid := actor.Start(group, gs)
	return awaitInit(pid, actor.CancelScope{}, gs.initAckChan, finalOpts)
}

// StartLink spawns a GenServer into group and returns a [Handle] whose Scope
// cancels it. Blocks until Init completes or the configured start timeout
// elapses; a non-nil error means the PID, if any, should not be used.
func StartLink[STATE any](group *actor.Group, callback GenServer[STATE], args any, opts ...StartOpt) (Handle, error) {
	gs, finalOpts := build(group, callback, args, opts...)
	linked := actor.StartLink(group, gs, nil)
	pid, err := awaitInit(linked.PID, linked.Scope, gs.initAckChan, finalOpts)
	return Handle{PID: pid, Scope: linked.Scope}, err
}

// StartLinkedTo spawns a GenServer into group exactly like [StartLink], but
// ties its cancellation to parent's own lifetime rather than only to its
// own returned [Handle]: cancelling parent, or parent exiting for any
// reason, cancels the new server too. onExit (may be nil) is notified
// exactly once when it exits, however that happens. This is what
// [supervisor] uses to start children inside its own scope, so cancelling
// the supervisor tears down every child transitively.
func StartLinkedTo[STATE any](parent actor.PID, group *actor.Group, callback GenServer[STATE], args any, onExit func(actor.PID, error), opts ...StartOpt) (Handle, error) {
	gs, finalOpts := build(group, callback, args, opts...)
	pid := actor.SpawnLinkedTo(parent, group, gs, onExit)
	scope := actor.ScopeOf(pid)
	resultPID, err := awaitInit(pid, scope, gs.initAckChan, finalOpts)
	return Handle{PID: resultPID, Scope: scope}, err
}

func build[STATE any](group *actor.Group, callback GenServer[STATE], args any, opts ...StartOpt) (*GenServerS[STATE], StartOpts) {
	finalOpts := DefaultOpts()
	for _, opt := range opts {
		finalOpts = opt(finalOpts)
	}
	gs := &GenServerS[STATE]{
		callback:    callback,
		opts:        finalOpts,
		args:        args,
		group:       group,
		initAckChan: make(chan initAck, 1),
	}
	return gs, finalOpts
}

func awaitInit(pid actor.PID, scope actor.CancelScope, acks chan initAck, opts StartOpts) (actor.PID, error) {
	select {
	case ack := <-acks:
		if ack.ignore {
			return pid, exitreason.Ignore
		}
		return pid, ack.err
	case <-time.After(opts.GetStartTimeout()):
		scope.Cancel()
		return pid, exitreason.Timeout
	}
}

// Cast sends request to gensrv as a fire-and-forget message: the server's
// HandleCast runs with it, and Cast never blocks on or reports anything
// about the outcome.
func Cast(gensrv actor.Dest, request any) error {
	pid, err := gensrv.ResolvePID()
	if err != nil {
		return exitreason.NoProc
	}
	actor.Send(pid, tuple.New("$cast", request))
	return nil
}

// Call sends request to gensrv and blocks for its HandleCall reply, up to
// timeout (0 means [actor.DefaultCallTimeout]). self is the caller's own
// PID if it is itself running inside an actor, or [actor.UndefinedPID]
// otherwise.
func Call(self actor.PID, gensrv actor.Dest, request any, timeout time.Duration) (any, error) {
	return actor.Call(self, gensrv, request, timeout)
}

// Reply answers a $call that a HandleCall deferred — e.g. handed off to a
// background task — instead of returning its reply synchronously. Most
// servers never need this; returning the reply from HandleCall is enough.
func Reply(from actor.PID, ref actor.Ref, reply any) {
	actor.Reply(from, ref, reply)
}
