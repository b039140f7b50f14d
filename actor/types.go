package actor

type processStatus string

const (
	running processStatus = "RUNNING"
	exiting processStatus = "EXITING"
	exited  processStatus = "EXITED"
)

// Ref is an opaque correlation token returned by [MakeRef], used to tag a
// request so its eventual reply can be matched unambiguously. Two Refs
// compare equal only if one was copied from the other.
type Ref string

func (r Ref) String() string {
	return string(r)
}

// UndefinedRef is the zero value of [Ref].
var UndefinedRef Ref = Ref("")

// Name is a local, process-lifetime identifier registered with [Register]
// and resolved back to a [PID] with [WhereIs]. A Name implements [Dest] so
// it can be passed to [Call] and genserver.Cast/Call in place of a [PID].
type Name string

// ResolvePID looks the name up in the local registry.
func (n Name) ResolvePID() (PID, error) {
	pid, ok := WhereIs(n)
	if !ok {
		return PID{}, errNoProc
	}
	return pid, nil
}

// Dest is anything [Call] (and genserver.Cast/Call) can resolve to a target
// [PID]: a bare [PID], or a registered [Name]. [Send] takes a [PID] only.
type Dest interface {
	ResolvePID() (PID, error)
}

// Actor is the behavior a spawned process implements. The driver calls Init
// once, then Run repeatedly until it returns a non-nil error (including the
// ambient [context.Context] being cancelled), finally calling Terminate
// exactly once on every exit path, abnormal or not.
//
// Run is expected to suspend at least once per call, typically by blocking
// on a mailbox receive; a Run that spins without suspending will starve the
// rest of the program of that goroutine's attention but never of others,
// since each actor owns its own goroutine.
type Actor interface {
	// Init runs once at process start and produces the actor's initial
	// state. Returning a non-nil error aborts startup; Run is never called.
	Init(self PID) (state any, err error)

	// Run is invoked repeatedly with the current state and returns the
	// next state. A non-nil error ends the process; the reason is recorded
	// as [exitreason.Normal] if the error is context.Canceled or
	// context.DeadlineExceeded, verbatim if it is already an
	// [exitreason.S], and wrapped as [exitreason.Exception] otherwise.
	Run(self PID, state any) (newState any, err error)

	// Terminate runs exactly once on the way out, on every exit path. It
	// cannot itself fail the process further: a panic here is logged and
	// swallowed.
	Terminate(self PID, reason error, state any)
}
