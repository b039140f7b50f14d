package supervisor

import (
	"errors"
	"fmt"

	"github.com/fizzAI/fauxtp/actor"
)

// Errors returned by dynamic child management APIs. Use [errors.Is] to
// check for specific error conditions.
var (
	// ErrNotFound is returned when a child ID does not exist in the
	// supervisor. Returned by [TerminateChild], [RestartChild], and
	// [DeleteChild].
	ErrNotFound = errors.New("child not found")

	// ErrAlreadyPresent is returned by [StartChild] when a child with the
	// given ID already exists but is not running (terminated or ignored).
	// Use [RestartChild] to restart an existing terminated child, or
	// [DeleteChild] to remove the spec before adding a new one with the
	// same ID.
	ErrAlreadyPresent = errors.New("child already present")

	// ErrAlreadyStarted is returned by [StartChild] when a child with the
	// given ID already exists and is currently running. The actual error
	// is [AlreadyStartedError], which carries the existing PID.
	ErrAlreadyStarted = errors.New("child already started")

	// ErrRunning is returned when an operation cannot be performed because
	// the child is still running. Returned by [DeleteChild] (must
	// terminate first).
	ErrRunning = errors.New("child is running")

	// MaxRestartsExceeded is the exit reason a supervisor hands to its own
	// on_exit when too many restarts happened within flags.MaxSeconds —
	// mirroring a BEAM supervisor crashing its own parent under the same
	// condition.
	MaxRestartsExceeded = errors.New("supervisor restart intensity exceeded")
)

// AlreadyStartedError is returned by [StartChild] when attempting to start
// a child with an ID that already exists and is running. It carries the
// PID of the existing running child.
//
//	_, err := supervisor.StartChild(actor.UndefinedPID, sup, spec, time.Second)
//	if errors.Is(err, supervisor.ErrAlreadyStarted) {
//		var asErr supervisor.AlreadyStartedError
//		if errors.As(err, &asErr) {
//			fmt.Printf("already running: %v\n", asErr.PID)
//		}
//	}
type AlreadyStartedError struct {
	PID actor.PID
}

func (e AlreadyStartedError) Error() string {
	return fmt.Sprintf("child already started with PID %v", e.PID)
}

func (e AlreadyStartedError) Unwrap() error {
	return ErrAlreadyStarted
}
