package supervisor

import "github.com/fizzAI/fauxtp/actor"

// Strategy determines which children are restarted when one of them exits
// and qualifies for restart.
type Strategy string

const (
	// OneForOne restarts only the child that exited. The default strategy;
	// appropriate when children are independent of one another.
	OneForOne Strategy = "one_for_one"

	// OneForAll cancels every other running child and restarts the whole
	// set, in original spec order, when any one child exits. Use when
	// children share state and can't function with a stale sibling.
	OneForAll Strategy = "one_for_all"

	// RestForOne cancels the exited child and every child started after it
	// (in spec order), then restarts that suffix in order. Use when later
	// children depend on earlier ones.
	RestForOne Strategy = "rest_for_one"
)

// Restart is a child's own restart policy, independent of the supervisor's
// Strategy.
type Restart string

const (
	// Permanent children are always restarted, regardless of exit reason.
	Permanent Restart = "permanent"

	// Transient children are restarted only on an abnormal exit —
	// [exitreason.IsException] true of the reason. A normal or shutdown
	// exit removes them instead.
	Transient Restart = "transient"

	// Temporary children are never restarted; any exit removes them from
	// the supervisor and does not count toward the restart rate limit.
	Temporary Restart = "temporary"
)

// ShutdownOpt configures how long [TerminateChild] and a strategy-driven
// cancellation wait for a child's on_exit confirmation before giving up on
// it. The runtime has no preemptive kill distinct from cancellation itself
// (cooperative scheduling, no preemption) — these options bound how long
// the supervisor waits to observe the exit, not how the child is asked to
// stop.
type ShutdownOpt struct {
	// BrutalKill cancels the child's scope and returns immediately without
	// waiting for its on_exit confirmation.
	BrutalKill bool

	// Timeout bounds how long to wait for on_exit after cancelling, in
	// milliseconds. Zero (the zero value) means 5000.
	Timeout int

	// Infinity waits for on_exit with no bound. Recommended for children
	// that are themselves supervisors, so a whole subtree can unwind.
	Infinity bool
}

// ChildType is informational metadata surfaced through [WhichChildren].
type ChildType string

const (
	// SupervisorChild marks a child that is itself a supervisor.
	SupervisorChild ChildType = "supervisor"
	// WorkerChild marks an ordinary, non-supervisor child. The default.
	WorkerChild ChildType = "worker"
)

// ChildStatus is a child's runtime state as reported by [WhichChildren].
type ChildStatus string

const (
	ChildRunning    ChildStatus = "running"
	ChildTerminated ChildStatus = "terminated"
	// ChildUndefined means the child's Start returned [exitreason.Ignore].
	// A child that is tracked but not running for any other reason is
	// reported as ChildTerminated.
	ChildUndefined ChildStatus = "undefined"
)

// ChildInfo describes one child, as returned by [WhichChildren].
type ChildInfo struct {
	ID      string
	PID     actor.PID
	Type    ChildType
	Status  ChildStatus
	Restart Restart
}

// ChildCount summarizes the children, as returned by [CountChildren].
type ChildCount struct {
	Specs       int
	Active      int
	Supervisors int
	Workers     int
}
