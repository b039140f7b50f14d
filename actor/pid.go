package actor

import (
	"fmt"

	"github.com/rs/xid"
)

// PID is a process identifier: an opaque handle to a spawned [Actor]. PIDs
// are comparable with [PID.Equals] and safe to copy, send over channels, or
// hold in maps/structs; the zero value is [UndefinedPID].
type PID struct {
	p *process
}

// UndefinedPID is the zero value of [PID]. Sending to it, or resolving it,
// always behaves as though the target has already exited.
var UndefinedPID PID = PID{}

func (pid PID) String() string {
	if pid.p == nil {
		return "PID<undefined>"
	}
	if name := pid.p.getName(); name != "" {
		return fmt.Sprintf("PID<%d|%s>", pid.p.id, name)
	}
	return fmt.Sprintf("PID<%d>", pid.p.id)
}

// IsNil reports whether pid is the zero value.
func (pid PID) IsNil() bool {
	return pid.p == nil
}

// Equals compares the identity of two PIDs. Two undefined PIDs are equal to
// each other.
func (pid PID) Equals(other PID) bool {
	if pid.IsNil() && other.IsNil() {
		return true
	}
	if pid.IsNil() || other.IsNil() {
		return false
	}
	return pid.p.id == other.p.id
}

// ResolvePID satisfies [Dest]; a PID resolves to itself.
func (pid PID) ResolvePID() (PID, error) {
	if pid.IsNil() {
		return pid, errNoProc
	}
	return pid, nil
}

// MakeRef generates a fresh, globally unique [Ref]. Callers should not
// depend on the internal structure or size of the returned value.
func MakeRef() Ref {
	return Ref(xid.New().String())
}
