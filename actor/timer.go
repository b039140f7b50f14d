package actor

import "time"

// TimerRef identifies a pending delayed send scheduled by [SendAfter],
// usable with [CancelTimer].
type TimerRef struct {
	timer *time.Timer
}

// SendAfter schedules term to be delivered to pid (as if by [Send]) after
// tout elapses. It gives a handler a non-blocking way to schedule a future
// message instead of sleeping inside Run — an explicit sleep would itself
// be a suspension point per the runtime's cooperative model, but it would
// also stall the rest of that actor's mailbox processing for no reason.
//
// Returns a zero [TimerRef] without scheduling anything if pid is not
// currently alive.
func SendAfter(pid PID, term any, tout time.Duration) TimerRef {
	if !IsAlive(pid) {
		return TimerRef{}
	}
	t := time.AfterFunc(tout, func() {
		Send(pid, term)
	})
	return TimerRef{timer: t}
}

// CancelTimer stops a pending [SendAfter] delivery. Returns false if the
// message had already been sent or the TimerRef is the zero value.
func CancelTimer(ref TimerRef) bool {
	if ref.timer == nil {
		return false
	}
	return ref.timer.Stop()
}
