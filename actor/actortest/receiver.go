// Package actortest provides [TestReceiver], an [actor.Actor] that other
// tests can set message expectations on instead of wiring up ad hoc
// channels: sending it a message that no expectation matches, or leaving
// an expectation unsatisfied by [TestReceiver.Wait]'s deadline, fails the
// test.
package actortest

import (
	"fmt"
	"reflect"
	"sync"
	"testing"
	"time"

	"go.uber.org/mock/gomock"
	"golang.org/x/exp/maps"

	"github.com/fizzAI/fauxtp/actor"
	"github.com/fizzAI/fauxtp/chronos"
)

// DefaultWaitTimeout bounds how long [TestReceiver.Wait] blocks for every
// expectation to be satisfied before failing the test.
var DefaultWaitTimeout = chronos.Dur("5s")

// Expectation is one registered match against a message type, built by
// [TestReceiver.Expect]. matcher is any [gomock.Matcher] — gomock.Eq,
// gomock.Any, or a hand-rolled one — so expectations can assert on a
// message's fields without the receiver needing to know its shape.
type Expectation struct {
	msgType  reflect.Type
	matcher  gomock.Matcher
	minCalls int
	maxCalls int

	mx       sync.Mutex
	numCalls int
}

// Times bounds how many messages of this shape are expected; the default,
// set by [TestReceiver.Expect], is exactly one.
func (e *Expectation) Times(min, max int) *Expectation {
	e.minCalls = min
	e.maxCalls = max
	return e
}

func (e *Expectation) record() {
	e.mx.Lock()
	defer e.mx.Unlock()
	e.numCalls++
}

func (e *Expectation) callCount() int {
	e.mx.Lock()
	defer e.mx.Unlock()
	return e.numCalls
}

func (e *Expectation) satisfied() bool {
	n := e.callCount()
	return n >= e.minCalls && n <= e.maxCalls
}

// TestReceiver is an [actor.Actor] whose Run loop checks every incoming
// message against the expectations registered with [Expect], failing the
// owning test on an unmatched message or an unsatisfied expectation still
// outstanding when [Wait] returns.
type TestReceiver struct {
	t       *testing.T
	timeout time.Duration

	mx     sync.Mutex
	expect map[reflect.Type]*Expectation
	failed []string
}

// New spawns a TestReceiver into group and returns its PID alongside the
// handle used to register expectations and wait on them. The receiver is
// stopped automatically via t.Cleanup.
func New(t *testing.T, group *actor.Group) (actor.PID, *TestReceiver) {
	t.Helper()
	tr := &TestReceiver{t: t, timeout: DefaultWaitTimeout, expect: make(map[reflect.Type]*Expectation)}
	handle := actor.StartLink(group, tr, nil)
	t.Cleanup(handle.Scope.Cancel)
	return handle.PID, tr
}

// Expect registers that a message of the same type as sample must arrive
// and satisfy matcher exactly once (override with [Expectation.Times]).
// sample is only used for its type — gomock.Any() as matcher accepts any
// value of that type.
func (tr *TestReceiver) Expect(sample any, matcher gomock.Matcher) *Expectation {
	tr.mx.Lock()
	defer tr.mx.Unlock()
	e := &Expectation{msgType: reflect.TypeOf(sample), matcher: matcher, minCalls: 1, maxCalls: 1}
	tr.expect[e.msgType] = e
	return e
}

// Wait blocks until every registered expectation is satisfied or timeout
// elapses (see [DefaultWaitTimeout]), failing the test on whichever comes
// first with an unsatisfied expectation.
func (tr *TestReceiver) Wait() {
	tr.t.Helper()
	deadline := time.Now().Add(tr.timeout)
	for time.Now().Before(deadline) {
		if tr.allSatisfied() {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	tr.mx.Lock()
	defer tr.mx.Unlock()
	for _, e := range maps.Values(tr.expect) {
		if !e.satisfied() {
			tr.t.Errorf("actortest: expectation for %v called %d times, want [%d,%d]", e.msgType, e.callCount(), e.minCalls, e.maxCalls)
		}
	}
	for _, f := range tr.failed {
		tr.t.Errorf("actortest: %s", f)
	}
}

func (tr *TestReceiver) allSatisfied() bool {
	tr.mx.Lock()
	defer tr.mx.Unlock()
	if len(tr.failed) > 0 {
		return true // let Wait report the failures rather than spin to the deadline
	}
	for _, e := range tr.expect {
		if !e.satisfied() {
			return false
		}
	}
	return true
}

func (tr *TestReceiver) check(msg any) {
	tr.mx.Lock()
	e, ok := tr.expect[reflect.TypeOf(msg)]
	tr.mx.Unlock()
	if !ok {
		tr.mx.Lock()
		tr.failed = append(tr.failed, fmt.Sprintf("unexpected message with no matching expectation: %#v", msg))
		tr.mx.Unlock()
		return
	}
	if !e.matcher.Matches(msg) {
		tr.mx.Lock()
		tr.failed = append(tr.failed, fmt.Sprintf("message %#v did not satisfy matcher %v", msg, e.matcher))
		tr.mx.Unlock()
		return
	}
	e.record()
}

func (tr *TestReceiver) Init(actor.PID) (any, error) { return nil, nil }

func (tr *TestReceiver) Run(self actor.PID, state any) (any, error) {
	cases := []actor.Case{{
		Match:  func(v any) ([]any, bool) { return []any{v}, true },
		Handle: func(b []any) (any, error) { tr.check(b[0]); return state, nil },
	}}
	return actor.Receive(self, actor.SelfContext(self), 0, cases)
}

func (tr *TestReceiver) Terminate(actor.PID, error, any) {}
