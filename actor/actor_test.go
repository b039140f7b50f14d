package actor

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"gotest.tools/v3/assert"

	"github.com/fizzAI/fauxtp/actor/exitreason"
	"github.com/fizzAI/fauxtp/actor/tuple"
)

// echoActor replies to every request with the request itself, and reports
// its exit reason on a channel so tests can assert on it.
type echoActor struct {
	exited chan error
}

func (e *echoActor) Init(PID) (any, error) { return nil, nil }

func (e *echoActor) Run(self PID, state any) (any, error) {
	cases := []Case{{
		Match: func(v any) ([]any, bool) { return []any{v}, true },
		Handle: func(b []any) (any, error) {
			if t, ok := b[0].(tuple.Tuple); ok && len(t) == 4 && t[0] == "$call" {
				Reply(t[2].(PID), t[1].(Ref), t[3])
			}
			return nil, nil
		},
	}}
	_, err := Receive(self, SelfContext(self), 0, cases)
	return state, err
}

func (e *echoActor) Terminate(_ PID, reason error, _ any) {
	if e.exited != nil {
		e.exited <- reason
	}
}

func TestStartLink_CancelDrivesNormalExit(t *testing.T) {
	group := NewGroup(context.Background())
	exited := make(chan error, 1)
	handle := StartLink(group, &echoActor{exited: exited}, nil)

	assert.Assert(t, IsAlive(handle.PID))
	handle.Scope.Cancel()

	select {
	case reason := <-exited:
		assert.Assert(t, exitreason.IsNormal(reason))
	case <-time.After(time.Second):
		t.Fatal("actor never terminated")
	}
	group.Wait()
	assert.Assert(t, !IsAlive(handle.PID))
}

func TestStartLink_OnExitCallbackFires(t *testing.T) {
	group := NewGroup(context.Background())
	notified := make(chan error, 1)
	handle := StartLink(group, &echoActor{}, func(pid PID, reason error) {
		notified <- reason
	})

	handle.Scope.Cancel()

	select {
	case reason := <-notified:
		assert.Assert(t, exitreason.IsNormal(reason))
	case <-time.After(time.Second):
		t.Fatal("onExit never called")
	}
}

type panicActor struct{}

func (panicActor) Init(PID) (any, error) { return nil, nil }
func (panicActor) Run(self PID, state any) (any, error) {
	panic(errors.New("boom"))
}
func (panicActor) Terminate(PID, error, any) {}

func TestRun_PanicBecomesException(t *testing.T) {
	group := NewGroup(context.Background())
	notified := make(chan error, 1)
	StartLink(group, panicActor{}, func(pid PID, reason error) {
		notified <- reason
	})

	select {
	case reason := <-notified:
		assert.Assert(t, exitreason.IsException(reason))
	case <-time.After(time.Second):
		t.Fatal("onExit never called")
	}
}

func TestSend_ToDeadActorIsNoop(t *testing.T) {
	group := NewGroup(context.Background())
	handle := StartLink(group, &echoActor{}, nil)
	handle.Scope.Cancel()
	group.Wait()

	assert.Assert(t, func() bool {
		Send(handle.PID, "hi")
		return true
	}())
}

func TestCall_RoundTripsThroughCallerMailbox(t *testing.T) {
	group := NewGroup(context.Background())
	handle := StartLink(group, &echoActor{}, nil)
	defer handle.Scope.Cancel()

	done := make(chan error, 1)
	caller := StartLink(group, &callingActor{target: handle.PID, request: "ping", done: done}, nil)
	defer caller.Scope.Cancel()

	select {
	case err := <-done:
		assert.NilError(t, err)
	case <-time.After(time.Second):
		t.Fatal("call never completed")
	}
}

// callingActor issues a Call against target once and reports the outcome
// on done before exiting normally.
type callingActor struct {
	request string
	target  PID
	done    chan error
}

func (c *callingActor) Init(PID) (any, error) { return nil, nil }

func (c *callingActor) Run(self PID, state any) (any, error) {
	reply, err := Call(self, c.target, c.request, time.Second)
	if err == nil && reply.(string) != c.request {
		err = fmt.Errorf("unexpected reply: %v", reply)
	}
	c.done <- err
	return state, exitreason.Normal
}

func (c *callingActor) Terminate(PID, error, any) {}

func TestCall_UndefinedSelfSpawnsThrowawayReplyWaiter(t *testing.T) {
	group := NewGroup(context.Background())
	handle := StartLink(group, &echoActor{}, nil)
	defer handle.Scope.Cancel()

	reply, err := Call(UndefinedPID, handle.PID, "direct", time.Second)

	assert.NilError(t, err)
	assert.Equal(t, reply.(string), "direct")
}

func TestCall_TimesOutWithoutReply(t *testing.T) {
	group := NewGroup(context.Background())
	silent := StartLink(group, &silentActor{}, nil)
	defer silent.Scope.Cancel()

	_, err := Call(UndefinedPID, silent.PID, "hello", 20*time.Millisecond)

	assert.Assert(t, errors.Is(err, exitreason.Timeout))
}

type silentActor struct{}

func (silentActor) Init(PID) (any, error) { return nil, nil }
func (silentActor) Run(self PID, state any) (any, error) {
	<-SelfContext(self).Done()
	return state, SelfContext(self).Err()
}
func (silentActor) Terminate(PID, error, any) {}

func TestCall_UndefinedDestReturnsNoProc(t *testing.T) {
	_, err := Call(PID{}, PID{}, "x", time.Second)
	assert.Assert(t, errors.Is(err, exitreason.NoProc))
}

func TestReply_DeliversTaggedTuple(t *testing.T) {
	group := NewGroup(context.Background())
	collector := make(chan any, 1)
	collect := StartLink(group, &collectorActor{out: collector}, nil)
	defer collect.Scope.Cancel()

	ref := MakeRef()
	Reply(collect.PID, ref, "answer")

	select {
	case v := <-collector:
		tup := v.(tuple.Tuple)
		assert.Equal(t, tup[1].(Ref), ref)
		assert.Equal(t, tup[2].(string), "answer")
	case <-time.After(time.Second):
		t.Fatal("reply never delivered")
	}
}

type collectorActor struct {
	out chan any
}

func (c *collectorActor) Init(PID) (any, error) { return nil, nil }
func (c *collectorActor) Run(self PID, state any) (any, error) {
	cases := []Case{{
		Match:  func(v any) ([]any, bool) { return []any{v}, true },
		Handle: func(b []any) (any, error) { c.out <- b[0]; return state, nil },
	}}
	return Receive(self, SelfContext(self), 0, cases)
}
func (c *collectorActor) Terminate(PID, error, any) {}

func TestSpawnLinkedTo_CascadesCancellation(t *testing.T) {
	group := NewGroup(context.Background())
	parentExited := make(chan error, 1)
	parent := StartLink(group, &echoActor{exited: parentExited}, nil)

	childExited := make(chan error, 1)
	childPID := SpawnLinkedTo(parent.PID, group, &echoActor{exited: childExited}, nil)
	assert.Assert(t, IsAlive(childPID))

	parent.Scope.Cancel()

	select {
	case <-childExited:
	case <-time.After(time.Second):
		t.Fatal("child was not cancelled when parent was")
	}
	assert.Assert(t, !IsAlive(childPID))
}

func TestScopeOf_CancelsSpawnLinkedToActor(t *testing.T) {
	group := NewGroup(context.Background())
	parent := StartLink(group, &echoActor{}, nil)
	defer parent.Scope.Cancel()

	childExited := make(chan error, 1)
	childPID := SpawnLinkedTo(parent.PID, group, &echoActor{exited: childExited}, nil)
	scope := ScopeOf(childPID)

	scope.Cancel()

	select {
	case <-childExited:
	case <-time.After(time.Second):
		t.Fatal("child was not cancelled through its ScopeOf scope")
	}
	assert.Assert(t, !IsAlive(childPID))
	assert.Assert(t, IsAlive(parent.PID))
}

func TestSelfGroup_ReturnsOwningGroup(t *testing.T) {
	group := NewGroup(context.Background())
	probe := make(chan *Group, 1)
	handle := StartLink(group, &groupProbeActor{out: probe}, nil)
	defer handle.Scope.Cancel()

	select {
	case g := <-probe:
		assert.Assert(t, g == group)
	case <-time.After(time.Second):
		t.Fatal("never observed group")
	}
}

type groupProbeActor struct {
	out chan *Group
}

func (g *groupProbeActor) Init(self PID) (any, error) {
	g.out <- SelfGroup(self)
	return nil, nil
}
func (g *groupProbeActor) Run(self PID, state any) (any, error) {
	<-SelfContext(self).Done()
	return state, SelfContext(self).Err()
}
func (g *groupProbeActor) Terminate(PID, error, any) {}
