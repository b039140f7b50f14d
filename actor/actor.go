/*
Package actor provides Erlang/OTP-style process primitives for Go: PIDs,
structured-concurrency task groups, a selective-receive mailbox, and the
building blocks ([genserver], [supervisor]) layered on top of them.

# Core concepts

An [Actor] is spawned into a [Group] — the structured-concurrency scope
that stands in for Erlang's process tree. Every actor owns exactly one
goroutine and one [Mailbox]-backed inbox; nothing is ever spawned outside
an owning Group, and cancelling a Group tears down every actor it owns.

	group := actor.NewGroup(context.Background())
	pid := actor.Start(group, &myActor{})

	// linked: cancelling the scope, or the actor exiting on its own,
	// notifies the caller via onExit exactly once.
	handle := actor.StartLink(group, &myActor{}, func(pid actor.PID, reason error) {
		log.Printf("%v exited: %v", pid, reason)
	})
	handle.Scope.Cancel()

# Messaging

[Send] is fire-and-forget; the message is silently dropped if the target
has already exited. [Call] layers a synchronous request/reply on top of
Send using a fresh [Ref], timing out after the given duration if no reply
arrives. The reply is awaited in the calling actor's own mailbox; a
separate reply mailbox (that of a throwaway actor) is created only when
the caller is not itself an actor. [genserver.Call] and
[genserver.Cast] are the usual way application code reaches a GenServer;
Send and Call are the primitives those build on.

# Erlang correspondence

	Erlang                  Go (actor package)
	------                  ------------------
	spawn/1                 Start
	spawn_link/1            StartLink
	!/send                  Send
	gen_server:call/3       genserver.Call
	make_ref/0              MakeRef
	is_process_alive/1      IsAlive
	erlang:send_after/3     SendAfter
*/
package actor

import (
	"context"
)

// Start spawns a into group and returns its [PID] immediately; the PID and
// its mailbox exist before Start returns, so messages sent right after can
// never race the actor's own startup.
func Start(group *Group, a Actor) PID {
	return spawnUnder(group.ctx, group, a, nil)
}

// LinkHandle is returned by [StartLink]: the new actor's PID together with
// a [CancelScope] that can stop it and an on_exit notification that fires
// exactly once, however the actor ends.
type LinkHandle struct {
	PID   PID
	Scope CancelScope
}

// StartLink spawns a into group, linked to the caller through onExit: a
// callback invoked exactly once, with the actor's final [exitreason.S],
// when the actor terminates for any reason (including in response to
// Scope.Cancel()). onExit may be nil.
func StartLink(group *Group, a Actor, onExit func(pid PID, reason error)) LinkHandle {
	p := newProcess(group.ctx, group, a, onExit)
	pid := PID{p: p}
	group.spawn(func() { p.run(pid) })
	return LinkHandle{PID: pid, Scope: CancelScope{cancel: p.cancel}}
}

// SpawnLinkedTo starts a under parent's own cancellation scope rather than
// group's: cancelling parent (or parent exiting for any reason) cancels a
// too, while a is still tracked by group's WaitGroup. This is how GenServer
// background tasks and supervised children are tied to their owner's
// lifetime without exposing general-purpose links.
func SpawnLinkedTo(parent PID, group *Group, a Actor, onExit func(PID, error)) PID {
	if parent.IsNil() {
		return spawnUnder(group.ctx, group, a, onExit)
	}
	return spawnUnder(parent.p.ctx, group, a, onExit)
}

// SelfContext returns the [context.Context] governing self's lifetime: done
// when self's [CancelScope] is cancelled or self exits. Actors that spawn
// background work tied to their own lifetime (see [SpawnLinkedTo]) use this
// to find "my own" context.
func SelfContext(self PID) context.Context {
	if self.IsNil() {
		return context.Background()
	}
	return self.p.ctx
}

// IsAlive reports whether pid currently identifies a running actor. This is
// a point-in-time check: the actor may exit immediately afterward.
func IsAlive(pid PID) bool {
	return !pid.IsNil() && pid.p.getStatus() == running
}

// ScopeOf returns the [CancelScope] that stops pid. Used when a PID was
// obtained from [SpawnLinkedTo] (which, unlike [StartLink], returns only a
// PID) but the caller still needs to be able to cancel it directly —
// [genserver.StartLinkedTo] uses this to hand back a [genserver.Handle]
// whose Scope matches what [StartLink] would have given.
func ScopeOf(pid PID) CancelScope {
	if pid.IsNil() {
		return CancelScope{}
	}
	return CancelScope{cancel: pid.p.cancel}
}

// SelfGroup returns the [Group] self was spawned into, so an actor can
// spawn further work into the same structured-concurrency scope it belongs
// to without having to thread a *Group through every handler call. Returns
// nil if self is nil.
func SelfGroup(self PID) *Group {
	if self.IsNil() {
		return nil
	}
	return self.p.group
}
