package actor

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/fizzAI/fauxtp/actor/exitreason"
	"github.com/fizzAI/fauxtp/actor/internal/mailbox"
)

var nextProcessID atomic.Int64

// process is the runtime state behind a [PID]. It owns exactly one
// goroutine (started by [Group.spawn]), which runs [process.run] for the
// whole lifetime of the actor: Init once, then Run in a loop, then
// Terminate exactly once on the way out.
type process struct {
	id      int64
	actor   Actor
	mailbox *mailbox.Mailbox
	ctx     context.Context
	cancel  context.CancelFunc
	onExit  func(pid PID, reason error)
	group   *Group

	statusMu sync.RWMutex
	status   processStatus

	nameMu sync.RWMutex
	name   Name

	state any
}

func newProcess(parentCtx context.Context, g *Group, a Actor, onExit func(PID, error)) *process {
	ctx, cancel := context.WithCancel(parentCtx)
	return &process{
		id:      nextProcessID.Add(1),
		actor:   a,
		mailbox: mailbox.New(),
		ctx:     ctx,
		cancel:  cancel,
		onExit:  onExit,
		group:   g,
		status:  running,
	}
}

func spawnUnder(parentCtx context.Context, g *Group, a Actor, onExit func(PID, error)) PID {
	p := newProcess(parentCtx, g, a, onExit)
	pid := PID{p: p}
	g.spawn(func() { p.run(pid) })
	return pid
}

func (p *process) String() string {
	if name := p.getName(); name != "" {
		return fmt.Sprintf("Process<%d|%s>", p.id, name)
	}
	return fmt.Sprintf("Process<%d>", p.id)
}

// run drives the actor's whole lifecycle: Init, a Run loop, and finally
// Terminate, translating panics and context cancellation into exitreasons
// along the way. It always returns only after Terminate and any on_exit
// callback have completed, and after the mailbox has been closed.
func (p *process) run(self PID) {
	defer p.cancel()

	reason := p.loop(self)

	p.setStatus(exiting)
	if name := p.getName(); name != "" {
		Unregister(name)
	}

	er := exitreason.Wrap(reason)
	p.safeTerminate(self, er)
	p.mailbox.Close()
	p.setStatus(exited)

	if p.onExit != nil {
		p.safeOnExit(self, er)
	}
}

func (p *process) loop(self PID) error {
	state, err := p.safeInit(self)
	if err != nil {
		p.state = state
		return err
	}
	p.state = state

	for {
		if p.ctx.Err() != nil {
			return exitreason.Normal
		}

		newState, err := p.safeRun(self, state)
		state = newState
		p.state = state
		if err != nil {
			return err
		}
	}
}

func panicToErr(self fmt.Stringer, r any) error {
	if e, ok := r.(error); ok {
		return fmt.Errorf("%v panicked: %w, stack: %s", self, e, string(debug.Stack()))
	}
	return fmt.Errorf("%v panicked: %v, stack: %s", self, r, string(debug.Stack()))
}

func (p *process) safeInit(self PID) (state any, err error) {
	defer func() {
		if r := recover(); r != nil {
			e := panicToErr(p, r)
			Logger.Println(e)
			err = exitreason.Exception(e)
		}
	}()

	state, err = p.actor.Init(self)
	if err != nil {
		err = exitreason.Wrap(err)
	}
	return state, err
}

func (p *process) safeRun(self PID, state any) (newState any, err error) {
	defer func() {
		if r := recover(); r != nil {
			e := panicToErr(p, r)
			Logger.Println(e)
			newState = state
			err = exitreason.Exception(e)
		}
	}()

	newState, err = p.actor.Run(self, state)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			err = exitreason.Normal
		} else {
			err = exitreason.Wrap(err)
		}
	}
	return newState, err
}

func (p *process) safeTerminate(self PID, reason *exitreason.S) {
	defer func() {
		if r := recover(); r != nil {
			Logger.Println(panicToErr(p, r))
		}
	}()
	p.actor.Terminate(self, reason, p.state)
}

// safeOnExit runs the on_exit callback registered at [StartLink] time. Its
// errors are swallowed by design: the runtime has already committed to this
// exit and cannot meaningfully fail further on the callback's behalf.
func (p *process) safeOnExit(self PID, reason *exitreason.S) {
	defer func() {
		if r := recover(); r != nil {
			Logger.Println(panicToErr(p, r))
		}
	}()
	p.onExit(self, reason)
}

func (p *process) getStatus() processStatus {
	if p == nil {
		return exited
	}
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}

func (p *process) setStatus(s processStatus) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status = s
}

func (p *process) getName() Name {
	p.nameMu.RLock()
	defer p.nameMu.RUnlock()
	return p.name
}

func (p *process) setName(n Name) {
	p.nameMu.Lock()
	defer p.nameMu.Unlock()
	p.name = n
}
