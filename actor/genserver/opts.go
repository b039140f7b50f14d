package genserver

import (
	"time"

	"github.com/fizzAI/fauxtp/actor"
	"github.com/fizzAI/fauxtp/chronos"
)

type genSrvOpts struct {
	name         actor.Name
	startTimeout time.Duration
}

// StartOpts configures a server's [Start]/[StartLink] call.
type StartOpts interface {
	SetName(actor.Name)
	GetName() actor.Name
	SetStartTimeout(time.Duration)
	GetStartTimeout() time.Duration
}

func (o *genSrvOpts) SetName(name actor.Name) {
	o.name = name
}

func (o *genSrvOpts) GetName() actor.Name {
	return o.name
}

func (o *genSrvOpts) SetStartTimeout(tout time.Duration) {
	o.startTimeout = tout
}

func (o *genSrvOpts) GetStartTimeout() time.Duration {
	return o.startTimeout
}

// InheritOpts copies name and start timeout from an already-built StartOpts,
// useful when one server's options should seed another's (e.g. a supervisor
// passing its own start timeout down to a child it starts directly).
func InheritOpts(o StartOpts) StartOpt {
	return func(opts StartOpts) StartOpts {
		if o.GetName() != "" {
			opts.SetName(o.GetName())
		}
		if o.GetStartTimeout() != 0 {
			opts.SetStartTimeout(o.GetStartTimeout())
		}
		return opts
	}
}

// StartOpt mutates a [StartOpts] under construction; pass any number to
// [Start]/[StartLink].
type StartOpt func(opts StartOpts) StartOpts

// DefaultOpts returns the baseline options: no name, a 5-second start
// timeout.
func DefaultOpts() StartOpts {
	return &genSrvOpts{startTimeout: chronos.Dur("5s")}
}

// SetName registers name for the server as part of starting it.
func SetName(name actor.Name) StartOpt {
	return func(opts StartOpts) StartOpts {
		opts.SetName(name)
		return opts
	}
}

// SetStartTimeout overrides how long Start/StartLink waits for Init to
// complete before giving up and returning [exitreason.Timeout].
func SetStartTimeout(tout time.Duration) StartOpt {
	return func(opts StartOpts) StartOpts {
		opts.SetStartTimeout(tout)
		return opts
	}
}
