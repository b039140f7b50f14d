package supervisor

import "github.com/fizzAI/fauxtp/actor"

// defaultSup is the trivial [Supervisor] behind [StartDefaultLink]: its
// child list and flags are fixed at construction, so Init has nothing to
// compute.
type defaultSup struct {
	children []ChildSpec
	supflags SupFlagsS
}

func (ds defaultSup) Init(self actor.PID, args any) InitResult {
	return InitResult{SupFlags: ds.supflags, ChildSpecs: ds.children}
}
