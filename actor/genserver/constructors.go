package genserver

import "github.com/fizzAI/fauxtp/actor"

// DefaultCallbacks is embedded by a GenServer that only needs Init and
// HandleCall (and maybe HandleCast) and wants every other callback to
// behave like the spec's defaults: HandleCast/HandleInfo return state
// unchanged, the task callbacks log an unexpected outcome and carry on, and
// Terminate does nothing. It provides neither Init nor HandleCall, so the
// embedding server always implements those two. Embed it by value and
// override whichever other methods your server actually needs:
//
//	type Counter struct {
//		genserver.DefaultCallbacks[int]
//	}
//	func (Counter) Init(self actor.PID, args any) (int, error) {
//		return 0, nil
//	}
//	func (Counter) HandleCall(self actor.PID, req any, ref actor.Ref, from actor.PID, n int) (any, int, error) {
//		return n, n + 1, nil
//	}
type DefaultCallbacks[STATE any] struct{}

func (DefaultCallbacks[STATE]) HandleCast(self actor.PID, request any, state STATE) (STATE, error) {
	return state, nil
}

func (DefaultCallbacks[STATE]) HandleInfo(self actor.PID, msg any, state STATE) (STATE, error) {
	return state, nil
}

func (DefaultCallbacks[STATE]) HandleTaskSuccess(self actor.PID, taskPID actor.PID, result any, state STATE) (STATE, error) {
	actor.DebugPrintf("genserver[%v]: background task %v succeeded with %+v but HandleTaskSuccess was not overridden", self, taskPID, result)
	return state, nil
}

func (DefaultCallbacks[STATE]) HandleTaskFailure(self actor.PID, taskPID actor.PID, reason error, state STATE) (STATE, error) {
	actor.DebugPrintf("genserver[%v]: background task %v failed with %v but HandleTaskFailure was not overridden", self, taskPID, reason)
	return state, nil
}

func (DefaultCallbacks[STATE]) Terminate(self actor.PID, reason error, state STATE) {}
