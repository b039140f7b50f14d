package supervisor

import (
	"fmt"
	"time"

	"golang.org/x/exp/slices"

	"github.com/fizzAI/fauxtp/actor"
	"github.com/fizzAI/fauxtp/chronos"
)

type childSpecs struct {
	specs []ChildSpec
}

func (cs *childSpecs) get(childID string) (int, ChildSpec, error) {
	for idx, child := range cs.specs {
		if child.ID == childID {
			return idx, child, nil
		}
	}
	return 0, ChildSpec{}, fmt.Errorf("no child found by id: %v", childID)
}

func (cs *childSpecs) findByPID(pid actor.PID) (ChildSpec, error) {
	for _, childSpec := range cs.specs {
		if childSpec.pid.Equals(pid) {
			return childSpec, nil
		}
	}
	return ChildSpec{}, fmt.Errorf("no child matched pid: %v", pid)
}

func (cs *childSpecs) update(child ChildSpec) error {
	for idx, c := range cs.specs {
		if c.ID == child.ID {
			cs.specs[idx] = child
			return nil
		}
	}
	return fmt.Errorf("no child found by id: %v", child.ID)
}

func (cs *childSpecs) list() []ChildSpec {
	return cs.specs
}

func (cs *childSpecs) add(child ChildSpec) {
	cs.specs = append(cs.specs, child)
}

func (cs *childSpecs) delete(childID string) {
	cs.specs = slices.DeleteFunc(cs.specs, func(x ChildSpec) bool {
		return x.ID == childID
	})
}

// split divides specs at childID, which starts the second half.
func (cs *childSpecs) split(childID string) (*childSpecs, *childSpecs, error) {
	for idx, child := range cs.specs {
		if child.ID == childID {
			left := cs.specs[:idx]
			right := cs.specs[idx:]
			return &childSpecs{specs: left}, &childSpecs{specs: right}, nil
		}
	}
	return &childSpecs{}, &childSpecs{}, fmt.Errorf("could not split; no child id matched: %v", childID)
}

func (cs *childSpecs) append(in *childSpecs) error {
	cs.specs = append(cs.specs, in.specs...)
	return cs.checkDups()
}

func (cs *childSpecs) checkDups() error {
	seen := make(map[string]struct{})
	for _, spec := range cs.specs {
		if _, ok := seen[spec.ID]; ok {
			return fmt.Errorf("duplicate childspec id found: %s", spec.ID)
		}
		seen[spec.ID] = struct{}{}
	}
	return nil
}

func (cs *childSpecs) reverse() *childSpecs {
	reversed := make([]ChildSpec, len(cs.specs))
	copy(reversed, cs.specs)
	slices.Reverse(reversed)
	return &childSpecs{specs: reversed}
}

func (cs *childSpecs) copy() childSpecs {
	cp := make([]ChildSpec, len(cs.specs))
	copy(cp, cs.specs)
	return childSpecs{specs: cp}
}

func newChildSpecs(specs []ChildSpec) (*childSpecs, error) {
	cs := &childSpecs{specs: specs}
	if err := cs.checkDups(); err != nil {
		return cs, err
	}
	return cs, nil
}

type supervisorState struct {
	self     actor.PID
	group    *actor.Group
	args     any
	callback Supervisor

	children *childSpecs

	flags    SupFlagsS
	restarts []time.Time
}

// addRestart records a restart attempt against the sliding window and
// reports [MaxRestartsExceeded] if more than flags.MaxRestarts restarts have
// now happened within the trailing flags.MaxSeconds.
func (s supervisorState) addRestart() (supervisorState, error) {
	now := chronos.Now("")
	s.restarts = append(s.restarts, now)
	windowStart := now.Add(-chronos.Dur(fmt.Sprintf("%dms", int(s.flags.MaxSeconds*1000))))

	var err error
	kept := s.restarts[:0:0]
	count := 0
	for _, r := range s.restarts {
		if r.After(windowStart) {
			kept = append(kept, r)
			count++
			if count > s.flags.MaxRestarts {
				actor.DebugPrintf("supervisor[%v]: restart intensity exceeded", s.self)
				err = MaxRestartsExceeded
			}
		}
	}
	s.restarts = kept
	return s, err
}
