package actortest

import (
	"context"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/fizzAI/fauxtp/actor"
)

func TestReceiver_SatisfiesExactExpectation(t *testing.T) {
	group := actor.NewGroup(context.Background())
	pid, tr := New(t, group)
	tr.timeout = 200 * time.Millisecond

	tr.Expect("hello", gomock.Eq("hello"))
	actor.Send(pid, "hello")

	tr.Wait()
}

func TestReceiver_MatchesAnyOfType(t *testing.T) {
	group := actor.NewGroup(context.Background())
	pid, tr := New(t, group)
	tr.timeout = 200 * time.Millisecond

	tr.Expect(0, gomock.Any()).Times(1, 3)
	actor.Send(pid, 1)
	actor.Send(pid, 2)

	tr.Wait()
}
