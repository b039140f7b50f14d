package actor

import (
	"context"
	"testing"

	"gotest.tools/v3/assert"
)

type noopActor struct{}

func (noopActor) Init(PID) (any, error) { return nil, nil }

func (noopActor) Run(self PID, state any) (any, error) {
	<-SelfContext(self).Done()
	return state, SelfContext(self).Err()
}

func (noopActor) Terminate(PID, error, any) {}

func testSpawn(t *testing.T) PID {
	t.Helper()
	group := NewGroup(context.Background())
	handle := StartLink(group, noopActor{}, nil)
	t.Cleanup(handle.Scope.Cancel)
	return handle.PID
}

func TestRegister_ReturnsOK(t *testing.T) {
	name := Name("47785447-0764-40b8-b711-b7672eb0834e")
	pid := testSpawn(t)

	result := Register(name, pid)

	assert.Assert(t, result == nil)
}

func TestRegister_AlreadyRegistered(t *testing.T) {
	name1 := Name("09e3a237-fb7d-4b10-9c05-2b558ef0e111")
	name2 := Name("1d6df6e2-6b2f-4d8e-9a9d-8b2e5f6c0222")
	pid := testSpawn(t)

	assert.Assert(t, Register(name1, pid) == nil)
	err := Register(name2, pid)
	assert.Assert(t, err != nil)
	assert.Equal(t, err.Kind, AlreadyRegistered)
}

func TestRegister_NameInUse(t *testing.T) {
	name := Name("2a1c43aa-76d4-4eb1-9f36-3f6c8b7d0333")
	pid1 := testSpawn(t)
	pid2 := testSpawn(t)

	assert.Assert(t, Register(name, pid1) == nil)
	err := Register(name, pid2)
	assert.Assert(t, err != nil)
	assert.Equal(t, err.Kind, NameInUse)
}

func TestWhereIs_NameNotFound(t *testing.T) {
	nameNotUsed := Name("07671fe7-dc99-4f1b-a42d-43c462a14739")
	nameUsed := Name("e74c0f48-883b-4309-a357-b4d48e9f40bb")

	pid := testSpawn(t)
	Register(nameUsed, pid)

	_, exists := WhereIs(nameNotUsed)

	assert.Assert(t, !exists)
}

func TestWhereIs_ResolvesRegisteredName(t *testing.T) {
	name := Name("6b6a9e1e-8e77-4e61-9c5d-9e3d8cf40444")
	pid := testSpawn(t)
	Register(name, pid)

	resolved, exists := WhereIs(name)

	assert.Assert(t, exists)
	assert.Assert(t, resolved.Equals(pid))
}

func TestUnregister(t *testing.T) {
	name := Name("8c4e5a3d-2f1b-4a6e-9c3d-7e2f1a6b5555")
	pid := testSpawn(t)
	Register(name, pid)

	assert.Assert(t, Unregister(name))
	_, exists := WhereIs(name)
	assert.Assert(t, !exists)
	assert.Assert(t, !Unregister(name))
}

func TestRegister_DeadProcess(t *testing.T) {
	name := Name("f1a2b3c4-d5e6-4f7a-8b9c-0d1e2f3a6666")
	group := NewGroup(context.Background())
	handle := StartLink(group, noopActor{}, nil)
	handle.Scope.Cancel()
	group.Wait()

	err := Register(name, handle.PID)
	assert.Assert(t, err != nil)
	assert.Equal(t, err.Kind, NoProc)
}

func TestRegister_BadName(t *testing.T) {
	pid := testSpawn(t)

	err := Register(Name(""), pid)
	assert.Assert(t, err != nil)
	assert.Equal(t, err.Kind, BadName)
}
