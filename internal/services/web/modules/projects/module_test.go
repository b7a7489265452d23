package projects

import "testing"

func TestModuleIDAndPrefix(t *testing.T) {
	t.Parallel()

	m := New(WithGateway(Gateway{Projects: newFakeProjects(), Tasks: &fakeTasks{}, Users: &fakeUsers{}}))
	if got := m.ID(); got != "projects" {
		t.Fatalf("ID() = %q, want %q", got, "projects")
	}
	mount, err := m.Mount()
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if mount.Prefix != "/projects/" {
		t.Fatalf("prefix = %q, want %q", mount.Prefix, "/projects/")
	}
}

func TestMountRequiresCompleteGateway(t *testing.T) {
	t.Parallel()

	m := New(WithGateway(Gateway{Projects: newFakeProjects()}))
	if m.Healthy() {
		t.Fatal("incomplete gateway reported healthy")
	}
	if _, err := m.Mount(); err == nil {
		t.Fatal("expected mount error")
	}
}
