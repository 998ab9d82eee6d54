package clipboard

import (
	stderrors "errors"
	"testing"
)

func TestMemory_WriteText(t *testing.T) {
	var m Memory
	if err := m.WriteText("def run(context): pass"); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	if got := m.Text(); got != "def run(context): pass" {
		t.Errorf("Text() = %q", got)
	}
}

func TestMemory_Err(t *testing.T) {
	m := Memory{Err: stderrors.New("denied")}
	if err := m.WriteText("x"); err == nil {
		t.Error("expected error")
	}
	if m.Text() != "" {
		t.Error("failed write should not change the text")
	}
}

func TestWritersImplementInterface(t *testing.T) {
	var _ Writer = NewSystem()
	var _ Writer = &Memory{}
}
