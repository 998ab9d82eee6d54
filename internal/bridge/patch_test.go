package bridge

import (
	"strings"
	"testing"
)

func TestDiff(t *testing.T) {
	before := "a\nb\nc\n"
	after := "a\nB\nc\nd\n"

	p := Diff(before, after)
	if p.Added != 2 || p.Removed != 1 {
		t.Errorf("Added/Removed = %d/%d, want 2/1", p.Added, p.Removed)
	}
	if p.Summary() != "+2 -1" {
		t.Errorf("Summary() = %q", p.Summary())
	}
	var got []string
	for _, l := range p.Lines {
		got = append(got, l.String())
	}
	want := []string{"  a", "- b", "+ B", "  c", "+ d"}
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Errorf("patch lines = %q, want %q", got, want)
	}
}

func TestDiff_Identical(t *testing.T) {
	p := Diff(BracketCode, BracketCode)
	if !p.Empty() {
		t.Errorf("expected empty patch, got %s", p.Summary())
	}
}

func TestDiff_FixtureFix(t *testing.T) {
	fixed := insertNullGuard(BracketCode)
	p := Diff(BracketCode, fixed)
	if p.Added != 2 || p.Removed != 0 {
		t.Errorf("null guard patch = %s, want +2 -0", p.Summary())
	}
}
