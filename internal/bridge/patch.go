package bridge

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// PatchOp marks a line in a Patch.
type PatchOp int

const (
	PatchContext PatchOp = iota
	PatchAdded
	PatchRemoved
)

// PatchLine is one line of a line-level diff.
type PatchLine struct {
	Op   PatchOp
	Text string
}

// String returns the line with its unified-diff prefix.
func (l PatchLine) String() string {
	switch l.Op {
	case PatchAdded:
		return "+ " + l.Text
	case PatchRemoved:
		return "- " + l.Text
	}
	return "  " + l.Text
}

// Patch is the line-level difference between two versions of code.
type Patch struct {
	Lines   []PatchLine
	Added   int
	Removed int
}

// Empty reports whether the two versions were identical.
func (p Patch) Empty() bool {
	return p.Added == 0 && p.Removed == 0
}

// Summary returns a compact "+N -M" description.
func (p Patch) Summary() string {
	return fmt.Sprintf("+%d -%d", p.Added, p.Removed)
}

// Diff computes the line-level patch from before to after.
func Diff(before, after string) Patch {
	dmp := diffmatchpatch.New()
	beforeChars, afterChars, lineArray := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffMain(beforeChars, afterChars, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var p Patch
	for _, d := range diffs {
		chunk := strings.Split(d.Text, "\n")
		if len(chunk) > 0 && chunk[len(chunk)-1] == "" {
			chunk = chunk[:len(chunk)-1]
		}
		for _, line := range chunk {
			switch d.Type {
			case diffmatchpatch.DiffEqual:
				p.Lines = append(p.Lines, PatchLine{Op: PatchContext, Text: line})
			case diffmatchpatch.DiffDelete:
				p.Lines = append(p.Lines, PatchLine{Op: PatchRemoved, Text: line})
				p.Removed++
			case diffmatchpatch.DiffInsert:
				p.Lines = append(p.Lines, PatchLine{Op: PatchAdded, Text: line})
				p.Added++
			}
		}
	}
	return p
}
