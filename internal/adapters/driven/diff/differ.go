// Package diff renders line diffs of descriptor changes using
// github.com/sergi/go-diff.
package diff

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/custodia-labs/mplemon/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.Differ = (*Differ)(nil)

// DefaultContext is the number of unchanged lines shown around a change.
const DefaultContext = 3

// Differ produces unified-style line diffs.
type Differ struct {
	dmp     *diffmatchpatch.DiffMatchPatch
	context int
}

// NewDiffer creates a differ showing context unchanged lines around each
// change. A negative context uses DefaultContext.
func NewDiffer(context int) *Differ {
	if context < 0 {
		context = DefaultContext
	}
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0
	return &Differ{dmp: dmp, context: context}
}

type lineOp struct {
	op   diffmatchpatch.Operation
	text string
	old  int
	new  int
}

// Diff returns the diff of before and after, or "" if they are equal.
func (d *Differ) Diff(name string, before, after []byte) string {
	if string(before) == string(after) {
		return ""
	}

	a, b, lineArray := d.dmp.DiffLinesToChars(string(before), string(after))
	diffs := d.dmp.DiffMain(a, b, false)
	diffs = d.dmp.DiffCharsToLines(diffs, lineArray)

	ops := toLines(diffs)
	if len(ops) == 0 {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- %s\n+++ %s\n", name, name)
	for _, h := range hunks(ops, d.context) {
		writeHunk(&sb, ops[h[0]:h[1]])
	}
	return sb.String()
}

// toLines flattens diffs into one operation per line, numbering lines on
// both sides from 1.
func toLines(diffs []diffmatchpatch.Diff) []lineOp {
	var ops []lineOp
	oldLine, newLine := 1, 1
	for _, df := range diffs {
		lines := strings.SplitAfter(df.Text, "\n")
		for _, ln := range lines {
			if ln == "" {
				continue
			}
			ln = strings.TrimSuffix(ln, "\n")
			op := lineOp{op: df.Type, text: ln, old: oldLine, new: newLine}
			switch df.Type {
			case diffmatchpatch.DiffEqual:
				oldLine++
				newLine++
			case diffmatchpatch.DiffDelete:
				oldLine++
			case diffmatchpatch.DiffInsert:
				newLine++
			}
			ops = append(ops, op)
		}
	}
	return ops
}

// hunks returns [start, end) ranges of ops covering every change plus
// context lines, merging ranges that touch.
func hunks(ops []lineOp, context int) [][2]int {
	var out [][2]int
	for i, op := range ops {
		if op.op == diffmatchpatch.DiffEqual {
			continue
		}
		start := max(i-context, 0)
		end := min(i+context+1, len(ops))
		if n := len(out); n > 0 && start <= out[n-1][1] {
			out[n-1][1] = max(out[n-1][1], end)
			continue
		}
		out = append(out, [2]int{start, end})
	}
	return out
}

func writeHunk(sb *strings.Builder, ops []lineOp) {
	oldCount, newCount := 0, 0
	for _, op := range ops {
		if op.op != diffmatchpatch.DiffInsert {
			oldCount++
		}
		if op.op != diffmatchpatch.DiffDelete {
			newCount++
		}
	}
	fmt.Fprintf(sb, "@@ -%d,%d +%d,%d @@\n", ops[0].old, oldCount, ops[0].new, newCount)
	for _, op := range ops {
		switch op.op {
		case diffmatchpatch.DiffInsert:
			sb.WriteString("+")
		case diffmatchpatch.DiffDelete:
			sb.WriteString("-")
		default:
			sb.WriteString(" ")
		}
		sb.WriteString(op.text)
		sb.WriteString("\n")
	}
}
