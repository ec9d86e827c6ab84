package domain

import (
	"strings"

	m "github.com/mouse-blink/linkfmt/internal/model"
)

// Assemble flattens a scope whose entire subtree already has ModifiedLines
// populated back into the line sequence it contributes to its parent.
//
// Children are spliced in reverse insertion order: every recorded position
// was computed against the original, unspliced buffer, and a splice only
// shifts line numbers after itself, so processing the highest positions
// first keeps the remaining siblings' positions valid. This ordering is
// load-bearing; do not change it.
func Assemble(node *m.Node) []string {
	output := append([]string(nil), node.ModifiedLines...)

	for i := len(node.Children) - 1; i >= 0; i-- {
		child := node.Children[i]
		assembled := Assemble(child)

		switch {
		case !child.Closed:
			// The scope ran to end of document; the parent only ever saw the
			// opening line, so the child's output replaces that placeholder.
			output = spliceLines(output, child.StartLine, child.StartLine, assembled)
		case child.Inline():
			output = spliceInline(output, child, assembled)
		default:
			output = spliceLines(output, child.StartLine, child.EndLine, assembled)
		}
	}

	return output
}

// spliceLines replaces the inclusive range [start, end] of buffer with
// replacement, which may have a different length.
func spliceLines(buffer []string, start, end int, replacement []string) []string {
	if start < 0 || start >= len(buffer) {
		return buffer
	}

	if end >= len(buffer) {
		end = len(buffer) - 1
	}

	tail := append([]string(nil), buffer[end+1:]...)
	out := append(buffer[:start:start], replacement...)

	return append(out, tail...)
}

// spliceInline replaces the child's column window on its single shared line
// with the child's whole output joined into one string. An empty replacement
// leaves the line untouched; it must not delete the surrounding text.
func spliceInline(buffer []string, child *m.Node, assembled []string) []string {
	if child.StartLine < 0 || child.StartLine >= len(buffer) || len(assembled) == 0 {
		return buffer
	}

	line := buffer[child.StartLine]

	start, end := child.Start, child.End
	if start > len(line) {
		start = len(line)
	}

	if end > len(line) {
		end = len(line)
	}

	if end < start {
		end = start
	}

	buffer[child.StartLine] = line[:start] + strings.Join(assembled, "") + line[end:]

	return buffer
}
