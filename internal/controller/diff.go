package controller

import (
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// renderDiff produces a unified-ish line diff between two document texts.
// Line-level granularity keeps the output readable for multi-line
// definition-block rewrites.
func renderDiff(before, after string) string {
	dmp := diffpatch.New()

	fromRunes, toRunes, lines := dmp.DiffLinesToRunes(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMainRunes(fromRunes, toRunes, false), lines)

	var b strings.Builder

	for _, diff := range diffs {
		prefix := " "

		switch diff.Type {
		case diffpatch.DiffInsert:
			prefix = "+"
		case diffpatch.DiffDelete:
			prefix = "-"
		case diffpatch.DiffEqual:
			// Equal runs are elided; the surrounding file name carries the
			// context.
			continue
		}

		for _, line := range strings.SplitAfter(diff.Text, "\n") {
			if line == "" {
				continue
			}

			b.WriteString(prefix)
			b.WriteString(line)

			if !strings.HasSuffix(line, "\n") {
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}
