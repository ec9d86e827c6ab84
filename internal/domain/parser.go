// Package domain implements the shortcode scope parser, the per-scope
// reference link rewriter and the tree reassembler that together form the
// formatting pipeline.
package domain

import (
	"errors"
	"regexp"

	m "github.com/mouse-blink/linkfmt/internal/model"
)

// ErrEmptyDocument is returned when parsing captures no lines at all.
var ErrEmptyDocument = errors.New("document is empty")

// Shortcode delimiters in both the `{{< >}}` and `{{% %}}` forms. Region
// names are restricted to an identifier character class; anything after the
// name is captured as an opaque argument string.
var (
	openTagRe  = regexp.MustCompile(`\{\{[<%]\s+([A-Za-z0-9_-]+)(.*)\s+[%>]\}\}`)
	closeTagRe = regexp.MustCompile(`\{\{[<%]\s+/([A-Za-z0-9_-]+)(.*)\s+[%>]\}\}`)
)

// Parser builds a scope tree out of a document's raw lines.
type Parser struct {
	oneLiners map[string]struct{}
}

// NewParser constructs a Parser with the default one-liner set. One-liner
// shortcodes never have a matching close marker and are treated as inert
// text rather than opening a scope.
func NewParser() *Parser {
	return &Parser{
		oneLiners: map[string]struct{}{
			"partial": {},
		},
	}
}

// Parse scans lines once and returns the root of the scope tree. The cursor
// state is a current node plus a line counter relative to that node: the
// counter is the index the line being processed occupies in the current
// node's capture, so recorded start/end lines are always parent-relative.
func (p *Parser) Parse(lines []string) (*m.Node, error) {
	root := m.NewNode(m.RootScopeName)
	current := root
	counter := 0

	for _, line := range lines {
		current.PushLine(line)

		// Open markers. Each one records its column on the enclosing node
		// (the position at which the opened scope will be spliced back) and,
		// unless it is a one-liner, creates a child. When several opens share
		// a line the scan descends into the last one after the pass.
		var created *m.Node

		for _, loc := range openTagRe.FindAllStringSubmatchIndex(line, -1) {
			name := line[loc[2]:loc[3]]
			current.Start = loc[0]

			if _, ok := p.oneLiners[name]; ok {
				continue
			}

			child := m.NewNode(name)
			child.Start = loc[0]
			current.Add(child)
			created = child
		}

		if created != nil {
			created.PushLine(line)
			created.StartLine = counter
			counter = 0
			current = created
		}

		// Close markers. A close whose name does not match the current node
		// is ignored, which tolerates delimiter-like substrings inside
		// argument text. A matching close on the opening line itself is the
		// inline case: the parent keeps its single placeholder line and the
		// column bounds recorded above carry the splice window.
		for _, loc := range closeTagRe.FindAllStringSubmatchIndex(line, -1) {
			name := line[loc[2]:loc[3]]
			current.End = loc[1]

			if name != current.Name || current.Parent == nil {
				continue
			}

			if counter == 0 {
				// Inline scope. The capture is trimmed to the column window
				// so reassembly can splice it between the prefix and suffix
				// of the shared line without duplicating either.
				current.Lines[len(current.Lines)-1] = line[current.Start:current.End]
				current.EndLine = current.StartLine
				current.Closed = true
				counter = current.EndLine
				current = current.Parent
			} else {
				current.EndLine = current.StartLine + 1
				current.Closed = true
				counter = current.EndLine
				current = current.Parent
				current.PushLine(line)
			}
		}

		counter++
	}

	if len(root.Lines) == 0 {
		return nil, ErrEmptyDocument
	}

	return root, nil
}
