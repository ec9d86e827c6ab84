package domain

import (
	"strings"

	m "github.com/mouse-blink/linkfmt/internal/model"
)

// Formatter is the reusable entry point for the whole pipeline: text in,
// transformed text out, no filesystem side effects. Warnings come back as
// diagnostics; a non-nil error means the document must not be written.
type Formatter interface {
	Format(text string) (string, []m.Diagnostic, error)
}

type formatter struct {
	parser   *Parser
	rewriter *Rewriter
}

// NewFormatter constructs a Formatter with the default shortcode
// configuration.
func NewFormatter() Formatter {
	return &formatter{
		parser:   NewParser(),
		rewriter: NewRewriter(),
	}
}

// Format parses the document into its scope tree, rewrites every scope
// independently and reassembles the result. Rewriting is per-node with no
// cross-node reads, so any visit order works; a plain pre-order walk is
// used. Reassembly order is fixed by Assemble.
func (f *formatter) Format(text string) (string, []m.Diagnostic, error) {
	root, err := f.parser.Parse(splitLines(text))
	if err != nil {
		return "", nil, err
	}

	var diags []m.Diagnostic

	err = root.Walk(func(node *m.Node) error {
		nodeDiags, rerr := f.rewriter.RewriteScope(node)
		diags = append(diags, nodeDiags...)

		return rerr
	})
	if err != nil {
		return "", diags, err
	}

	return strings.Join(Assemble(root), ""), diags, nil
}
