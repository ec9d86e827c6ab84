package domain

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/mouse-blink/linkfmt/internal/adapter"
	m "github.com/mouse-blink/linkfmt/internal/model"
)

const documentFileMode = 0o644

// RunArgs configures a formatting run.
type RunArgs struct {
	Paths   []m.Path
	Exclude []string
	Threads int

	// Check verifies whether formatting would change anything without
	// writing. Diff also suppresses writes but keeps the texts around so the
	// caller can render the pending change.
	Check bool
	Diff  bool
}

// Workflow drives the pipeline across one or many documents.
type Workflow interface {
	Run(args RunArgs) ([]m.FileResult, error)
	Stats(paths []m.Path, exclude []string) ([]m.DocumentStats, error)
}

type workflow struct {
	fs        adapter.DocFSAdapter
	formatter Formatter
}

// NewWorkflow creates a Workflow backed by the provided filesystem adapter.
func NewWorkflow(fs adapter.DocFSAdapter) Workflow {
	return &workflow{
		fs:        fs,
		formatter: NewFormatter(),
	}
}

// Run formats every discovered document. Documents are fully independent, so
// they are processed in parallel up to args.Threads; one document's fatal
// error never stops the others, it is carried in that document's result.
func (w *workflow) Run(args RunArgs) ([]m.FileResult, error) {
	files, err := w.fs.Discover(args.Paths, args.Exclude)
	if err != nil {
		return nil, err
	}

	threads := args.Threads
	if threads <= 0 {
		threads = 1
	}

	results := make([]m.FileResult, len(files))

	g := new(errgroup.Group)
	g.SetLimit(threads)

	for i, path := range files {
		g.Go(func() error {
			results[i] = w.formatFile(path, args)
			return nil
		})
	}

	// Per-document errors live in the results; the group never fails.
	_ = g.Wait()

	return results, nil
}

// formatFile runs the pipeline for one document. The file is overwritten at
// most once, only after the whole pipeline succeeded and only when the
// content actually changed.
func (w *workflow) formatFile(path m.Path, args RunArgs) m.FileResult {
	result := m.FileResult{Path: path}

	raw, err := w.fs.ReadFile(path)
	if err != nil {
		result.Err = fmt.Errorf("read %s: %w", path, err)
		return result
	}

	before := string(raw)

	after, diags, err := w.formatter.Format(before)
	result.Diagnostics = diags

	if err != nil {
		result.Err = fmt.Errorf("format %s: %w", path, err)
		return result
	}

	if after == before {
		return result
	}

	result.Changed = true
	result.Before = before
	result.After = after

	if args.Check || args.Diff {
		return result
	}

	if err := w.fs.WriteFile(path, []byte(after), documentFileMode); err != nil {
		result.Err = fmt.Errorf("write %s: %w", path, err)
	}

	return result
}

// Stats summarizes the discovered documents for the list view.
func (w *workflow) Stats(paths []m.Path, exclude []string) ([]m.DocumentStats, error) {
	files, err := w.fs.Discover(paths, exclude)
	if err != nil {
		return nil, err
	}

	stats := make([]m.DocumentStats, 0, len(files))

	for _, path := range files {
		raw, err := w.fs.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}

		content := string(raw)

		stat := m.DocumentStats{
			Path:        path,
			Shortcodes:  len(openTagRe.FindAllString(content, -1)),
			Links:       len(inlineLinkRe.FindAllString(content, -1)) + len(refUseRe.FindAllString(content, -1)),
			Definitions: len(refDefRe.FindAllString(content, -1)),
		}

		if fm, _, err := ParseFrontMatter(splitLines(content)); err == nil && fm != nil {
			stat.Title = fm.Title
		}

		stats = append(stats, stat)
	}

	return stats, nil
}
