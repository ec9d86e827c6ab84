package model

// Path represents a file system path.
type Path string

// FileResult holds the formatting outcome for a single document.
type FileResult struct {
	Path        Path
	Changed     bool
	Diagnostics []Diagnostic
	Err         error // fatal per-document error; other documents still run

	// Before and After carry the document text around the rewrite so the
	// caller can render a diff without re-reading the file. Populated only
	// when the document changed.
	Before string
	After  string
}

// DocumentStats summarizes one document for the list view.
type DocumentStats struct {
	Path        Path
	Title       string
	Shortcodes  int
	Links       int
	Definitions int
}
