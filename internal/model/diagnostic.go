package model

// Severity classifies a diagnostic produced while formatting a document.
type Severity string

const (
	// SeverityWarning marks conditions that are surfaced to the user but
	// never block output, e.g. a reference with no visible definition.
	SeverityWarning Severity = "warning"
	// SeverityError marks fatal per-document conditions.
	SeverityError Severity = "error"
)

// Diagnostic is one user-visible finding scoped to a single document.
// Diagnostics are plain data returned per document; the caller decides how
// to render them.
type Diagnostic struct {
	Severity Severity
	Scope    string // region name the finding belongs to
	Message  string
}
