package domain

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	m "github.com/mouse-blink/linkfmt/internal/model"
)

// ignoredScope names the region whose content is passed through verbatim.
// Literal code must never be rewritten.
const ignoredScope = "code-block"

var (
	// A footnote-style definition: optional leading whitespace, a bracketed
	// integer index, a colon, a URL token.
	refDefRe     = regexp.MustCompile(`(?m)^[ \t]*\[(\d+)\]: (\S+)`)
	refDefLineRe = regexp.MustCompile(`^[ \t]*\[(\d+)\]: (\S+)`)

	// A reference-style use: [text][N].
	refUseRe = regexp.MustCompile(`\[[^\]\n]*\]\[(\d+)\]`)

	// An inline link: [text](URL). In-page anchors and query-only targets
	// are filtered by the caller since the URL grammar itself is shared.
	inlineLinkRe = regexp.MustCompile(`\[[^\]\n]*\]\(([^()\s]+)\)`)
)

// Separator control characters that survive copy-paste from rich editors.
var separatorStripper = strings.NewReplacer(
	"\u2028", "", // line separator
	"\u2029", "", // paragraph separator
	"\u001e", "", // record separator
)

// DuplicateRefError is the fatal condition raised when two footnote
// definitions in the same scope reuse one index. Both conflicting
// definitions are reported and the document is not written.
type DuplicateRefError struct {
	Scope  string
	Index  string
	First  string
	Second string
}

func (e *DuplicateRefError) Error() string {
	return fmt.Sprintf("duplicated reference index in scope %q:\n\t[%s]: %s\n\t[%s]: %s",
		e.Scope, e.Index, e.Second, e.Index, e.First)
}

// Rewriter produces a scope's ModifiedLines from its raw capture. Each scope
// is rewritten independently of its siblings and ancestors; that isolation
// is what makes reference numbering per-region rather than global.
type Rewriter struct{}

// NewRewriter constructs a Rewriter.
func NewRewriter() *Rewriter {
	return &Rewriter{}
}

// RewriteScope rewrites one node's links and writes its ModifiedLines.
// Returned diagnostics are warnings only; a non-nil error is fatal for the
// whole document.
//
// Only lines the node itself owns are touched: placeholder lines covered by
// a child's recorded extent belong to that child and must stay byte-
// identical here, or the child's recorded splice positions would go stale.
func (r *Rewriter) RewriteScope(node *m.Node) ([]m.Diagnostic, error) {
	if node.Name == ignoredScope {
		node.ModifiedLines = append([]string(nil), node.Lines...)
		return nil, nil
	}

	owned := ownedLines(node)
	content := joinOwned(node.Lines, owned)

	refs, order, err := collectDefinitions(node, content)
	if err != nil {
		return nil, err
	}

	diags := orphanReferences(node, content, refs)

	// The definition block extent is located against the original lines;
	// the per-line rewriting below never changes the line count, so the
	// range stays valid in ModifiedLines.
	defStart, defEnd := definitionRange(node.Lines, owned)

	// Inline every resolvable reference, lowest index first. Both link
	// grammars are line-local, so per-line replacement on owned lines is
	// the scoped equivalent of rewriting one concatenated blob.
	modified := append([]string(nil), node.Lines...)

	indices := sortedIndices(order)
	forEachOwned(modified, owned, func(line string) string {
		for _, idx := range indices {
			line = strings.ReplaceAll(line, "]["+idx+"]", "]("+refs[idx]+")")
		}

		return line
	})

	urls := collectInlineURLs(joinOwned(modified, owned))
	final, ordered := assignIndices(urls, refs, order)

	forEachOwned(modified, owned, func(line string) string {
		for _, url := range urls {
			line = strings.ReplaceAll(line, "]("+url+")", "]["+strconv.Itoa(final[url])+"]")
		}

		return separatorStripper.Replace(line)
	})

	node.ModifiedLines = modified

	defs := make([]string, 0, len(ordered))
	for i, url := range ordered {
		defs = append(defs, fmt.Sprintf("[%d]: %s\n", i+1, url))
	}

	r.placeDefinitions(node, defs, defStart, defEnd)

	return diags, nil
}

// ownedLines marks which of the node's lines hold its own content. Lines
// inside a child's recorded extent are placeholders for that child; a scope
// left open at end of document owns everything from its start line on.
func ownedLines(node *m.Node) []bool {
	owned := make([]bool, len(node.Lines))
	for i := range owned {
		owned[i] = true
	}

	for _, child := range node.Children {
		end := child.EndLine
		if !child.Closed {
			end = len(owned) - 1
		}

		for i := child.StartLine; i <= end && i < len(owned); i++ {
			if i >= 0 {
				owned[i] = false
			}
		}
	}

	return owned
}

func joinOwned(lines []string, owned []bool) string {
	var b strings.Builder

	for i, line := range lines {
		if owned[i] {
			b.WriteString(line)
		}
	}

	return b.String()
}

func forEachOwned(lines []string, owned []bool, fn func(string) string) {
	for i, line := range lines {
		if owned[i] {
			lines[i] = fn(line)
		}
	}
}

// collectDefinitions gathers footnote definitions, keeping the first
// occurrence of each index and failing on a reuse.
func collectDefinitions(node *m.Node, content string) (map[string]string, []string, error) {
	refs := make(map[string]string)

	var order []string

	for _, match := range refDefRe.FindAllStringSubmatch(content, -1) {
		idx, url := match[1], match[2]
		if prev, ok := refs[idx]; ok {
			return nil, nil, &DuplicateRefError{
				Scope:  node.Name,
				Index:  idx,
				First:  prev,
				Second: url,
			}
		}

		refs[idx] = url
		order = append(order, idx)
	}

	return refs, order, nil
}

// orphanReferences flags reference uses with no definition visible in this
// scope. The definition may legitimately live in an ancestor scope, so this
// is a warning and the document is still produced.
func orphanReferences(node *m.Node, content string, refs map[string]string) []m.Diagnostic {
	var diags []m.Diagnostic

	seen := make(map[string]struct{})

	for _, match := range refUseRe.FindAllStringSubmatch(content, -1) {
		idx := match[1]
		if _, ok := refs[idx]; ok {
			continue
		}

		if _, dup := seen[idx]; dup {
			continue
		}

		seen[idx] = struct{}{}
		diags = append(diags, m.Diagnostic{
			Severity: m.SeverityWarning,
			Scope:    node.Name,
			Message:  fmt.Sprintf("reference [%s] has no definition in this scope", idx),
		})
	}

	return diags
}

// definitionRange returns the inclusive line range of the footnote
// definition block in the node's own lines, or (-1, -1) when none exists.
func definitionRange(lines []string, owned []bool) (int, int) {
	start, end := -1, -1

	for i, line := range lines {
		if !owned[i] || !refDefLineRe.MatchString(line) {
			continue
		}

		if start < 0 {
			start = i
		}

		end = i
	}

	return start, end
}

// collectInlineURLs returns the distinct inline-link targets in order of
// appearance, excluding in-page anchors and query-only targets.
func collectInlineURLs(content string) []string {
	var urls []string

	seen := make(map[string]struct{})

	for _, match := range inlineLinkRe.FindAllStringSubmatch(content, -1) {
		url := match[1]
		if strings.HasPrefix(url, "#") || strings.HasPrefix(url, "?") {
			continue
		}

		if _, ok := seen[url]; ok {
			continue
		}

		seen[url] = struct{}{}
		urls = append(urls, url)
	}

	return urls
}

// assignIndices computes the published index for every URL. URLs that held
// an index before keep their relative order and are packed into a contiguous
// run starting at 1; URLs seen for the first time continue the run in order
// of appearance. Returns the index map and the URLs in index order.
func assignIndices(urls []string, refs map[string]string, order []string) (map[string]int, []string) {
	inverse := make(map[string]string)
	for _, idx := range order {
		if _, ok := inverse[refs[idx]]; !ok {
			inverse[refs[idx]] = idx
		}
	}

	var reused, fresh []string

	for _, url := range urls {
		if _, ok := inverse[url]; ok {
			reused = append(reused, url)
		} else {
			fresh = append(fresh, url)
		}
	}

	sort.SliceStable(reused, func(i, j int) bool {
		return numericLess(inverse[reused[i]], inverse[reused[j]])
	})

	final := make(map[string]int, len(urls))
	ordered := make([]string, 0, len(urls))

	for _, url := range append(reused, fresh...) {
		final[url] = len(ordered) + 1
		ordered = append(ordered, url)
	}

	return final, ordered
}

// placeDefinitions splices the regenerated definition block into
// ModifiedLines. With no prior block the insertion point is the end of the
// scope's content, or one line before the end for non-root scopes so the
// block lands before the closing delimiter line.
func (r *Rewriter) placeDefinitions(node *m.Node, defs []string, defStart, defEnd int) {
	if defStart < 0 {
		if len(defs) == 0 {
			return
		}

		at := len(node.ModifiedLines)
		if !node.IsRoot() && at > 0 {
			at--
		}

		defStart, defEnd = at, at-1
	}

	lines := node.ModifiedLines
	tail := append([]string(nil), lines[defEnd+1:]...)
	lines = append(lines[:defStart:defStart], defs...)
	node.ModifiedLines = append(lines, tail...)
}

// sortedIndices returns the definition indices in ascending numeric order.
func sortedIndices(order []string) []string {
	idxs := append([]string(nil), order...)
	sort.Slice(idxs, func(i, j int) bool { return numericLess(idxs[i], idxs[j]) })

	return idxs
}

func numericLess(a, b string) bool {
	ai, aerr := strconv.Atoi(a)
	bi, berr := strconv.Atoi(b)

	if aerr != nil || berr != nil {
		return a < b
	}

	return ai < bi
}

// splitLines splits text into lines that keep their trailing newline, so a
// later join reproduces the input byte for byte, including a missing final
// newline.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}

	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return lines
}
