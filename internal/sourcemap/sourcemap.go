// Package sourcemap gives line-indexed access to a Dockerfile's source, for
// attaching snippets to violations and rendering context in reports.
package sourcemap

import (
	"bytes"
	"strings"
)

// SourceMap provides efficient access to source code by line.
//
// All line numbers are 1-based, matching violation locations.
type SourceMap struct {
	source []byte
	// lines are the individual lines without line endings.
	lines []string
}

// New creates a SourceMap from source content.
// Lines are split on \n; a trailing \r is dropped from every line.
func New(source []byte) *SourceMap {
	rawLines := bytes.Split(source, []byte{'\n'})
	// A final newline does not start another line.
	if len(rawLines) > 1 && len(rawLines[len(rawLines)-1]) == 0 {
		rawLines = rawLines[:len(rawLines)-1]
	}
	lines := make([]string, len(rawLines))
	for i, line := range rawLines {
		lines[i] = strings.TrimSuffix(string(line), "\r")
	}
	return &SourceMap{source: source, lines: lines}
}

// LineCount returns the total number of lines.
func (sm *SourceMap) LineCount() int {
	return len(sm.lines)
}

// Line returns the text of line n.
// Returns empty string if n is out of range.
func (sm *SourceMap) Line(n int) string {
	if n < 1 || n > len(sm.lines) {
		return ""
	}
	return sm.lines[n-1]
}

// Snippet returns lines start through end (inclusive) joined with newlines.
// The range is clamped to the file; an empty range yields "".
func (sm *SourceMap) Snippet(start, end int) string {
	start = max(start, 1)
	end = min(end, len(sm.lines))
	if start > end {
		return ""
	}
	return strings.Join(sm.lines[start-1:end], "\n")
}

// SnippetAround returns line n with up to before/after lines of context.
func (sm *SourceMap) SnippetAround(n, before, after int) string {
	return sm.Snippet(n-before, n+after)
}

// Source returns the raw source content.
// The returned slice should not be modified.
func (sm *SourceMap) Source() []byte {
	return sm.source
}
