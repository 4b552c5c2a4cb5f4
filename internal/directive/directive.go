// Package directive extracts inline pragmas from Dockerfile comments.
//
// Three hadolint-compatible forms are recognised:
//   - # hadolint ignore=DL3008,SC2086         next instruction only
//   - # hadolint global ignore=DL3006         whole file
//   - # hadolint shell=powershell             dialect for later RUN lines
//
// An ignore without codes is inert. The codes "*" and "all" match every rule.
package directive

import "strings"

// Wildcard is the normalised code that matches every rule.
const Wildcard = "*"

// DirectiveType indicates the scope of a directive.
type DirectiveType int

const (
	// TypeNextLine affects only the next instruction.
	TypeNextLine DirectiveType = iota
	// TypeGlobal affects the entire file.
	TypeGlobal
	// TypeShell declares the shell dialect.
	TypeShell
)

// String returns a human-readable name for the directive type.
func (t DirectiveType) String() string {
	switch t {
	case TypeNextLine:
		return "next-line"
	case TypeGlobal:
		return "global"
	case TypeShell:
		return "shell"
	default:
		return "unknown"
	}
}

// Directive is one parsed pragma comment.
type Directive struct {
	Type DirectiveType

	// Rules holds the upper-cased codes of an ignore directive.
	Rules []string

	// Line is the 1-based line of the comment.
	Line int

	// Target is the 1-based line of the instruction a next-line directive
	// applies to, or 0 when no instruction follows.
	Target int

	// Shell is the dialect named by a shell directive.
	Shell string

	// RawText is the comment text.
	RawText string
}

// SuppressesRule reports whether the directive names code (or the wildcard).
func (d *Directive) SuppressesRule(code string) bool {
	if d.Type == TypeShell {
		return false
	}
	code = strings.ToUpper(code)
	for _, r := range d.Rules {
		if r == Wildcard || r == code {
			return true
		}
	}
	return false
}

// recordedLines returns the lines a next-line directive is recorded under.
// Lookups match a line or the line just above it, so recording under the
// comment line and under the line above the target covers blank lines and
// further comments in between.
func (d *Directive) recordedLines() []int {
	if d.Type != TypeNextLine {
		return nil
	}
	lines := []int{d.Line}
	if d.Target > d.Line+1 {
		lines = append(lines, d.Target-1)
	}
	return lines
}

// SuppressesLine reports whether the directive covers violations on line.
func (d *Directive) SuppressesLine(line int) bool {
	switch d.Type {
	case TypeGlobal:
		return true
	case TypeNextLine:
		for _, l := range d.recordedLines() {
			if line == l || line-1 == l {
				return true
			}
		}
	}
	return false
}

// ParseError describes a malformed pragma. Malformed pragmas are inert.
type ParseError struct {
	Line    int
	Message string
	RawText string
}

// ShellOverride is a shell declaration and the line it appears on.
type ShellOverride struct {
	Line  int
	Shell string
}

type codeSet map[string]bool

func (s codeSet) matches(code string) bool {
	return s[Wildcard] || s[strings.ToUpper(code)]
}

// PragmaState is the read-only pragma view of one file.
type PragmaState struct {
	global     codeSet
	lines      map[int]codeSet
	shells     []ShellOverride
	directives []Directive
	errors     []ParseError
}

func newPragmaState() *PragmaState {
	return &PragmaState{
		global: make(codeSet),
		lines:  make(map[int]codeSet),
	}
}

func (p *PragmaState) add(d Directive) {
	p.directives = append(p.directives, d)
	switch d.Type {
	case TypeGlobal:
		for _, r := range d.Rules {
			p.global[r] = true
		}
	case TypeNextLine:
		for _, line := range d.recordedLines() {
			set := p.lines[line]
			if set == nil {
				set = make(codeSet)
				p.lines[line] = set
			}
			for _, r := range d.Rules {
				set[r] = true
			}
		}
	case TypeShell:
		p.shells = append(p.shells, ShellOverride{Line: d.Line, Shell: d.Shell})
	}
}

// IsIgnored reports whether code is suppressed for a violation on line: it
// is globally ignored, or ignored on line, or on the line just above.
func (p *PragmaState) IsIgnored(code string, line int) bool {
	if p == nil {
		return false
	}
	if p.global.matches(code) {
		return true
	}
	if set, ok := p.lines[line]; ok && set.matches(code) {
		return true
	}
	if set, ok := p.lines[line-1]; ok && set.matches(code) {
		return true
	}
	return false
}

// IsGloballyIgnored reports whether code is ignored for the whole file.
func (p *PragmaState) IsGloballyIgnored(code string) bool {
	return p != nil && p.global.matches(code)
}

// Shell returns the last declared shell.
func (p *PragmaState) Shell() (string, bool) {
	if p == nil || len(p.shells) == 0 {
		return "", false
	}
	return p.shells[len(p.shells)-1].Shell, true
}

// ShellAt returns the shell declared most recently before line.
func (p *PragmaState) ShellAt(line int) (string, bool) {
	if p == nil {
		return "", false
	}
	shell, found := "", false
	for _, s := range p.shells {
		if s.Line >= line {
			break
		}
		shell, found = s.Shell, true
	}
	return shell, found
}

// Directives returns the parsed directives in file order.
func (p *PragmaState) Directives() []Directive {
	if p == nil {
		return nil
	}
	return p.directives
}

// Errors returns the malformed pragmas.
func (p *PragmaState) Errors() []ParseError {
	if p == nil {
		return nil
	}
	return p.errors
}
