// Package dockerfile turns Dockerfile text into a positioned sequence of
// typed instructions.
//
// Parsing is done by BuildKit's Dockerfile parser. The package adds the two
// things BuildKit does not do: comments become instructions of their own, and
// parsing never fails. When BuildKit rejects a file, the instruction it
// points at becomes Unknown and the text around it is parsed again, so one
// malformed instruction does not hide the rest of the file from the rules.
package dockerfile

import (
	"errors"
	"strings"

	"github.com/moby/buildkit/frontend/dockerfile/parser"
)

// DefaultEscapeToken is the continuation character unless a parser directive
// says otherwise.
const DefaultEscapeToken = parser.DefaultEscapeToken

// ParseResult is the outcome of parsing one file.
type ParseResult struct {
	Instructions []InstructionPosition
	// EscapeToken is the continuation character in effect.
	EscapeToken rune
	// Directives holds parser directives ("syntax", "escape", "check") by lower-case name.
	Directives map[string]string
	// TotalLines is the number of physical lines.
	TotalLines int
	// Recovered lists the BuildKit errors that were turned into Unknown
	// instructions.
	Recovered []RecoveredError
}

// RecoveredError is a BuildKit parse error the parser recovered from.
type RecoveredError struct {
	Line    int
	Message string
}

// Parse returns the instructions of text in file order.
func Parse(text string) []InstructionPosition {
	return ParseDetailed(text).Instructions
}

// ParseDetailed parses text and also reports parser directives and the
// errors recovered from.
func ParseDetailed(text string) *ParseResult {
	lines := splitLines(text)
	res := &ParseResult{
		EscapeToken: DefaultEscapeToken,
		Directives:  make(map[string]string),
		TotalLines:  len(lines),
	}

	var dp parser.DirectiveParser
	// A repeated directive is an error; the ones before it still count.
	found, _ := dp.ParseAll([]byte(text))
	for _, d := range found {
		res.Directives[d.Name] = d.Value
	}
	if esc := res.Directives["escape"]; esc == "`" || esc == `\` {
		res.EscapeToken = rune(esc[0])
	}

	p := &segmentParser{lines: lines, res: res}
	p.parse(0, len(lines))

	res.Instructions = withComments(lines, p.items)
	return res
}

// segmentParser runs BuildKit over line ranges of one file.
type segmentParser struct {
	lines []string
	res   *ParseResult
	items []InstructionPosition
	// noDirectives drops the parser directives of the first range after
	// BuildKit rejected them.
	noDirectives bool
}

// parse handles lines[start:end].
func (p *segmentParser) parse(start, end int) {
	if !hasInstruction(p.lines[start:end]) {
		return
	}

	src, offset := p.source(start, end)
	ast, err := parser.Parse(strings.NewReader(src))
	if err == nil {
		for _, node := range ast.AST.Children {
			p.items = append(p.items, p.position(node, start-offset))
		}
		return
	}

	idx := start + errorLine(err) - 1 - offset
	switch {
	case idx >= start && idx < end && !isBlankOrComment(p.lines[idx]):
	case start == 0 && !p.noDirectives:
		// Malformed or repeated parser directives are reported on a
		// comment line; parse again without them.
		p.noDirectives = true
		p.res.EscapeToken = DefaultEscapeToken
		p.res.Recovered = append(p.res.Recovered, RecoveredError{Line: max(idx+1, 1), Message: errorMessage(err)})
		p.parse(start, end)
		return
	default:
		p.unknownLines(start, end, err)
		return
	}

	last := logicalEnd(p.lines, idx, end, p.res.EscapeToken)
	p.parse(start, idx)
	p.res.Recovered = append(p.res.Recovered, RecoveredError{Line: idx + 1, Message: errorMessage(err)})
	p.items = append(p.items, unknownAt(p.lines, idx, last, p.res.EscapeToken))
	p.parse(last+1, end)
}

// source returns the text of lines[start:end] and how many header lines were
// prepended. Ranges after the first start with a header line that restores
// the escape token and keeps their leading comments from being read as
// parser directives.
func (p *segmentParser) source(start, end int) (string, int) {
	body := strings.Join(p.lines[start:end], "\n") + "\n"
	if start == 0 && !p.noDirectives {
		return body, 0
	}
	header := ""
	if p.res.EscapeToken != DefaultEscapeToken {
		header = "# escape=" + string(p.res.EscapeToken)
	}
	return header + "\n" + body, 1
}

// unknownLines turns every logical line of lines[start:end] into Unknown.
// Used only when BuildKit reports an error without a usable location.
func (p *segmentParser) unknownLines(start, end int, err error) {
	p.res.Recovered = append(p.res.Recovered, RecoveredError{Line: start + 1, Message: errorMessage(err)})
	for i := start; i < end; i++ {
		if isBlankOrComment(p.lines[i]) {
			continue
		}
		last := logicalEnd(p.lines, i, end, p.res.EscapeToken)
		p.items = append(p.items, unknownAt(p.lines, i, last, p.res.EscapeToken))
		i = last
	}
}

// position maps a BuildKit node whose lines are relative to base.
func (p *segmentParser) position(node *parser.Node, base int) InstructionPosition {
	return InstructionPosition{
		Line:        node.StartLine + base,
		EndLine:     node.EndLine + base,
		Raw:         strings.TrimSpace(node.Original),
		Instruction: fromNode(node, nodeHeredocs(node), p.res.EscapeToken),
	}
}

func errorLine(err error) int {
	var le *parser.LocationError
	if errors.As(err, &le) && len(le.Locations) > 0 && len(le.Locations[0]) > 0 {
		return le.Locations[0][0].Start.Line
	}
	return 0
}

func errorMessage(err error) string {
	var le *parser.LocationError
	if errors.As(err, &le) && le.Unwrap() != nil {
		return le.Unwrap().Error()
	}
	return err.Error()
}

// withComments merges the comment lines that lie outside every instruction
// into items. Comments inside continuations and heredoc bodies are not
// comment instructions.
func withComments(lines []string, items []InstructionPosition) []InstructionPosition {
	covered := make([]bool, len(lines))
	for _, it := range items {
		for l := it.Line; l <= it.EndLine && l <= len(lines); l++ {
			if l >= 1 {
				covered[l-1] = true
			}
		}
	}

	out := make([]InstructionPosition, 0, len(items))
	next := 0
	for i, line := range lines {
		for next < len(items) && items[next].Line <= i+1 {
			out = append(out, items[next])
			next++
		}
		trimmed := strings.TrimSpace(line)
		if covered[i] || !strings.HasPrefix(trimmed, "#") {
			continue
		}
		out = append(out, InstructionPosition{
			Line:        i + 1,
			EndLine:     i + 1,
			Raw:         trimmed,
			Instruction: Comment{Text: strings.TrimSpace(trimmed[1:])},
		})
	}
	return append(out, items[next:]...)
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	if len(lines) > 0 {
		lines[0] = strings.TrimPrefix(lines[0], "\ufeff")
	}
	return lines
}

func isBlankOrComment(line string) bool {
	t := strings.TrimSpace(line)
	return t == "" || strings.HasPrefix(t, "#")
}

func hasInstruction(lines []string) bool {
	for _, l := range lines {
		if !isBlankOrComment(l) {
			return true
		}
	}
	return false
}

// logicalEnd returns the index of the last physical line of the logical
// line starting at lines[i], bounded by end. Comment and blank lines inside
// a continuation belong to it.
func logicalEnd(lines []string, i, end int, escape rune) int {
	last := i
	for j := i; j < end; j++ {
		if j > i && isBlankOrComment(lines[j]) {
			continue
		}
		last = j
		if !continues(lines[j], escape) {
			return last
		}
	}
	return last
}

func continues(line string, escape rune) bool {
	t := strings.TrimRight(line, " \t")
	return t != "" && rune(t[len(t)-1]) == escape
}

// unknownAt builds the Unknown instruction for lines[i..last].
func unknownAt(lines []string, i, last int, escape rune) InstructionPosition {
	var b strings.Builder
	for j := i; j <= last; j++ {
		if j > i && isBlankOrComment(lines[j]) {
			continue
		}
		line := lines[j]
		if continues(line, escape) {
			t := strings.TrimRight(line, " \t")
			line = t[:len(t)-1]
		}
		b.WriteString(line)
	}
	raw := strings.TrimSpace(b.String())
	name, _, _ := strings.Cut(raw, " ")
	return InstructionPosition{
		Line:        i + 1,
		EndLine:     last + 1,
		Raw:         raw,
		Instruction: Unknown{Name: name, Text: raw},
	}
}
