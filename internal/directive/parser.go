package directive

import (
	"regexp"
	"strings"

	"github.com/wharflab/stagelint/internal/dockerfile"
)

// Patterns run against the comment text with the leading '#' removed.
// Keywords are case-insensitive.
var (
	// hadolint [global] ignore=RULE1,RULE2
	ignorePattern = regexp.MustCompile(`(?i)^hadolint\s+(global\s+)?ignore\s*=\s*([A-Za-z0-9_*-]+(?:\s*,\s*[A-Za-z0-9_*-]+)*)?`)

	// hadolint shell=NAME
	shellPattern = regexp.MustCompile(`(?i)^hadolint\s+shell\s*=\s*(\S+)\s*$`)
)

// Parse extracts the pragmas of a Dockerfile.
func Parse(text string) *PragmaState {
	return FromInstructions(dockerfile.Parse(text))
}

// FromInstructions extracts pragmas from already-parsed instructions.
// Next-line directives target the first non-comment instruction after them.
func FromInstructions(items []dockerfile.InstructionPosition) *PragmaState {
	state := newPragmaState()

	for i, item := range items {
		comment, ok := item.Instruction.(dockerfile.Comment)
		if !ok {
			continue
		}
		d, perr := parseComment(comment.Text, item.Line)
		if perr != nil {
			state.errors = append(state.errors, *perr)
			continue
		}
		if d == nil {
			continue
		}
		if d.Type == TypeNextLine {
			d.Target = nextInstructionLine(items, i)
		}
		state.add(*d)
	}
	return state
}

func parseComment(text string, line int) (*Directive, *ParseError) {
	text = strings.TrimSpace(text)

	if m := shellPattern.FindStringSubmatch(text); m != nil {
		return &Directive{Type: TypeShell, Shell: m[1], Line: line, RawText: text}, nil
	}

	m := ignorePattern.FindStringSubmatch(text)
	if m == nil {
		return nil, nil
	}
	rules, err := parseRuleList(m[2])
	if err != nil {
		return nil, &ParseError{Line: line, Message: err.Error(), RawText: text}
	}
	d := &Directive{Type: TypeNextLine, Rules: rules, Line: line, RawText: text}
	if strings.TrimSpace(m[1]) != "" {
		d.Type = TypeGlobal
	}
	return d, nil
}

// parseRuleList parses a comma-separated list of rule codes.
// Returns an error if the list is empty.
func parseRuleList(s string) ([]string, error) {
	parts := strings.Split(s, ",")
	rules := make([]string, 0, len(parts))

	for _, part := range parts {
		rule := strings.ToUpper(strings.TrimSpace(part))
		if rule == "" {
			continue
		}
		if rule == "ALL" {
			rule = Wildcard
		}
		rules = append(rules, rule)
	}

	if len(rules) == 0 {
		return nil, &parseRuleError{msg: "empty rule list"}
	}
	return rules, nil
}

type parseRuleError struct {
	msg string
}

func (e *parseRuleError) Error() string {
	return e.msg
}

func nextInstructionLine(items []dockerfile.InstructionPosition, from int) int {
	for _, item := range items[from+1:] {
		if _, ok := item.Instruction.(dockerfile.Comment); !ok {
			return item.Line
		}
	}
	return 0
}
