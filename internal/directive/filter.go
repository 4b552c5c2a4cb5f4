package directive

import "github.com/wharflab/stagelint/internal/rules"

// FilterResult contains the results of filtering violations through pragmas.
type FilterResult struct {
	// Violations that were not suppressed, in input order.
	Violations []rules.Violation

	// Suppressed violations that were filtered out.
	Suppressed []rules.Violation

	// UnusedDirectives are ignore directives that suppressed nothing.
	UnusedDirectives []Directive
}

// Filter drops violations whose (code, line) the pragmas ignore.
//
// Matching precedence: first-match-wins. When a global and a next-line
// directive both cover a violation only the first one in file order is
// marked used.
func Filter(violations []rules.Violation, state *PragmaState) *FilterResult {
	result := &FilterResult{
		Violations: make([]rules.Violation, 0, len(violations)),
	}

	directives := state.Directives()
	used := make([]bool, len(directives))

	for _, v := range violations {
		suppressed := false
		for i := range directives {
			d := &directives[i]
			if d.SuppressesLine(v.Line()) && d.SuppressesRule(v.RuleCode) {
				suppressed = true
				used[i] = true
				break
			}
		}
		if suppressed {
			result.Suppressed = append(result.Suppressed, v)
		} else {
			result.Violations = append(result.Violations, v)
		}
	}

	for i, d := range directives {
		if !used[i] && d.Type != TypeShell {
			result.UnusedDirectives = append(result.UnusedDirectives, d)
		}
	}
	return result
}
