// Package testutil provides test helpers for the Dockerfile linter.
package testutil

import (
	"strings"
	"testing"

	"github.com/wharflab/stagelint/internal/directive"
	"github.com/wharflab/stagelint/internal/dockerfile"
	"github.com/wharflab/stagelint/internal/linter"
	"github.com/wharflab/stagelint/internal/rules"
)

// MakeInputs parses content and builds the rule inputs the linter would
// dispatch, shell views and pragma shell overrides included.
func MakeInputs(tb testing.TB, file, content string) []rules.Input {
	tb.Helper()
	return linter.Inputs(file, dockerfile.Parse(content), directive.Parse(content))
}

// LintRule runs one rule over content and returns its raw violations,
// before pragma filtering and sorting.
func LintRule(tb testing.TB, rule rules.Rule, content string) []rules.Violation {
	tb.Helper()
	return rules.EvaluateRule(rule, MakeInputs(tb, "Dockerfile", content))
}

// RuleTestCase defines a test case for table-driven rule tests.
type RuleTestCase struct {
	// Name is the test case name.
	Name string

	// Content is the Dockerfile content to lint.
	Content string

	// WantViolations is the expected number of violations.
	// Use -1 to skip the count check.
	WantViolations int

	// WantLines are the expected violation lines in order (for detailed checks).
	WantLines []int

	// WantMessages are substrings expected in violation messages.
	WantMessages []string
}

// RunRuleTests runs a table of test cases against a rule.
func RunRuleTests(t *testing.T, rule rules.Rule, cases []RuleTestCase) {
	t.Helper()

	code := rule.Metadata().Code
	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			t.Parallel()
			violations := LintRule(t, rule, tc.Content)

			if tc.WantViolations >= 0 && len(violations) != tc.WantViolations {
				t.Errorf("got %d violations, want %d", len(violations), tc.WantViolations)
				for i, v := range violations {
					t.Logf("  [%d] line %d %s: %s", i, v.Line(), v.RuleCode, v.Message)
				}
			}

			for i, v := range violations {
				if v.RuleCode != code {
					t.Errorf("violation[%d].RuleCode = %q, want %q", i, v.RuleCode, code)
				}
			}

			if len(tc.WantLines) > 0 {
				if len(violations) != len(tc.WantLines) {
					t.Errorf("got %d violations, want %d", len(violations), len(tc.WantLines))
				} else {
					for i, line := range tc.WantLines {
						if violations[i].Line() != line {
							t.Errorf("violation[%d].Line() = %d, want %d", i, violations[i].Line(), line)
						}
					}
				}
			}

			for i, msg := range tc.WantMessages {
				if i >= len(violations) {
					t.Errorf(
						"expected violation[%d] with message containing %q, but only got %d violations",
						i,
						msg,
						len(violations),
					)
					continue
				}
				if !strings.Contains(violations[i].Message, msg) {
					t.Errorf("violation[%d].Message = %q, want substring %q", i, violations[i].Message, msg)
				}
			}
		})
	}
}

// AssertNoViolations fails the test if there are any violations.
func AssertNoViolations(tb testing.TB, violations []rules.Violation) {
	tb.Helper()
	if len(violations) > 0 {
		tb.Errorf("expected no violations, got %d:", len(violations))
		for _, v := range violations {
			tb.Logf("  - %s at line %d: %s", v.RuleCode, v.Line(), v.Message)
		}
	}
}

// AssertViolationCount fails if the violation count doesn't match.
func AssertViolationCount(tb testing.TB, violations []rules.Violation, want int) {
	tb.Helper()
	if len(violations) != want {
		tb.Errorf("got %d violations, want %d", len(violations), want)
		for _, v := range violations {
			tb.Logf("  - %s at line %d: %s", v.RuleCode, v.Line(), v.Message)
		}
	}
}
