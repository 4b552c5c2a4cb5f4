package hadolint

import (
	"testing"

	"github.com/wharflab/stagelint/internal/testutil"
)

func TestDL3021Rule(t *testing.T) {
	t.Parallel()
	testutil.RunRuleTests(t, NewDL3021Rule(), []testutil.RuleTestCase{
		{Name: "no trailing slash", Content: "FROM alpine:3.20\nCOPY a b /app\n", WantViolations: 1},
		{Name: "trailing slash", Content: "FROM alpine:3.20\nCOPY a b /app/\n", WantViolations: 0},
		{Name: "single source", Content: "FROM alpine:3.20\nCOPY a /app\n", WantViolations: 0},
		{Name: "exec form", Content: "FROM alpine:3.20\nCOPY [\"a\", \"b\", \"/app\"]\n", WantViolations: 1},
		{Name: "exec form slash", Content: "FROM alpine:3.20\nCOPY [\"a\", \"b\", \"/app/\"]\n", WantViolations: 0},
		{Name: "with from", Content: "FROM alpine:3.20\nCOPY --from=build /a /b /out\n", WantViolations: 1},
	})
}
