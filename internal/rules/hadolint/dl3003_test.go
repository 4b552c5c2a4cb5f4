package hadolint

import (
	"testing"

	"github.com/wharflab/stagelint/internal/testutil"
)

func TestDL3003Rule(t *testing.T) {
	t.Parallel()
	testutil.RunRuleTests(t, NewDL3003Rule(), []testutil.RuleTestCase{
		{Name: "cd", Content: "FROM alpine:3.20\nRUN cd /tmp && make\n", WantViolations: 1, WantLines: []int{2}},
		{Name: "cd in subshell", Content: "FROM alpine:3.20\nRUN (cd /src && make)\n", WantViolations: 1},
		{Name: "workdir", Content: "FROM alpine:3.20\nWORKDIR /tmp\nRUN make\n", WantViolations: 0},
		{Name: "cd as argument", Content: "FROM alpine:3.20\nRUN echo cd\n", WantViolations: 0},
		{Name: "onbuild", Content: "FROM alpine:3.20\nONBUILD RUN cd /app\n", WantViolations: 1},
	})
}
