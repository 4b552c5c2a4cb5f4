package hadolint

import (
	"testing"

	"github.com/wharflab/stagelint/internal/testutil"
)

func TestDL3043Rule(t *testing.T) {
	t.Parallel()
	testutil.RunRuleTests(t, NewDL3043Rule(), []testutil.RuleTestCase{
		{Name: "onbuild from", Content: "FROM alpine:3.20\nONBUILD FROM debian:12\n", WantViolations: 1},
		{Name: "onbuild maintainer", Content: "FROM alpine:3.20\nONBUILD MAINTAINER me\n", WantViolations: 1},
		{Name: "nested onbuild", Content: "FROM alpine:3.20\nONBUILD ONBUILD RUN true\n", WantViolations: 1},
		{Name: "onbuild run", Content: "FROM alpine:3.20\nONBUILD RUN make\n", WantViolations: 0},
		{Name: "plain from", Content: "FROM alpine:3.20\n", WantViolations: 0},
	})
}
