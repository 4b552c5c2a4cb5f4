package hadolint

import (
	"testing"

	"github.com/wharflab/stagelint/internal/testutil"
)

func TestDL3002Rule(t *testing.T) {
	t.Parallel()
	testutil.RunRuleTests(t, NewDL3002Rule(), []testutil.RuleTestCase{
		{
			Name:           "last user root",
			Content:        "FROM debian:12\nUSER app\nUSER root\n",
			WantViolations: 1,
			WantLines:      []int{3},
		},
		{
			Name:           "uid zero with group",
			Content:        "FROM debian:12\nUSER 0:0\n",
			WantViolations: 1,
		},
		{
			Name:           "root then non-root",
			Content:        "FROM debian:12\nUSER root\nRUN apt-get update\nUSER app\n",
			WantViolations: 0,
		},
		{
			Name:           "no user",
			Content:        "FROM debian:12\nRUN whoami\n",
			WantViolations: 0,
		},
		{
			Name: "root in builder stage only",
			Content: `FROM golang:1.22 AS build
USER root
RUN go build ./...

FROM gcr.io/distroless/static:nonroot
USER nonroot
`,
			WantViolations: 0,
		},
		{
			Name: "root in final stage",
			Content: `FROM golang:1.22 AS build
USER app

FROM debian:12
USER root
`,
			WantViolations: 1,
			WantLines:      []int{5},
		},
	})
}
