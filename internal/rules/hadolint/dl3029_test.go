package hadolint

import (
	"testing"

	"github.com/wharflab/stagelint/internal/testutil"
)

func TestDL3029Rule(t *testing.T) {
	t.Parallel()
	testutil.RunRuleTests(t, NewDL3029Rule(), []testutil.RuleTestCase{
		{Name: "fixed platform", Content: "FROM --platform=linux/amd64 debian:12\n", WantViolations: 1},
		{Name: "build platform", Content: "FROM --platform=$BUILDPLATFORM golang:1.22 AS build\n", WantViolations: 0},
		{Name: "braced variable", Content: "FROM --platform=${TARGETPLATFORM} debian:12\n", WantViolations: 0},
		{Name: "no platform", Content: "FROM debian:12\n", WantViolations: 0},
	})
}
