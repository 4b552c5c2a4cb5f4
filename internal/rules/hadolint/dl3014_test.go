package hadolint

import (
	"testing"

	"github.com/wharflab/stagelint/internal/testutil"
)

func TestDL3014Rule(t *testing.T) {
	t.Parallel()
	testutil.RunRuleTests(t, NewDL3014Rule(), []testutil.RuleTestCase{
		{Name: "missing -y", Content: "FROM debian:12\nRUN apt-get install curl\n", WantViolations: 1},
		{Name: "-y", Content: "FROM debian:12\nRUN apt-get install -y curl\n", WantViolations: 0},
		{Name: "-y before subcommand", Content: "FROM debian:12\nRUN apt-get -y install curl\n", WantViolations: 0},
		{Name: "combined flags", Content: "FROM debian:12\nRUN apt-get install -qy curl\n", WantViolations: 0},
		{Name: "--yes", Content: "FROM debian:12\nRUN apt-get install --yes curl\n", WantViolations: 0},
		{Name: "--assume-yes", Content: "FROM debian:12\nRUN apt-get install --assume-yes curl\n", WantViolations: 0},
		{Name: "-qq", Content: "FROM debian:12\nRUN apt-get install -qq curl\n", WantViolations: 0},
		{Name: "single -q", Content: "FROM debian:12\nRUN apt-get install -q curl\n", WantViolations: 1},
		{Name: "update only", Content: "FROM debian:12\nRUN apt-get update\n", WantViolations: 0},
	})
}
