package hadolint

import (
	"testing"

	"github.com/wharflab/stagelint/internal/testutil"
)

func TestDL3022Rule(t *testing.T) {
	t.Parallel()
	testutil.RunRuleTests(t, NewDL3022Rule(), []testutil.RuleTestCase{
		{
			Name:           "earlier alias",
			Content:        "FROM golang:1.22 AS builder\nFROM alpine:3.20\nCOPY --from=builder /out /bin/\n",
			WantViolations: 0,
		},
		{
			Name:           "undeclared alias",
			Content:        "FROM golang:1.22 AS build\nFROM alpine:3.20\nCOPY --from=builder /out /bin/\n",
			WantViolations: 1,
			WantLines:      []int{3},
		},
		{
			Name:           "alias declared later",
			Content:        "FROM alpine:3.20\nCOPY --from=builder /out /bin/\nFROM golang:1.22 AS builder\n",
			WantViolations: 1,
		},
		{
			Name:           "earlier index",
			Content:        "FROM golang:1.22\nFROM alpine:3.20\nCOPY --from=0 /out /bin/\n",
			WantViolations: 0,
		},
		{
			Name:           "future index",
			Content:        "FROM golang:1.22\nCOPY --from=3 /out /bin/\n",
			WantViolations: 1,
		},
		{
			Name:           "alias of the current stage",
			Content:        "FROM golang:1.22 AS builder\nCOPY --from=builder /out /bin/\n",
			WantViolations: 1,
			WantLines:      []int{2},
		},
		{
			Name:           "index of the current stage",
			Content:        "FROM golang:1.22\nFROM alpine:3.20\nCOPY --from=1 /out /bin/\n",
			WantViolations: 1,
			WantLines:      []int{3},
		},
		{
			Name:           "alias two stages back",
			Content:        "FROM golang:1.22 AS builder\nFROM alpine:3.20 AS base\nFROM base\nCOPY --from=builder /out /bin/\n",
			WantViolations: 0,
		},
		{
			Name:           "image reference",
			Content:        "FROM alpine:3.20\nCOPY --from=nginx:1.27 /etc/nginx /etc/nginx\n",
			WantViolations: 0,
		},
		{
			Name:           "registry reference",
			Content:        "FROM alpine:3.20\nCOPY --from=ghcr.io/acme/tools /bin/tool /bin/\n",
			WantViolations: 0,
		},
		{
			Name:           "variable",
			Content:        "FROM alpine:3.20\nCOPY --from=${SRC} /a /b\n",
			WantViolations: 0,
		},
		{
			Name:           "no from",
			Content:        "FROM alpine:3.20\nCOPY a /b\n",
			WantViolations: 0,
		},
	})
}
