package hadolint

import (
	"testing"

	"github.com/wharflab/stagelint/internal/testutil"
)

func TestDL3045Rule(t *testing.T) {
	t.Parallel()
	testutil.RunRuleTests(t, NewDL3045Rule(), []testutil.RuleTestCase{
		{Name: "relative without workdir", Content: "FROM alpine:3.20\nCOPY app.py app/\n", WantViolations: 1, WantLines: []int{2}},
		{Name: "dot destination", Content: "FROM alpine:3.20\nCOPY app.py .\n", WantViolations: 1},
		{Name: "absolute", Content: "FROM alpine:3.20\nCOPY app.py /app/\n", WantViolations: 0},
		{Name: "variable", Content: "FROM alpine:3.20\nCOPY app.py $APP_HOME\n", WantViolations: 0},
		{Name: "quoted absolute", Content: "FROM alpine:3.20\nCOPY app.py \"/app/\"\n", WantViolations: 0},
		{Name: "windows drive", Content: "FROM mcr.microsoft.com/windows/servercore:ltsc2022\nCOPY app.exe C:/app/\n", WantViolations: 0},
		{Name: "after workdir", Content: "FROM alpine:3.20\nWORKDIR /app\nCOPY app.py .\n", WantViolations: 0},
		{
			Name:           "workdir does not cross to unrelated stage",
			Content:        "FROM alpine:3.20 AS base\nWORKDIR /app\nFROM alpine:3.20\nCOPY app.py .\n",
			WantViolations: 1,
			WantLines:      []int{4},
		},
		{
			Name:           "inherited from parent stage",
			Content:        "FROM alpine:3.20 AS base\nWORKDIR /app\nFROM base\nCOPY app.py .\n",
			WantViolations: 0,
		},
		{
			Name:           "inherited transitively",
			Content:        "FROM alpine:3.20 AS base\nWORKDIR /app\nFROM base AS mid\nFROM mid\nCOPY app.py .\n",
			WantViolations: 0,
		},
	})
}
