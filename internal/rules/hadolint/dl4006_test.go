package hadolint

import (
	"testing"

	"github.com/wharflab/stagelint/internal/testutil"
)

func TestDL4006Rule(t *testing.T) {
	t.Parallel()
	testutil.RunRuleTests(t, NewDL4006Rule(), []testutil.RuleTestCase{
		{
			Name:           "pipe without pipefail",
			Content:        "FROM debian:12\nRUN wget -O - https://example.com | wc -l > /number\n",
			WantViolations: 1,
			WantLines:      []int{2},
		},
		{
			Name:           "shell sets pipefail",
			Content:        "FROM debian:12\nSHELL [\"/bin/bash\", \"-o\", \"pipefail\", \"-c\"]\nRUN wget -O - https://x | wc -l\n",
			WantViolations: 0,
		},
		{
			Name:           "combined flags",
			Content:        "FROM debian:12\nSHELL [\"/bin/bash\", \"-eo\", \"pipefail\", \"-c\"]\nRUN cat a | wc -l\n",
			WantViolations: 0,
		},
		{
			Name:           "set in script",
			Content:        "FROM debian:12\nRUN set -euo pipefail; cat a | wc -l\n",
			WantViolations: 0,
		},
		{
			Name:           "shell setting resets per stage",
			Content:        "FROM debian:12\nSHELL [\"/bin/bash\", \"-o\", \"pipefail\", \"-c\"]\nFROM debian:12\nRUN cat a | wc -l\n",
			WantViolations: 1,
			WantLines:      []int{4},
		},
		{
			Name:           "later shell without pipefail",
			Content:        "FROM debian:12\nSHELL [\"/bin/bash\", \"-o\", \"pipefail\", \"-c\"]\nSHELL [\"/bin/sh\", \"-c\"]\nRUN cat a | wc -l\n",
			WantViolations: 1,
		},
		{
			Name:           "powershell",
			Content:        "FROM mcr.microsoft.com/powershell\nSHELL [\"pwsh\", \"-Command\"]\nRUN Get-Item x | Select-Object Name\n",
			WantViolations: 0,
		},
		{Name: "no pipe", Content: "FROM debian:12\nRUN echo a || echo b\n", WantViolations: 0},
	})
}
