package hadolint

import (
	"testing"

	"github.com/wharflab/stagelint/internal/testutil"
)

func TestDL3047Rule(t *testing.T) {
	t.Parallel()
	url := "https://example.com/app.tar.gz"
	testutil.RunRuleTests(t, NewDL3047Rule(), []testutil.RuleTestCase{
		{Name: "plain wget", Content: "FROM debian:12\nRUN wget " + url + "\n", WantViolations: 1},
		{Name: "progress", Content: "FROM debian:12\nRUN wget --progress=dot:giga " + url + "\n", WantViolations: 0},
		{Name: "quiet", Content: "FROM debian:12\nRUN wget -q " + url + "\n", WantViolations: 0},
		{Name: "combined quiet", Content: "FROM debian:12\nRUN wget -qO- " + url + "\n", WantViolations: 0},
		{Name: "no verbose", Content: "FROM debian:12\nRUN wget -nv " + url + "\n", WantViolations: 0},
		{Name: "log file", Content: "FROM debian:12\nRUN wget -o /tmp/wget.log " + url + "\n", WantViolations: 0},
		{Name: "output document only", Content: "FROM debian:12\nRUN wget -O /tmp/app.tgz " + url + "\n", WantViolations: 1},
		{Name: "curl", Content: "FROM debian:12\nRUN curl -fsSL " + url + "\n", WantViolations: 0},
	})
}
