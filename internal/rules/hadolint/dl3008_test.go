package hadolint

import (
	"testing"

	"github.com/wharflab/stagelint/internal/testutil"
)

func TestDL3008Rule(t *testing.T) {
	t.Parallel()
	testutil.RunRuleTests(t, NewDL3008Rule(), []testutil.RuleTestCase{
		{
			Name:           "one unpinned package",
			Content:        "FROM debian:12\nRUN apt-get install -y nginx\n",
			WantViolations: 1,
			WantLines:      []int{2},
			WantMessages:   []string{"apt-get install nginx=<version>"},
		},
		{
			Name:           "one failure per package",
			Content:        "FROM debian:12\nRUN apt-get update && apt-get install -y curl git=1:2.39.2-1.1 wget\n",
			WantViolations: 2,
			WantMessages:   []string{"curl", "wget"},
		},
		{
			Name:           "pinned",
			Content:        "FROM debian:12\nRUN apt-get install -y nginx=1.22.1-9\n",
			WantViolations: 0,
		},
		{
			Name:           "target release value is not a package",
			Content:        "FROM debian:12\nRUN apt-get install -y -t bookworm-backports nginx=1.22.1-9\n",
			WantViolations: 0,
		},
		{
			Name:           "local deb",
			Content:        "FROM debian:12\nRUN apt-get install -y ./pkg.deb\n",
			WantViolations: 0,
		},
		{
			Name: "continuation lines",
			Content: `FROM debian:12
RUN apt-get update \
 && apt-get install -y \
      ca-certificates
`,
			WantViolations: 1,
			WantLines:      []int{2},
		},
		{
			Name:           "apt is a different rule",
			Content:        "FROM debian:12\nRUN apt install -y nginx\n",
			WantViolations: 0,
		},
		{
			Name:           "not an install",
			Content:        "FROM debian:12\nRUN apt-get update && apt-get upgrade -y\n",
			WantViolations: 0,
		},
	})
}
