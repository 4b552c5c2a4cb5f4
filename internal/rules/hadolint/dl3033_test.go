package hadolint

import (
	"testing"

	"github.com/wharflab/stagelint/internal/testutil"
)

func TestDL3033Rule(t *testing.T) {
	t.Parallel()
	testutil.RunRuleTests(t, NewDL3033Rule(), []testutil.RuleTestCase{
		{Name: "unpinned", Content: "FROM centos:7\nRUN yum install -y httpd\n", WantViolations: 1},
		{Name: "pinned", Content: "FROM centos:7\nRUN yum install -y httpd-2.4.6\n", WantViolations: 0},
		{Name: "hyphenated name", Content: "FROM centos:7\nRUN yum install -y python3-devel\n", WantViolations: 1},
		{Name: "hyphenated name pinned", Content: "FROM centos:7\nRUN yum install -y python3-devel-3.6.8\n", WantViolations: 0},
		{Name: "local rpm", Content: "FROM centos:7\nRUN yum install -y /tmp/app.rpm\n", WantViolations: 0},
		{Name: "two packages", Content: "FROM centos:7\nRUN yum install -y httpd mod_ssl\n", WantViolations: 2},
	})
}
