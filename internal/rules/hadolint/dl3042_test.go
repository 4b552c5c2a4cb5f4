package hadolint

import (
	"testing"

	"github.com/wharflab/stagelint/internal/testutil"
)

func TestDL3042Rule(t *testing.T) {
	t.Parallel()
	testutil.RunRuleTests(t, NewDL3042Rule(), []testutil.RuleTestCase{
		{Name: "missing", Content: "FROM python:3.12\nRUN pip install django\n", WantViolations: 1, WantLines: []int{2}},
		{Name: "flag", Content: "FROM python:3.12\nRUN pip install --no-cache-dir django\n", WantViolations: 0},
		{Name: "python -m pip", Content: "FROM python:3.12\nRUN python -m pip install django\n", WantViolations: 1},
		{Name: "pip3", Content: "FROM python:3.12\nRUN pip3 install django\n", WantViolations: 1},
		{Name: "env", Content: "FROM python:3.12\nENV PIP_NO_CACHE_DIR=1\nRUN pip install django\n", WantViolations: 0},
		{Name: "env false", Content: "FROM python:3.12\nENV PIP_NO_CACHE_DIR=false\nRUN pip install django\n", WantViolations: 1},
		{Name: "arg", Content: "FROM python:3.12\nARG PIP_NO_CACHE_DIR=true\nRUN pip install django\n", WantViolations: 0},
		{
			Name:           "env does not cross stages",
			Content:        "FROM python:3.12 AS a\nENV PIP_NO_CACHE_DIR=1\nFROM python:3.12\nRUN pip install django\n",
			WantViolations: 1,
			WantLines:      []int{4},
		},
		{
			Name:           "cache mount",
			Content:        "FROM python:3.12\nRUN --mount=type=cache,target=/root/.cache/pip pip install django\n",
			WantViolations: 0,
		},
		{Name: "not install", Content: "FROM python:3.12\nRUN pip freeze\n", WantViolations: 0},
	})
}
