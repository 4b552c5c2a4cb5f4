package testutil

import (
	"testing"

	"github.com/wharflab/stagelint/internal/dockerfile"
	"github.com/wharflab/stagelint/internal/rules"
)

func TestMakeInputs(t *testing.T) {
	content := "FROM alpine:3.20 AS build\nRUN apk add curl\nFROM scratch\nCOPY --from=build /a /b"
	inputs := MakeInputs(t, "test/Dockerfile", content)

	if len(inputs) != 4 {
		t.Fatalf("len(inputs) = %d, want 4", len(inputs))
	}
	if inputs[0].File != "test/Dockerfile" {
		t.Errorf("File = %q, want %q", inputs[0].File, "test/Dockerfile")
	}
	if inputs[1].Stage.Index != 0 || inputs[1].Stage.Alias != "build" {
		t.Errorf("Stage = %+v, want index 0 alias build", inputs[1].Stage)
	}
	if inputs[1].Shell == nil || !inputs[1].Shell.HasCommand("apk") {
		t.Error("RUN input has no shell view")
	}
	if inputs[3].Stage.Index != 1 {
		t.Errorf("Stage.Index = %d, want 1", inputs[3].Stage.Index)
	}
	if inputs[3].Shell != nil {
		t.Error("COPY input should have no shell view")
	}
}

type maintainerRule struct{}

func (maintainerRule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{Code: "DL9000", Name: "no maintainer", DefaultSeverity: rules.SeverityError}
}

func (r maintainerRule) NewRun() rules.Run {
	return rules.NewSimpleRun(r.Metadata(), func(in rules.Input) bool {
		_, ok := in.Instruction.(dockerfile.Maintainer)
		return ok
	})
}

func TestRunRuleTests(t *testing.T) {
	RunRuleTests(t, maintainerRule{}, []RuleTestCase{
		{
			Name:           "flagged",
			Content:        "FROM alpine\nMAINTAINER me\n",
			WantViolations: 1,
			WantLines:      []int{2},
			WantMessages:   []string{"maintainer"},
		},
		{
			Name:           "clean",
			Content:        "FROM alpine\nLABEL maintainer=me\n",
			WantViolations: 0,
		},
	})
}

func TestAssertNoViolations(t *testing.T) {
	AssertNoViolations(t, nil)
	AssertNoViolations(t, []rules.Violation{})
}

func TestAssertViolationCount(t *testing.T) {
	v := []rules.Violation{
		rules.NewViolation(rules.NewLineLocation("test", 1), "DL9000", "msg", rules.SeverityError),
	}

	AssertViolationCount(t, v, 1)
	AssertViolationCount(t, nil, 0)
	AssertViolationCount(t, []rules.Violation{}, 0)
}
