package rules

import (
	"github.com/wharflab/stagelint/internal/dockerfile"
	"github.com/wharflab/stagelint/internal/shell"
)

// RuleMetadata contains static information about a rule.
type RuleMetadata struct {
	// Code is the unique identifier (e.g., "DL3006").
	Code string `json:"code" toml:"code"`

	// Name is the human-readable rule name.
	Name string `json:"name" toml:"name"`

	// Description explains what the rule checks.
	Description string `json:"description" toml:"description"`

	// DocURL links to detailed documentation.
	DocURL string `json:"docUrl" toml:"doc-url"`

	// DefaultSeverity is the severity when not overridden.
	DefaultSeverity Severity `json:"severity" toml:"severity"`

	// Category groups related rules (e.g., "security", "performance", "style").
	Category string `json:"category" toml:"category"`

	// EnabledByDefault indicates if the rule runs without explicit opt-in.
	EnabledByDefault bool `json:"enabledByDefault" toml:"enabled-by-default"`

	// IsExperimental marks rules that may change or be removed.
	IsExperimental bool `json:"experimental" toml:"experimental"`
}

// Rule is the interface that all linting rules must implement.
//
// A rule is immutable; all per-file memory lives in the Run it creates.
type Rule interface {
	// Metadata returns static information about the rule.
	Metadata() RuleMetadata

	// NewRun returns fresh state for one file.
	NewRun() Run
}

// Run is one rule evaluating one file.
//
// The engine calls Check for every instruction in file order, then Finalize
// once, then reads Failures.
type Run interface {
	Check(in Input)
	Finalize()
	Failures() []Violation
}

// StageView tells a rule which build stage an instruction belongs to.
type StageView struct {
	// Index is the zero-based stage index, -1 before the first FROM.
	Index int
	// Alias is the stage name from "FROM image AS alias", if any.
	Alias string
}

// Input is one instruction as seen by a rule.
//
// Input is read-only: rules must not mutate the instruction or shell view.
type Input struct {
	// File is the path to the Dockerfile being linted.
	File string

	// Line is the 1-based line of the instruction's first physical line.
	Line int

	// EndLine is the 1-based last physical line.
	EndLine int

	// Raw is the logical line text.
	Raw string

	Instruction dockerfile.Instruction

	// Shell is the command view of a RUN instruction. It is nil for other
	// instructions and whenever the view is unavailable; rules that need it
	// must treat nil as compliant.
	Shell *shell.ParsedShell

	Stage StageView
}

// RunInstruction returns the RUN instruction of the input, looking through
// ONBUILD triggers.
func (in Input) RunInstruction() (dockerfile.Run, bool) {
	switch inst := in.Instruction.(type) {
	case dockerfile.Run:
		return inst, true
	case dockerfile.OnBuild:
		run, ok := inst.Inner.(dockerfile.Run)
		return run, ok
	}
	return dockerfile.Run{}, false
}

// IsFrom reports whether the input starts a new stage.
func (in Input) IsFrom() bool {
	_, ok := in.Instruction.(dockerfile.From)
	return ok
}
