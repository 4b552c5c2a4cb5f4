package linter

import (
	"path"
	"strings"

	"github.com/wharflab/stagelint/internal/directive"
	"github.com/wharflab/stagelint/internal/dockerfile"
	"github.com/wharflab/stagelint/internal/rules"
	"github.com/wharflab/stagelint/internal/shell"
)

// Inputs builds the rule view of a parsed file.
//
// Each instruction is tagged with its stage. RUN instructions (including
// ONBUILD RUN) get a shell view parsed in the dialect in effect at their
// line: a "# hadolint shell=" pragma wins, then the stage's SHELL
// instruction, then bash. SHELL resets at every FROM. Instructions before
// the first FROM have stage index -1.
func Inputs(file string, items []dockerfile.InstructionPosition, pragmas *directive.PragmaState) []rules.Input {
	inputs := make([]rules.Input, 0, len(items))
	stage := rules.StageView{Index: -1}
	var stageShell []string

	for _, item := range items {
		switch inst := item.Instruction.(type) {
		case dockerfile.From:
			stage = rules.StageView{Index: stage.Index + 1, Alias: inst.Alias}
			stageShell = nil
		case dockerfile.Shell:
			stageShell = inst.Args
		}

		in := rules.Input{
			File:        file,
			Line:        item.Line,
			EndLine:     item.EndLine,
			Raw:         item.Raw,
			Instruction: item.Instruction,
			Stage:       stage,
		}
		if run, ok := in.RunInstruction(); ok {
			in.Shell = shellView(run.Arguments, variantAt(pragmas, item.Line, stageShell))
		}
		inputs = append(inputs, in)
	}
	return inputs
}

func variantAt(pragmas *directive.PragmaState, line int, stageShell []string) shell.Variant {
	if pragmas != nil {
		if name, ok := pragmas.ShellAt(line); ok {
			return shell.VariantFromShell(name)
		}
	}
	return shell.VariantFromShellCmd(stageShell)
}

// shellView returns nil when the dialect cannot be parsed.
func shellView(args dockerfile.Arguments, variant shell.Variant) *shell.ParsedShell {
	if !args.Exec {
		ps, err := shell.Parse(args.Text, variant)
		if err != nil {
			return nil
		}
		return ps
	}

	values := args.Values
	if len(values) == 0 {
		return &shell.ParsedShell{Variant: variant}
	}
	// ["sh", "-c", "script"] runs a script; anything else is one program.
	if len(values) >= 3 && values[1] == "-c" && isShellProgram(values[0]) {
		ps, err := shell.Parse(values[2], shell.VariantFromShell(values[0]))
		if err != nil {
			return nil
		}
		return ps
	}
	return &shell.ParsedShell{
		Original: strings.Join(values, " "),
		Commands: []shell.Command{{Name: path.Base(values[0]), Args: values[1:]}},
		Variant:  variant,
	}
}

var shellPrograms = map[string]bool{
	"sh": true, "bash": true, "dash": true, "ash": true, "zsh": true, "ksh": true, "mksh": true,
}

func isShellProgram(name string) bool {
	return shellPrograms[path.Base(name)]
}
