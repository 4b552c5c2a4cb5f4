// Package shell recovers a flat list of commands from the shell text of a
// RUN instruction.
//
// It wraps mvdan.cc/sh/v3/syntax and falls back to a permissive tokenizer
// when the script does not parse, so callers always get a best-effort view
// for POSIX-like shells.
package shell

import (
	"errors"
	"path"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// ErrUnsupportedShell is returned for shells whose syntax is not POSIX-like
// (PowerShell, cmd). The shell view is unavailable for such instructions.
var ErrUnsupportedShell = errors.New("shell: unsupported shell dialect")

// Variant represents a shell variant for parsing.
type Variant int

const (
	// VariantBash is the GNU Bash shell (default for Docker).
	VariantBash Variant = iota
	// VariantPOSIX is the POSIX-compliant shell (sh, dash, ash).
	VariantPOSIX
	// VariantMksh is the MirBSD Korn Shell.
	VariantMksh
	// VariantPowerShell is pwsh / powershell.
	VariantPowerShell
	// VariantCmd is the Windows command interpreter.
	VariantCmd
)

// String returns the dialect name understood by shellcheck's --shell flag.
func (v Variant) String() string {
	switch v {
	case VariantBash:
		return "bash"
	case VariantPOSIX:
		return "sh"
	case VariantMksh:
		return "ksh"
	case VariantPowerShell:
		return "powershell"
	case VariantCmd:
		return "cmd"
	}
	return "bash"
}

// IsPOSIX reports whether scripts of this variant can be parsed.
func (v Variant) IsPOSIX() bool {
	return v == VariantBash || v == VariantPOSIX || v == VariantMksh
}

// VariantFromShell returns the appropriate Variant for a shell name or path.
// Common shell mappings:
//   - bash, zsh -> VariantBash
//   - sh, dash, ash -> VariantPOSIX
//   - mksh, ksh -> VariantMksh
//   - pwsh, powershell -> VariantPowerShell
//   - cmd -> VariantCmd
//   - unknown -> VariantBash
func VariantFromShell(shell string) Variant {
	shell = strings.ReplaceAll(strings.TrimSpace(shell), `\`, "/")
	shell = strings.ToLower(path.Base(shell))
	shell = strings.TrimSuffix(shell, ".exe")

	switch shell {
	case "bash", "zsh":
		return VariantBash
	case "sh", "dash", "ash", "busybox":
		return VariantPOSIX
	case "mksh", "ksh":
		return VariantMksh
	case "pwsh", "powershell":
		return VariantPowerShell
	case "cmd":
		return VariantCmd
	default:
		return VariantBash
	}
}

// VariantFromShellCmd returns the Variant for a SHELL instruction array.
// The first element is the shell path (e.g., ["/bin/bash", "-c"]).
func VariantFromShellCmd(shellCmd []string) Variant {
	if len(shellCmd) == 0 {
		return VariantBash
	}
	return VariantFromShell(shellCmd[0])
}

func (v Variant) toLangVariant() syntax.LangVariant {
	switch v {
	case VariantPOSIX:
		return syntax.LangPOSIX
	case VariantMksh:
		return syntax.LangMirBSDKorn
	}
	return syntax.LangBash
}

// ParsedShell is the flat command view of one script.
type ParsedShell struct {
	// Original is the script text as given.
	Original string
	// Commands lists every simple command in source order, including those
	// nested in subshells, conditionals and substitutions.
	Commands []Command
	// HasPipes is true when any pipeline operator appears.
	HasPipes bool
	// Variant is the dialect used for parsing.
	Variant Variant
	// Fallback is true when the permissive tokenizer produced the view.
	Fallback bool
}

// Parse builds the shell view of script.
//
// Empty input yields an empty view. Scripts that the syntax parser rejects
// (an unterminated quote, for instance) are tokenized permissively instead.
// Only non-POSIX variants return an error.
func Parse(script string, variant Variant) (*ParsedShell, error) {
	if !variant.IsPOSIX() {
		return nil, ErrUnsupportedShell
	}
	ps := &ParsedShell{Original: script, Variant: variant}
	if strings.TrimSpace(script) == "" {
		return ps, nil
	}

	parser := syntax.NewParser(
		syntax.Variant(variant.toLangVariant()),
		syntax.KeepComments(false),
	)
	prog, err := parser.Parse(strings.NewReader(script), "")
	if err != nil {
		ps.Commands, ps.HasPipes = tokenize(script)
		ps.Fallback = true
		return ps, nil
	}

	syntax.Walk(prog, func(node syntax.Node) bool {
		switch n := node.(type) {
		case *syntax.BinaryCmd:
			if n.Op == syntax.Pipe || n.Op == syntax.PipeAll {
				ps.HasPipes = true
			}
		case *syntax.CallExpr:
			if len(n.Args) == 0 {
				return true
			}
			args := make([]string, 0, len(n.Args)-1)
			for _, w := range n.Args[1:] {
				args = append(args, wordText(script, w))
			}
			ps.Commands = append(ps.Commands, Command{
				Name: path.Base(wordText(script, n.Args[0])),
				Args: args,
			})
		}
		return true
	})
	return ps, nil
}

// MustParse parses a bash script and panics on error. For tests.
func MustParse(script string) *ParsedShell {
	ps, err := Parse(script, VariantBash)
	if err != nil {
		panic(err)
	}
	return ps
}

// wordText renders a word with quotes removed from literal parts. Expansions
// are kept as written in the source.
func wordText(src string, w *syntax.Word) string {
	if lit := w.Lit(); lit != "" {
		return lit
	}
	var b strings.Builder
	writeParts(&b, src, w.Parts)
	return b.String()
}

func writeParts(b *strings.Builder, src string, parts []syntax.WordPart) {
	for _, part := range parts {
		switch p := part.(type) {
		case *syntax.Lit:
			b.WriteString(p.Value)
		case *syntax.SglQuoted:
			b.WriteString(p.Value)
		case *syntax.DblQuoted:
			writeParts(b, src, p.Parts)
		default:
			start, end := int(part.Pos().Offset()), int(part.End().Offset())
			if start >= 0 && end <= len(src) && start <= end {
				b.WriteString(src[start:end])
			}
		}
	}
}

// HasCommand reports whether any command invokes program name.
func (ps *ParsedShell) HasCommand(name string) bool {
	if ps == nil {
		return false
	}
	for _, c := range ps.Commands {
		if c.Name == name {
			return true
		}
	}
	return false
}

// UsesProgram is an alias of HasCommand that reads better in some rules.
func (ps *ParsedShell) UsesProgram(name string) bool {
	return ps.HasCommand(name)
}

// FindCommands returns the commands whose program is one of names.
func (ps *ParsedShell) FindCommands(names ...string) []Command {
	if ps == nil {
		return nil
	}
	var out []Command
	for _, c := range ps.Commands {
		for _, n := range names {
			if c.Name == n {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// Programs returns the distinct program names in first-use order.
func (ps *ParsedShell) Programs() []string {
	if ps == nil {
		return nil
	}
	seen := make(map[string]bool, len(ps.Commands))
	var out []string
	for _, c := range ps.Commands {
		if !seen[c.Name] {
			seen[c.Name] = true
			out = append(out, c.Name)
		}
	}
	return out
}
