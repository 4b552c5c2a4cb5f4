package shell

import (
	"slices"
	"strings"
)

// Command is one simple command: a program and its arguments.
type Command struct {
	// Name is the base program name (e.g., "apt-get" for /usr/bin/apt-get).
	Name string
	// Args holds every argument after the program, flags included.
	Args []string
}

// ArgsNoFlags returns the arguments that do not start with '-'.
func (c Command) ArgsNoFlags() []string {
	out := make([]string, 0, len(c.Args))
	for _, a := range c.Args {
		if !strings.HasPrefix(a, "-") {
			out = append(out, a)
		}
	}
	return out
}

// Flags returns flag names without dashes or values. Combined short flags
// are expanded: "-yq" yields "y" and "q".
func (c Command) Flags() []string {
	var out []string
	for _, a := range c.Args {
		switch {
		case a == "-" || a == "--":
		case strings.HasPrefix(a, "--"):
			name, _, _ := strings.Cut(a[2:], "=")
			out = append(out, name)
		case strings.HasPrefix(a, "-"):
			for _, r := range a[1:] {
				out = append(out, string(r))
			}
		}
	}
	return out
}

// HasFlag checks if the command has a specific flag.
// Handles both short flags (-y) and long flags (--yes).
// For short flags, also checks combined flags (e.g., -yq contains -y).
func (c Command) HasFlag(flag string) bool {
	name := strings.TrimLeft(flag, "-")
	isLong := strings.HasPrefix(flag, "--") || len(name) > 1

	for _, arg := range c.Args {
		if !strings.HasPrefix(arg, "-") {
			continue
		}
		if isLong {
			if arg == "--"+name || strings.HasPrefix(arg, "--"+name+"=") {
				return true
			}
			continue
		}
		if strings.HasPrefix(arg, "--") {
			continue
		}
		if strings.Contains(arg[1:], name) {
			return true
		}
	}
	return false
}

// HasAnyFlag checks if the command has any of the specified flags.
func (c Command) HasAnyFlag(flags ...string) bool {
	return slices.ContainsFunc(flags, c.HasFlag)
}

// HasArg reports whether arg appears verbatim among the arguments.
func (c Command) HasArg(arg string) bool {
	return slices.Contains(c.Args, arg)
}

// HasAnyArg reports whether any of args appears verbatim.
func (c Command) HasAnyArg(args ...string) bool {
	return slices.ContainsFunc(args, c.HasArg)
}

// Subcommand returns the first non-flag argument ("install" in
// "apt-get -y install curl").
func (c Command) Subcommand() string {
	for _, a := range c.Args {
		if !strings.HasPrefix(a, "-") {
			return a
		}
	}
	return ""
}

// IsSubcommand reports whether the command is program name running one of subs.
func (c Command) IsSubcommand(name string, subs ...string) bool {
	return c.Name == name && slices.Contains(subs, c.Subcommand())
}

// FlagValue returns the value given to any of the named flags, accepting
// "--name=value", "--name value" and "-n value". The second result is false
// when none of the flags carries a value.
func (c Command) FlagValue(names ...string) (string, bool) {
	for i, arg := range c.Args {
		for _, n := range names {
			if v, ok := strings.CutPrefix(arg, n+"="); ok {
				return v, true
			}
			if arg == n && i+1 < len(c.Args) {
				return c.Args[i+1], true
			}
		}
	}
	return "", false
}

// String renders the command back to a single line.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}
