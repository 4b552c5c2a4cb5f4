package dockerfile

import (
	"strings"
)

// Instruction is one parsed Dockerfile directive.
//
// The set of implementations is closed: only the variants declared in this
// file satisfy it. Rules switch on the concrete type and ignore the rest.
type Instruction interface {
	// Keyword returns the upper-case directive keyword ("FROM", "RUN", ...).
	// Comments return "#"; unknown instructions return their keyword as written.
	Keyword() string

	instruction()
}

// InstructionPosition pairs an instruction with its location in the file.
type InstructionPosition struct {
	// Line is the 1-based line of the first physical line of the instruction.
	Line int
	// EndLine is the 1-based last physical line (continuations, heredocs).
	EndLine int
	// Raw is the logical line text with continuation markers removed.
	Raw string

	Instruction Instruction
}

// KeyValue is one pair of an ENV or LABEL instruction.
type KeyValue struct {
	Key   string
	Value string
}

// BaseImage is an image reference split into its parts.
type BaseImage struct {
	// Name is the repository, including any registry host ("docker.io/library/ubuntu" is kept as written).
	Name   string
	Tag    string
	Digest string
}

// String reassembles the reference.
func (b BaseImage) String() string {
	s := b.Name
	if b.Tag != "" {
		s += ":" + b.Tag
	}
	if b.Digest != "" {
		s += "@" + b.Digest
	}
	return s
}

// Arguments holds the payload of RUN, CMD, ENTRYPOINT and SHELL.
type Arguments struct {
	// Exec is true for the JSON array form.
	Exec bool
	// Values holds the array elements in exec form.
	Values []string
	// Text holds the shell form text (heredoc bodies included for RUN).
	Text string
}

// String returns the text a shell would see.
func (a Arguments) String() string {
	if a.Exec {
		return strings.Join(a.Values, " ")
	}
	return a.Text
}

// RunFlags holds the --flags of RUN.
type RunFlags struct {
	Mounts   []string
	Network  string
	Security string
}

// CopyFlags holds the --flags of COPY.
type CopyFlags struct {
	From  string
	Chown string
	Chmod string
	Link  bool
}

// AddFlags holds the --flags of ADD.
type AddFlags struct {
	Chown    string
	Chmod    string
	Checksum string
	Link     bool
}

// From starts a new build stage.
type From struct {
	Image    BaseImage
	Alias    string
	Platform string
}

// Run executes a command.
type Run struct {
	Arguments
	Flags RunFlags
	// Heredocs lists the heredoc bodies consumed by this instruction.
	Heredocs []Heredoc
}

// Copy copies files into the image.
type Copy struct {
	Sources  []string
	Dest     string
	Flags    CopyFlags
	Heredocs []Heredoc
}

// Add adds files, URLs or archives into the image.
type Add struct {
	Sources  []string
	Dest     string
	Flags    AddFlags
	Heredocs []Heredoc
}

// Workdir sets the working directory.
type Workdir struct{ Path string }

// User sets the user (and optionally group).
type User struct{ Name string }

// Cmd sets the default command.
type Cmd struct{ Arguments }

// Entrypoint sets the entrypoint.
type Entrypoint struct{ Arguments }

// Env sets environment variables.
type Env struct{ Pairs []KeyValue }

// Label adds metadata.
type Label struct{ Pairs []KeyValue }

// Expose declares ports.
type Expose struct{ Ports []string }

// Volume declares mount points.
type Volume struct{ Paths []string }

// Arg declares a build argument.
type Arg struct {
	Name       string
	Default    string
	HasDefault bool
}

// StopSignal sets the stop signal.
type StopSignal struct{ Signal string }

// Healthcheck configures the container health check.
type Healthcheck struct {
	// None is true for HEALTHCHECK NONE.
	None  bool
	Flags map[string]string
	Arguments
}

// Shell changes the default shell for shell-form instructions.
type Shell struct{ Args []string }

// Maintainer is the deprecated author field.
type Maintainer struct{ Name string }

// OnBuild wraps a trigger instruction.
type OnBuild struct{ Inner Instruction }

// Comment is a comment line, text after the leading '#' trimmed.
type Comment struct{ Text string }

// Unknown is any line that could not be classified.
type Unknown struct {
	Name string
	Text string
}

func (From) Keyword() string        { return "FROM" }
func (Run) Keyword() string         { return "RUN" }
func (Copy) Keyword() string        { return "COPY" }
func (Add) Keyword() string         { return "ADD" }
func (Workdir) Keyword() string     { return "WORKDIR" }
func (User) Keyword() string        { return "USER" }
func (Cmd) Keyword() string         { return "CMD" }
func (Entrypoint) Keyword() string  { return "ENTRYPOINT" }
func (Env) Keyword() string         { return "ENV" }
func (Label) Keyword() string       { return "LABEL" }
func (Expose) Keyword() string      { return "EXPOSE" }
func (Volume) Keyword() string      { return "VOLUME" }
func (Arg) Keyword() string         { return "ARG" }
func (StopSignal) Keyword() string  { return "STOPSIGNAL" }
func (Healthcheck) Keyword() string { return "HEALTHCHECK" }
func (Shell) Keyword() string       { return "SHELL" }
func (Maintainer) Keyword() string  { return "MAINTAINER" }
func (OnBuild) Keyword() string     { return "ONBUILD" }
func (Comment) Keyword() string     { return "#" }
func (u Unknown) Keyword() string   { return u.Name }

func (From) instruction()        {}
func (Run) instruction()         {}
func (Copy) instruction()        {}
func (Add) instruction()         {}
func (Workdir) instruction()     {}
func (User) instruction()        {}
func (Cmd) instruction()         {}
func (Entrypoint) instruction()  {}
func (Env) instruction()         {}
func (Label) instruction()       {}
func (Expose) instruction()      {}
func (Volume) instruction()      {}
func (Arg) instruction()         {}
func (StopSignal) instruction()  {}
func (Healthcheck) instruction() {}
func (Shell) instruction()       {}
func (Maintainer) instruction()  {}
func (OnBuild) instruction()     {}
func (Comment) instruction()     {}
func (Unknown) instruction()     {}
