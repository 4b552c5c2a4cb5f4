// Package cmd implements the stagelint command line.
package cmd

import (
	"context"
	"errors"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	"github.com/wharflab/stagelint/internal/version"
)

// Exit codes
const (
	ExitSuccess     = 0 // No violations at or above the failure threshold
	ExitViolations  = 1 // Violations found at or above the failure threshold
	ExitConfigError = 2 // Config, discovery or read error
)

// NewApp creates the CLI application
func NewApp() *cli.Command {
	return &cli.Command{
		Name:    "stagelint",
		Usage:   "A hadolint-compatible linter for Dockerfiles and Containerfiles",
		Version: version.Version(),
		Description: `stagelint checks Dockerfiles for the hadolint DL rules, with
stage-aware state, "# hadolint ignore=" pragmas and optional
shellcheck findings for RUN scripts.

Examples:
  stagelint lint Dockerfile
  stagelint lint --format sarif --output report.sarif .
  stagelint lint --ignore DL3008 --failure-threshold warning ./services
  cat Dockerfile | stagelint lint -`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Usage:   "Log debug information to stderr",
				Sources: cli.EnvVars("STAGELINT_VERBOSE"),
			},
		},
		Before: configureLogging,
		Commands: []*cli.Command{
			lintCommand(),
			rulesCommand(),
			versionCommand(),
		},
	}
}

func configureLogging(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableColors:    !isatty.IsTerminal(os.Stderr.Fd()),
		DisableTimestamp: true,
	})
	if cmd.Bool("verbose") {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.WarnLevel)
	}
	return ctx, nil
}

// Execute runs the CLI application
func Execute() error {
	return NewApp().Run(context.Background(), os.Args)
}

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var coder cli.ExitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return ExitConfigError
}
