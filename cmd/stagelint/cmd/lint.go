package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	"github.com/wharflab/stagelint/internal/config"
	"github.com/wharflab/stagelint/internal/discovery"
	"github.com/wharflab/stagelint/internal/linter"
	"github.com/wharflab/stagelint/internal/reporter"
	"github.com/wharflab/stagelint/internal/rules"
	"github.com/wharflab/stagelint/internal/version"

	// Register the DL rule set.
	_ "github.com/wharflab/stagelint/internal/rules/all"
)

// severityFlags override the severity of the listed rule codes.
var severityFlags = []string{"error", "warning", "info", "style"}

func lintCommand() *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to config file (default: auto-discover)",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format: " + strings.Join(config.Formats, ", "),
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output path: stdout, stderr, or file path",
		},
		&cli.BoolFlag{
			Name:    "no-color",
			Usage:   "Disable colored output",
			Sources: cli.EnvVars("NO_COLOR"),
		},
		&cli.BoolFlag{
			Name:  "hide-source",
			Usage: "Hide source code snippets",
		},
		&cli.StringFlag{
			Name:    "failure-threshold",
			Aliases: []string{"t"},
			Usage:   "Lowest severity that fails the run: error, warning, info, style, none",
		},
		&cli.BoolFlag{
			Name:  "no-fail",
			Usage: "Exit 0 even when violations are found",
		},
		&cli.StringSliceFlag{
			Name:  "ignore",
			Usage: "Disable a rule code or pattern (can be repeated)",
		},
		&cli.StringSliceFlag{
			Name:  "include",
			Usage: "Enable a rule code or pattern, including opt-in rules (can be repeated)",
		},
		&cli.BoolFlag{
			Name:  "disable-ignore-pragma",
			Usage: "Ignore \"# hadolint ignore=\" comments",
		},
		&cli.BoolFlag{
			Name:  "shellcheck",
			Usage: "Run shellcheck on RUN scripts",
		},
		&cli.StringFlag{
			Name:  "shellcheck-path",
			Usage: "Path to the shellcheck binary",
		},
		&cli.StringSliceFlag{
			Name:    "exclude",
			Usage:   "Glob pattern of files to skip (can be repeated)",
			Sources: cli.EnvVars("STAGELINT_EXCLUDE"),
		},
	}
	for _, sev := range severityFlags {
		flags = append(flags, &cli.StringSliceFlag{
			Name:  sev,
			Usage: "Report the given rule codes as " + sev + " (can be repeated)",
		})
	}

	return &cli.Command{
		Name:      "lint",
		Usage:     "Lint Dockerfile(s) for issues",
		ArgsUsage: "[DOCKERFILE|DIR|GLOB|-]...",
		Flags:     flags,
		Action:    runLint,
	}
}

// runLint is the action handler for the lint command.
func runLint(ctx context.Context, cmd *cli.Command) error {
	inputs := cmd.Args().Slice()
	if len(inputs) == 0 {
		inputs = []string{"."}
	}

	files, err := discovery.Discover(inputs, discovery.Options{
		ExcludePatterns: cmd.StringSlice("exclude"),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to discover files: %v\n", err)
		return cli.Exit("", ExitConfigError)
	}
	if len(files) == 0 {
		fmt.Fprintf(os.Stderr, "Error: no Dockerfiles found in %s\n", strings.Join(inputs, ", "))
		return cli.Exit("", ExitConfigError)
	}

	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = displayPath(f.Path)
	}
	logrus.WithField("files", len(paths)).Debug("discovered Dockerfiles")

	results, err := linter.LintFiles(ctx, paths, linter.Options{
		LoadConfig: func(path string) (*config.Config, error) {
			return loadConfigForFile(cmd, path)
		},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.Exit("", ExitConfigError)
	}

	// Output settings come from the config of the first file.
	cfg, err := loadConfigForFile(cmd, paths[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.Exit("", ExitConfigError)
	}

	var violations []rules.Violation
	sources := make(map[string][]byte, len(results))
	metadata := reporter.ReportMetadata{
		FilesScanned: len(results),
		RulesEnabled: len(linter.EnabledRuleCodes(rules.DefaultRegistry(), cfg)),
		ParseErrors:  make(map[string][]string),
	}
	for _, res := range results {
		violations = append(violations, res.Failures...)
		sources[res.File] = res.Source
		metadata.Files = append(metadata.Files, res.File)
		if len(res.ParseErrors) > 0 {
			metadata.ParseErrors[res.File] = res.ParseErrors
		}
		if res.Suppressed > 0 {
			logrus.WithFields(logrus.Fields{"file": res.File, "suppressed": res.Suppressed}).
				Debug("violations suppressed by pragmas")
		}
	}

	if err := writeReport(cmd, cfg, violations, sources, metadata); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.Exit("", ExitConfigError)
	}

	if cmd.Bool("no-fail") {
		return nil
	}
	if code := determineExitCode(violations, cfg.FailureThreshold); code != ExitSuccess {
		return cli.Exit("", code)
	}
	return nil
}

// loadConfigForFile loads the config of targetPath with CLI flags applied
// on top. Scalar flags go through koanf overrides so they are validated with
// the rest; list flags extend what the config file sets.
func loadConfigForFile(cmd *cli.Command, targetPath string) (*config.Config, error) {
	cfg, err := config.LoadWithOverrides(targetPath, cmd.String("config"), cliOverrides(cmd))
	if err != nil {
		return nil, fmt.Errorf("failed to load config for %s: %w", targetPath, err)
	}

	cfg.Rules.Exclude = append(cfg.Rules.Exclude, cmd.StringSlice("ignore")...)
	cfg.Rules.Include = append(cfg.Rules.Include, cmd.StringSlice("include")...)
	for _, sev := range severityFlags {
		for _, code := range cmd.StringSlice(sev) {
			ruleCfg := config.RuleConfig{}
			if existing := cfg.Rules.Get(code); existing != nil {
				ruleCfg = *existing
			}
			ruleCfg.Severity = sev
			cfg.Rules.Set(code, ruleCfg)
		}
	}
	return cfg, nil
}

func cliOverrides(cmd *cli.Command) map[string]any {
	overrides := map[string]any{}
	output := map[string]any{}

	if cmd.IsSet("format") {
		format := cmd.String("format")
		if f, err := reporter.ParseFormat(format); err == nil {
			format = string(f)
		}
		output["format"] = format
	}
	if cmd.IsSet("output") {
		output["path"] = cmd.String("output")
	}
	if cmd.IsSet("no-color") && cmd.Bool("no-color") {
		output["no-color"] = true
	}
	if len(output) > 0 {
		overrides["output"] = output
	}

	if cmd.IsSet("failure-threshold") {
		overrides["failure-threshold"] = cmd.String("failure-threshold")
	}
	if cmd.Bool("disable-ignore-pragma") {
		overrides["disable-ignore-pragma"] = true
	}

	shellcheck := map[string]any{}
	if cmd.Bool("shellcheck") {
		shellcheck["enabled"] = true
	}
	if cmd.IsSet("shellcheck-path") {
		shellcheck["path"] = cmd.String("shellcheck-path")
	}
	if len(shellcheck) > 0 {
		overrides["shellcheck"] = shellcheck
	}
	return overrides
}

// writeReport formats and writes the violation report.
func writeReport(
	cmd *cli.Command, cfg *config.Config, violations []rules.Violation,
	sources map[string][]byte, metadata reporter.ReportMetadata,
) error {
	format, err := reporter.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	writer, closeWriter, err := reporter.GetWriter(cfg.Output.Path)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeWriter(); err != nil {
			logrus.WithError(err).Warn("failed to close output")
		}
	}()

	opts := reporter.Options{
		Format:      format,
		Writer:      writer,
		ShowSource:  !cmd.Bool("hide-source"),
		ToolVersion: version.RawVersion(),
	}
	if cfg.Output.NoColor {
		noColor := false
		opts.Color = &noColor
	}

	rep, err := reporter.New(opts)
	if err != nil {
		return fmt.Errorf("failed to create reporter: %w", err)
	}

	if err := rep.Report(violations, sources, metadata); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// determineExitCode returns ExitViolations when a violation reaches the
// failure threshold. "none" (or "ignore") never fails.
func determineExitCode(violations []rules.Violation, threshold string) int {
	level, err := rules.ParseSeverity(threshold)
	if err != nil {
		logrus.WithField("failure-threshold", threshold).Error("invalid failure threshold")
		return ExitConfigError
	}
	if level == rules.SeverityIgnore {
		return ExitSuccess
	}
	for _, v := range violations {
		if v.Severity.IsAtLeast(level) {
			return ExitViolations
		}
	}
	return ExitSuccess
}

// displayPath trims the working directory from absolute discovery results.
func displayPath(path string) string {
	if !filepath.IsAbs(path) {
		return path
	}
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(wd, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
