// Package linter is the lint pipeline shared by the CLI and tests.
//
// The pipeline: parse → pragmas → rule inputs (stages and shell views) →
// rule dispatch → optional shellcheck findings → processor chain. Parsing
// and rule evaluation never fail; only reading a file or loading its config
// can.
package linter

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/wharflab/stagelint/internal/config"
	"github.com/wharflab/stagelint/internal/directive"
	"github.com/wharflab/stagelint/internal/dockerfile"
	"github.com/wharflab/stagelint/internal/fileval"
	"github.com/wharflab/stagelint/internal/processor"
	"github.com/wharflab/stagelint/internal/rules"
	"github.com/wharflab/stagelint/internal/shellcheck"
)

// DefaultFile is the path reported when none is given.
const DefaultFile = "Dockerfile"

// Options configures a lint run.
type Options struct {
	// File is used for violation locations and path exclusions.
	File string

	// Registry supplies the rules. Nil means rules.DefaultRegistry().
	Registry *rules.Registry

	// Config is the resolved configuration. Nil means defaults for Lint and
	// LintWith; LintFile discovers the config next to the file instead.
	Config *config.Config

	// ShellAnalyzer supplies SC findings. When nil and shellcheck is enabled
	// in Config, the shellcheck binary from Config is used.
	ShellAnalyzer shellcheck.Analyzer

	// LoadConfig resolves the config of a file when Config is nil.
	// Defaults to config.Load.
	LoadConfig func(path string) (*config.Config, error)
}

// Result is the outcome of linting one file.
type Result struct {
	File string

	// ParseErrors is always empty: the parser is tolerant and turns what it
	// cannot classify into unknown instructions.
	ParseErrors []string

	// Failures are the pragma-filtered violations sorted by line.
	Failures []rules.Violation

	// Suppressed counts violations removed by ignore pragmas.
	Suppressed int

	// Source is the linted text.
	Source []byte
}

// Lint lints text with the default registry.
func Lint(text string, cfg *config.Config) Result {
	return LintWith(context.Background(), text, Options{Config: cfg})
}

// LintWith lints text. ctx only bounds the shellcheck subprocess.
func LintWith(ctx context.Context, text string, opts Options) Result {
	file := opts.File
	if file == "" {
		file = DefaultFile
	}
	file = filepath.ToSlash(file)

	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	reg := opts.Registry
	if reg == nil {
		reg = rules.DefaultRegistry()
	}

	parsed := dockerfile.ParseDetailed(text)
	for _, rec := range parsed.Recovered {
		logrus.WithFields(logrus.Fields{"file": file, "line": rec.Line}).
			Debugf("unparseable instruction kept as unknown: %s", rec.Message)
	}
	items := parsed.Instructions
	pragmas := directive.FromInstructions(items)
	for _, perr := range pragmas.Errors() {
		logrus.WithFields(logrus.Fields{"file": file, "line": perr.Line}).
			Debugf("malformed pragma: %s", perr.Message)
	}

	inputs := Inputs(file, items, pragmas)
	ruleset := EnabledRules(reg, cfg)
	logrus.WithFields(logrus.Fields{
		"file":         file,
		"instructions": len(items),
		"rules":        len(ruleset),
	}).Debug("linting")

	violations := rules.Evaluate(ruleset, inputs)

	if analyzer := shellAnalyzer(opts, cfg); analyzer != nil {
		violations = append(violations, shellcheckViolations(ctx, analyzer, inputs)...)
	}

	chain, pragmaFilter := Processors()
	source := []byte(text)
	failures := chain.Process(violations, processor.NewContext(
		cfg,
		map[string]*directive.PragmaState{file: pragmas},
		map[string][]byte{file: source},
	))

	return Result{
		File:        file,
		ParseErrors: []string{},
		Failures:    failures,
		Suppressed:  pragmaFilter.Suppressed(),
		Source:      source,
	}
}

func shellAnalyzer(opts Options, cfg *config.Config) shellcheck.Analyzer {
	if opts.ShellAnalyzer != nil {
		return opts.ShellAnalyzer
	}
	if cfg.Shellcheck.Enabled {
		return shellcheck.NewRunner(cfg.Shellcheck.Path)
	}
	return nil
}

// LintFile reads, validates and lints the file at path ("-" reads stdin).
// When opts.Config is nil the config is discovered from path.
func LintFile(ctx context.Context, path string, opts Options) (Result, error) {
	if opts.Config == nil {
		load := opts.LoadConfig
		if load == nil {
			load = config.Load
		}
		cfg, err := load(path)
		if err != nil {
			return Result{}, fmt.Errorf("load config for %s: %w", path, err)
		}
		opts.Config = cfg
	}
	if opts.File == "" {
		opts.File = path
	}

	content, err := fileval.ReadFile(path, opts.Config.FileValidation.MaxFileSize)
	if err != nil {
		return Result{}, err
	}
	return LintWith(ctx, string(content), opts), nil
}

// LintFiles lints paths concurrently, one independent run per file.
// Results are in the order of paths. The first error is returned after all
// files finish; results of failed files are zero.
func LintFiles(ctx context.Context, paths []string, opts Options) ([]Result, error) {
	results := make([]Result, len(paths))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			fileOpts := opts
			fileOpts.File = ""
			res, err := LintFile(ctx, path, fileOpts)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	return results, g.Wait()
}
