// Package processor provides a composable violation processing pipeline.
//
// Violations flow through a sequence of processors, each transforming the
// slice (filtering, modifying, or augmenting).
//
// Standard pipeline order:
//  1. PathNormalization - Cross-platform path consistency
//  2. SeverityOverride - Apply config severity overrides
//  3. EnableFilter - Remove violations for disabled rules
//  4. PathExclusionFilter - Remove per-rule path exclusions
//  5. PragmaFilter - Apply # hadolint ignore=... comments
//  6. Sorting - Stable line ordering
//  7. SnippetAttachment - Populate SourceCode field
package processor

import (
	"github.com/wharflab/stagelint/internal/config"
	"github.com/wharflab/stagelint/internal/directive"
	"github.com/wharflab/stagelint/internal/rules"
	"github.com/wharflab/stagelint/internal/sourcemap"
)

// Processor transforms a slice of violations.
type Processor interface {
	// Name returns the processor's identifier (for debugging/logging).
	Name() string

	// Process applies the processor's logic to violations.
	// Must not modify the input slice; return a new slice if filtering.
	Process(violations []rules.Violation, ctx *Context) []rules.Violation
}

// Context provides shared state for processors.
// Populated once before running the chain, then passed to each processor.
type Context struct {
	// Config is the loaded configuration. Nil means defaults.
	Config *config.Config

	// Pragmas maps file paths to their pragma state.
	Pragmas map[string]*directive.PragmaState

	// FileSources maps file paths to their raw source content.
	// Used by SnippetAttachment for extracting source code.
	FileSources map[string][]byte

	// sourceMaps caches parsed source maps by file path.
	sourceMaps map[string]*sourcemap.SourceMap
}

// NewContext creates a new processor context.
func NewContext(cfg *config.Config, pragmas map[string]*directive.PragmaState, fileSources map[string][]byte) *Context {
	return &Context{
		Config:      cfg,
		Pragmas:     pragmas,
		FileSources: fileSources,
		sourceMaps:  make(map[string]*sourcemap.SourceMap),
	}
}

// rulesConfig returns the rule configuration, or nil.
func (ctx *Context) rulesConfig() *config.RulesConfig {
	if ctx == nil || ctx.Config == nil {
		return nil
	}
	return &ctx.Config.Rules
}

// GetSourceMap returns or creates a SourceMap for the given file.
// Returns nil if the file is not in FileSources.
func (ctx *Context) GetSourceMap(file string) *sourcemap.SourceMap {
	if sm, ok := ctx.sourceMaps[file]; ok {
		return sm
	}
	source, ok := ctx.FileSources[file]
	if !ok {
		return nil
	}
	sm := sourcemap.New(source)
	ctx.sourceMaps[file] = sm
	return sm
}

// Chain runs processors in sequence.
type Chain struct {
	processors []Processor
}

// NewChain creates a new processor chain.
func NewChain(processors ...Processor) *Chain {
	return &Chain{processors: processors}
}

// Process runs all processors in sequence.
func (c *Chain) Process(violations []rules.Violation, ctx *Context) []rules.Violation {
	for _, p := range c.processors {
		violations = p.Process(violations, ctx)
	}
	return violations
}

// filterViolations returns a new slice containing only violations where
// keep returns true.
func filterViolations(violations []rules.Violation, keep func(v rules.Violation) bool) []rules.Violation {
	result := make([]rules.Violation, 0, len(violations))
	for _, v := range violations {
		if keep(v) {
			result = append(result, v)
		}
	}
	return result
}

// transformViolations returns a new slice with each violation transformed.
func transformViolations(
	violations []rules.Violation,
	transform func(v rules.Violation) rules.Violation,
) []rules.Violation {
	result := make([]rules.Violation, len(violations))
	for i, v := range violations {
		result[i] = transform(v)
	}
	return result
}
