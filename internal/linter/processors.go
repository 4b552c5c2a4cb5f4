package linter

import "github.com/wharflab/stagelint/internal/processor"

// Processors returns the standard processor chain and the pragma filter
// (the caller reads [processor.PragmaFilter.Suppressed] from it).
func Processors() (*processor.Chain, *processor.PragmaFilter) {
	pragmaFilter := processor.NewPragmaFilter()
	chain := processor.NewChain(
		processor.NewPathNormalization(),   // Normalize paths for cross-platform consistency
		processor.NewSeverityOverride(),    // Apply severity overrides (must run before EnableFilter)
		processor.NewEnableFilter(),        // Drop ignored severities and excluded codes
		processor.NewPathExclusionFilter(), // Apply per-rule path exclusions
		pragmaFilter,                       // Apply # hadolint ignore comments
		processor.NewSorting(),             // Stable line ordering
		processor.NewSnippetAttachment(),   // Attach source code snippets
	)
	return chain, pragmaFilter
}
