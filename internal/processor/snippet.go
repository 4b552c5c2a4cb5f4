package processor

import (
	"github.com/wharflab/stagelint/internal/rules"
)

// SnippetAttachment populates the SourceCode field of violations with the
// line they point at.
type SnippetAttachment struct{}

// NewSnippetAttachment creates a new snippet attachment processor.
func NewSnippetAttachment() *SnippetAttachment {
	return &SnippetAttachment{}
}

// Name returns the processor's identifier.
func (p *SnippetAttachment) Name() string {
	return "snippet-attachment"
}

// Process attaches source code snippets to violations.
// Skips violations that already have SourceCode set, file-level violations
// and files missing from the context's FileSources.
func (p *SnippetAttachment) Process(violations []rules.Violation, ctx *Context) []rules.Violation {
	return transformViolations(violations, func(v rules.Violation) rules.Violation {
		if v.SourceCode != "" || v.Location.IsFileLevel() {
			return v
		}
		sm := ctx.GetSourceMap(v.File())
		if sm == nil {
			return v
		}
		v.SourceCode = sm.Line(v.Line())
		return v
	})
}
