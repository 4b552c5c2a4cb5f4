package processor

import (
	"slices"

	"github.com/wharflab/stagelint/internal/rules"
)

// Sorting orders violations by file, then line. The sort is stable, so
// violations on the same line keep their discovery order.
type Sorting struct{}

// NewSorting creates a new sorting processor.
func NewSorting() *Sorting {
	return &Sorting{}
}

// Name returns the processor's identifier.
func (p *Sorting) Name() string {
	return "sorting"
}

// Process sorts violations in a stable order.
func (p *Sorting) Process(violations []rules.Violation, _ *Context) []rules.Violation {
	return SortViolations(violations)
}

// SortViolations returns a sorted copy of violations.
func SortViolations(violations []rules.Violation) []rules.Violation {
	sorted := slices.Clone(violations)
	slices.SortStableFunc(sorted, func(a, b rules.Violation) int {
		if a.File() != b.File() {
			if a.File() < b.File() {
				return -1
			}
			return 1
		}
		return a.Line() - b.Line()
	})
	return sorted
}
