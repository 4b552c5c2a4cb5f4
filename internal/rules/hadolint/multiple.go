package hadolint

import "github.com/wharflab/stagelint/internal/rules"

// repeatedInStage builds a stage-scoped run that reports every occurrence of
// an instruction after the first in its stage.
func repeatedInStage(meta rules.RuleMetadata, matches func(rules.Input) bool) rules.Run {
	return rules.NewStatefulRun(meta, rules.ScopeStage,
		func() int { return 0 },
		func(st *rules.State[int], in rules.Input) {
			if !matches(in) {
				return
			}
			st.Data++
			if st.Data > 1 {
				st.Fail(in.Line, meta.Name)
			}
		},
	)
}
