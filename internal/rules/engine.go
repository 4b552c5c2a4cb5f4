package rules

// Evaluate runs every rule over the inputs of one file.
//
// Dispatch is rule-outer, instruction-inner: each rule gets a fresh Run, sees
// every instruction in file order, and is finalized before the next rule
// starts. Violations are returned grouped by rule in the order given, each
// group in discovery order.
func Evaluate(ruleset []Rule, inputs []Input) []Violation {
	var out []Violation
	for _, rule := range ruleset {
		out = append(out, EvaluateRule(rule, inputs)...)
	}
	return out
}

// EvaluateRule runs a single rule over the inputs of one file.
func EvaluateRule(rule Rule, inputs []Input) []Violation {
	run := rule.NewRun()
	for _, in := range inputs {
		run.Check(in)
	}
	run.Finalize()
	return run.Failures()
}
