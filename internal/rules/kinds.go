package rules

// The three dispatch shapes share the Run capability. Stateless runs keep
// only their failure list; stateful runs also carry a State; finalizing runs
// add an end-of-file step. Finalize is a no-op for the first two.

type simpleRun struct {
	meta     RuleMetadata
	violates func(Input) bool
	state    State[struct{}]
}

// NewSimpleRun returns a stateless run that records one violation, with the
// rule's Name as message, for every instruction violates reports.
func NewSimpleRun(meta RuleMetadata, violates func(Input) bool) Run {
	return &simpleRun{meta: meta, violates: violates, state: State[struct{}]{meta: meta}}
}

func (r *simpleRun) Check(in Input) {
	r.state.file = in.File
	if r.violates(in) {
		r.state.Fail(in.Line, r.meta.Name)
	}
}

func (r *simpleRun) Finalize() {}

func (r *simpleRun) Failures() []Violation { return r.state.Failures() }

type multiRun struct {
	check func(Input) []string
	state State[struct{}]
}

// NewMultiRun returns a stateless run that records one violation per
// message check returns for an instruction.
func NewMultiRun(meta RuleMetadata, check func(Input) []string) Run {
	return &multiRun{check: check, state: State[struct{}]{meta: meta}}
}

func (r *multiRun) Check(in Input) {
	r.state.file = in.File
	for _, msg := range r.check(in) {
		r.state.Fail(in.Line, msg)
	}
}

func (r *multiRun) Finalize() {}

func (r *multiRun) Failures() []Violation { return r.state.Failures() }

type statefulRun[T any] struct {
	scope    Scope
	init     func() T
	step     func(*State[T], Input)
	finalize func(*State[T])
	state    State[T]
}

// NewStatefulRun returns a run that threads State through every
// instruction. With ScopeStage the data is recreated at each FROM before
// step sees the FROM.
func NewStatefulRun[T any](meta RuleMetadata, scope Scope, init func() T, step func(*State[T], Input)) Run {
	return NewFinalizingRun(meta, scope, init, step, nil)
}

// NewFinalizingRun is NewStatefulRun plus a finalize step called once after
// the last instruction.
func NewFinalizingRun[T any](
	meta RuleMetadata,
	scope Scope,
	init func() T,
	step func(*State[T], Input),
	finalize func(*State[T]),
) Run {
	return &statefulRun[T]{
		scope:    scope,
		init:     init,
		step:     step,
		finalize: finalize,
		state:    State[T]{Data: init(), meta: meta},
	}
}

func (r *statefulRun[T]) Check(in Input) {
	r.state.file = in.File
	if r.scope == ScopeStage && in.IsFrom() {
		r.state.Data = r.init()
	}
	r.step(&r.state, in)
}

func (r *statefulRun[T]) Finalize() {
	if r.finalize != nil {
		r.finalize(&r.state)
	}
}

func (r *statefulRun[T]) Failures() []Violation { return r.state.Failures() }
