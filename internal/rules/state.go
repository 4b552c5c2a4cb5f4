package rules

import "sort"

// Scope says when a stateful rule's data is recreated.
type Scope int

const (
	// ScopeFile keeps data for the whole file.
	ScopeFile Scope = iota
	// ScopeStage recreates data at every FROM, before the FROM is dispatched.
	ScopeStage
)

// State is the accumulator of one rule over one file: the side store Data
// plus the violations found so far.
type State[T any] struct {
	Data T

	meta     RuleMetadata
	file     string
	failures []Violation
}

// Fail records a violation at line with the rule's default severity.
func (s *State[T]) Fail(line int, message string) {
	s.FailAt(line, 0, message)
}

// FailAt records a violation with a column (0 for none).
func (s *State[T]) FailAt(line, column int, message string) {
	s.failures = append(s.failures, Violation{
		Location: NewColumnLocation(s.file, line, column),
		RuleCode: s.meta.Code,
		Message:  message,
		Severity: s.meta.DefaultSeverity,
		DocURL:   s.meta.DocURL,
	})
}

// Failures returns the violations recorded so far.
func (s *State[T]) Failures() []Violation {
	return s.failures
}

// Store is a general purpose side store of named booleans, integers,
// strings and string sets. The zero value is ready to use.
type Store struct {
	bools   map[string]bool
	ints    map[string]int
	strings map[string]string
	sets    map[string]map[string]bool
}

// Bool returns the named boolean (false if unset).
func (s *Store) Bool(name string) bool {
	return s.bools[name]
}

// SetBool sets the named boolean.
func (s *Store) SetBool(name string, v bool) {
	if s.bools == nil {
		s.bools = make(map[string]bool)
	}
	s.bools[name] = v
}

// Int returns the named integer (0 if unset).
func (s *Store) Int(name string) int {
	return s.ints[name]
}

// SetInt sets the named integer.
func (s *Store) SetInt(name string, v int) {
	if s.ints == nil {
		s.ints = make(map[string]int)
	}
	s.ints[name] = v
}

// Incr adds one to the named integer and returns the new value.
func (s *Store) Incr(name string) int {
	v := s.Int(name) + 1
	s.SetInt(name, v)
	return v
}

// String returns the named string and whether it was set.
func (s *Store) String(name string) (string, bool) {
	v, ok := s.strings[name]
	return v, ok
}

// SetString sets the named string.
func (s *Store) SetString(name, v string) {
	if s.strings == nil {
		s.strings = make(map[string]string)
	}
	s.strings[name] = v
}

// Add inserts v into the named set.
func (s *Store) Add(name, v string) {
	if s.sets == nil {
		s.sets = make(map[string]map[string]bool)
	}
	set := s.sets[name]
	if set == nil {
		set = make(map[string]bool)
		s.sets[name] = set
	}
	set[v] = true
}

// Has reports whether v is in the named set.
func (s *Store) Has(name, v string) bool {
	return s.sets[name][v]
}

// Len returns the size of the named set.
func (s *Store) Len(name string) int {
	return len(s.sets[name])
}

// Members returns the named set sorted.
func (s *Store) Members(name string) []string {
	set := s.sets[name]
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
