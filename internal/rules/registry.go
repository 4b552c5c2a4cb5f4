package rules

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry holds the known rules. It is safe for concurrent use; linting
// only reads it.
type Registry struct {
	mu    sync.RWMutex
	rules map[string]Rule
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		rules: make(map[string]Rule),
	}
}

// Register adds a rule to the registry.
// Panics if a rule with the same code is already registered.
func (r *Registry) Register(rule Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()

	code := strings.ToUpper(rule.Metadata().Code)
	if _, exists := r.rules[code]; exists {
		panic(fmt.Sprintf("rule %q already registered", code))
	}
	r.rules[code] = rule
}

// Get retrieves a rule by its code (any case). Returns nil if not found.
func (r *Registry) Get(code string) Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.rules[strings.ToUpper(code)]
}

// Has returns true if a rule with the given code is registered.
func (r *Registry) Has(code string) bool {
	return r.Get(code) != nil
}

// All returns all registered rules sorted by code.
func (r *Registry) All() []Rule {
	return r.Select(func(RuleMetadata) bool { return true })
}

// EnabledByDefault returns rules that run without explicit opt-in.
func (r *Registry) EnabledByDefault() []Rule {
	return r.Select(func(m RuleMetadata) bool { return m.EnabledByDefault })
}

// ByCategory returns rules filtered by category.
func (r *Registry) ByCategory(category string) []Rule {
	return r.Select(func(m RuleMetadata) bool { return m.Category == category })
}

// Select returns the rules whose metadata satisfies keep, sorted by code.
// The sort fixes dispatch order, which keeps output deterministic.
func (r *Registry) Select(keep func(RuleMetadata) bool) []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Rule, 0, len(r.rules))
	for _, rule := range r.rules {
		if keep(rule.Metadata()) {
			result = append(result, rule)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Metadata().Code < result[j].Metadata().Code
	})
	return result
}

// Codes returns all registered rule codes sorted alphabetically.
func (r *Registry) Codes() []string {
	all := r.All()
	codes := make([]string, len(all))
	for i, rule := range all {
		codes[i] = rule.Metadata().Code
	}
	return codes
}

// defaultRegistry is populated by the init functions of rule packages.
var defaultRegistry = NewRegistry()

// DefaultRegistry returns the global default registry.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Register adds a rule to the default registry.
func Register(rule Rule) {
	defaultRegistry.Register(rule)
}

// Get retrieves a rule from the default registry.
func Get(code string) Rule {
	return defaultRegistry.Get(code)
}

// All returns all rules from the default registry.
func All() []Rule {
	return defaultRegistry.All()
}

// Codes returns all rule codes from the default registry.
func Codes() []string {
	return defaultRegistry.Codes()
}
