package rules

import (
	"testing"
)

// mockRule is a simple rule for testing.
type mockRule struct {
	code     string
	enabled  bool
	category string
	severity Severity
}

func (r *mockRule) Metadata() RuleMetadata {
	return RuleMetadata{
		Code:             r.code,
		Name:             "Mock Rule " + r.code,
		Description:      "A mock rule for testing",
		DefaultSeverity:  r.severity,
		Category:         r.category,
		EnabledByDefault: r.enabled,
	}
}

func (r *mockRule) NewRun() Run {
	return NewSimpleRun(r.Metadata(), func(Input) bool { return false })
}

func TestRegistry_Register(t *testing.T) {
	t.Parallel()
	reg := NewRegistry()

	reg.Register(&mockRule{code: "DL9001"})

	if !reg.Has("DL9001") {
		t.Error("Has() = false after registration")
	}
	if !reg.Has("dl9001") {
		t.Error("lookup should be case-insensitive")
	}
	if reg.Get("DL9002") != nil {
		t.Error("Get() of unknown code should be nil")
	}
}

func TestRegistry_Register_Duplicate(t *testing.T) {
	t.Parallel()
	reg := NewRegistry()
	rule := &mockRule{code: "DL9001"}
	reg.Register(rule)

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()

	reg.Register(rule)
}

func TestRegistry_All(t *testing.T) {
	t.Parallel()
	reg := NewRegistry()
	reg.Register(&mockRule{code: "DL9003"})
	reg.Register(&mockRule{code: "DL9001"})
	reg.Register(&mockRule{code: "DL9002"})

	all := reg.All()
	if len(all) != 3 {
		t.Fatalf("All() returned %d rules, want 3", len(all))
	}
	for i, want := range []string{"DL9001", "DL9002", "DL9003"} {
		if got := all[i].Metadata().Code; got != want {
			t.Errorf("All()[%d] = %s, want %s", i, got, want)
		}
	}

	codes := reg.Codes()
	if len(codes) != 3 || codes[0] != "DL9001" || codes[2] != "DL9003" {
		t.Errorf("Codes() = %v", codes)
	}
}

func TestRegistry_Filters(t *testing.T) {
	t.Parallel()
	reg := NewRegistry()
	reg.Register(&mockRule{code: "DL9001", enabled: true, category: "security"})
	reg.Register(&mockRule{code: "DL9002", enabled: false, category: "style"})
	reg.Register(&mockRule{code: "DL9003", enabled: true, category: "style"})

	if got := reg.EnabledByDefault(); len(got) != 2 {
		t.Errorf("EnabledByDefault() returned %d rules, want 2", len(got))
	}
	style := reg.ByCategory("style")
	if len(style) != 2 || style[0].Metadata().Code != "DL9002" {
		t.Errorf("ByCategory(style) = %v", style)
	}
	if got := reg.ByCategory("none"); len(got) != 0 {
		t.Errorf("ByCategory(none) returned %d rules", len(got))
	}
}
