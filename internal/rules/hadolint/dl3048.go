package hadolint

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/wharflab/stagelint/internal/dockerfile"
	"github.com/wharflab/stagelint/internal/rules"
)

var (
	labelKeyRegex = regexp.MustCompile(`^[a-z0-9]([a-z0-9.-]*[a-z0-9])?$`)

	reservedLabelNamespaces = []string{"com.docker.", "io.docker.", "org.dockerproject."}
)

// DL3048Rule implements the DL3048 linting rule.
// Keys that contain a variable are not checked.
type DL3048Rule struct{}

// NewDL3048Rule creates a new DL3048 rule instance.
func NewDL3048Rule() *DL3048Rule {
	return &DL3048Rule{}
}

// Metadata returns the rule metadata.
func (r *DL3048Rule) Metadata() rules.RuleMetadata {
	return hadolintRule("DL3048",
		"Invalid label key.",
		"Label keys should be lower-case reverse-DNS names outside the reserved Docker namespaces",
		"style", rules.SeverityStyle)
}

// NewRun returns the per-file state of the rule.
func (r *DL3048Rule) NewRun() rules.Run {
	return rules.NewMultiRun(r.Metadata(), func(in rules.Input) []string {
		label, ok := in.Instruction.(dockerfile.Label)
		if !ok {
			return nil
		}
		var msgs []string
		for _, kv := range label.Pairs {
			if hasVariable(kv.Key) || validLabelKey(kv.Key) {
				continue
			}
			msgs = append(msgs, fmt.Sprintf("Invalid label key: %q.", kv.Key))
		}
		return msgs
	})
}

func validLabelKey(key string) bool {
	if !labelKeyRegex.MatchString(key) {
		return false
	}
	if strings.Contains(key, "..") || strings.Contains(key, "--") {
		return false
	}
	for _, ns := range reservedLabelNamespaces {
		if strings.HasPrefix(key, ns) {
			return false
		}
	}
	return true
}

func init() {
	rules.Register(NewDL3048Rule())
}
