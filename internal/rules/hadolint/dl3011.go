package hadolint

import (
	"strconv"
	"strings"

	"github.com/wharflab/stagelint/internal/dockerfile"
	"github.com/wharflab/stagelint/internal/rules"
)

// DL3011Rule implements the DL3011 linting rule.
// It checks that EXPOSE instruction ports are valid UNIX ports (0-65535).
type DL3011Rule struct{}

// NewDL3011Rule creates a new DL3011 rule instance.
func NewDL3011Rule() *DL3011Rule {
	return &DL3011Rule{}
}

// Metadata returns the rule metadata.
func (r *DL3011Rule) Metadata() rules.RuleMetadata {
	return hadolintRule("DL3011",
		"Valid UNIX ports range from 0 to 65535",
		"EXPOSE instruction specifies a port outside the valid UNIX range (0-65535)",
		"correctness", rules.SeverityError)
}

// NewRun returns the per-file state of the rule.
// One violation is reported per out-of-range port.
func (r *DL3011Rule) NewRun() rules.Run {
	return rules.NewMultiRun(r.Metadata(), func(in rules.Input) []string {
		expose, ok := in.Instruction.(dockerfile.Expose)
		if !ok {
			return nil
		}
		var msgs []string
		for _, portSpec := range expose.Ports {
			for _, invalid := range validatePortSpec(portSpec) {
				msgs = append(msgs, "valid UNIX ports range from 0 to 65535; "+invalid+" is out of range")
			}
		}
		return msgs
	})
}

// validatePortSpec validates a port specification and returns any invalid port numbers.
// Port specs can be:
//   - Single port: "80", "80/tcp", "80/udp"
//   - Port range: "80-90", "80-90/tcp"
//   - Variable: "${PORT}", "40000-${END}"
//
// Returns empty slice if the port spec is valid or contains variables.
func validatePortSpec(portSpec string) []string {
	if strings.Contains(portSpec, "$") {
		return nil
	}

	// Strip protocol suffix if present (e.g., "80/tcp" -> "80")
	portPart, _, _ := strings.Cut(portSpec, "/")
	if portPart == "" {
		return nil
	}

	// The range separator is a "-" after the first character; a leading "-" is a sign.
	if rangeIdx := strings.Index(portPart[1:], "-"); rangeIdx >= 0 {
		rangeIdx++
		var invalid []string
		for _, p := range []string{portPart[:rangeIdx], portPart[rangeIdx+1:]} {
			if bad := checkPortValue(p); bad != "" {
				invalid = append(invalid, bad)
			}
		}
		return invalid
	}

	if bad := checkPortValue(portPart); bad != "" {
		return []string{bad}
	}
	return nil
}

// checkPortValue returns portStr if it is a number outside the port range.
// Non-numeric values are not this rule's concern.
func checkPortValue(portStr string) string {
	port, err := strconv.ParseInt(portStr, 10, 64)
	if err != nil {
		return ""
	}
	if port < 0 || port > 65535 {
		return portStr
	}
	return ""
}

func init() {
	rules.Register(NewDL3011Rule())
}
