package reporter

import (
	"bytes"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/require"

	"github.com/wharflab/stagelint/internal/rules"
)

// snapshotRun is a two-file run: one file with findings, one clean file
// that only has a file-level finding.
func snapshotRun() ([]rules.Violation, ReportMetadata) {
	shell := violationAt("Dockerfile", 3, "SC2086", "Double quote to prevent globbing and word splitting.", rules.SeverityInfo)
	shell.Location.Column = 5

	violations := []rules.Violation{
		violationAt("Dockerfile", 4, "DL3000", "Use absolute WORKDIR", rules.SeverityError).
			WithDetail("WORKDIR app"),
		shell,
		violationAt("Dockerfile", 1, "DL3006", "Always tag the version of an image explicitly", rules.SeverityWarning).
			WithDocURL(rules.HadolintDocURL("DL3006")),
		rules.NewViolation(rules.NewFileLocation("build/Dockerfile"), "DL3057", "HEALTHCHECK instruction missing.", rules.SeverityStyle),
	}
	return violations, ReportMetadata{
		FilesScanned: 2,
		RulesEnabled: 60,
		Files:        []string{"Dockerfile", "build/Dockerfile"},
	}
}

func TestGitHubActionsReporter_Snapshot(t *testing.T) {
	t.Parallel()
	violations, metadata := snapshotRun()
	var buf bytes.Buffer
	require.NoError(t, NewGitHubActionsReporter(&buf).Report(violations, nil, metadata))
	snaps.WithConfig(snaps.Ext(".txt")).MatchStandaloneSnapshot(t, buf.String())
}

func TestJSONReporter_Snapshot(t *testing.T) {
	t.Parallel()
	violations, metadata := snapshotRun()
	var buf bytes.Buffer
	require.NoError(t, NewJSONReporter(&buf).Report(violations, nil, metadata))
	snaps.WithConfig(snaps.Ext(".json")).MatchStandaloneSnapshot(t, buf.String())
}
