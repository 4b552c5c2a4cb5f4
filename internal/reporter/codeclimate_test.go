package reporter

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wharflab/stagelint/internal/rules"
)

func TestCodeClimateReporter(t *testing.T) {
	violations := []rules.Violation{
		violationAt("Dockerfile", 4, "DL3048", "Invalid label key.", rules.SeverityStyle),
		violationAt("Dockerfile", 2, "DL3008", "Pin versions in apt get install.", rules.SeverityWarning).
			WithDetail("Use apt-get install <package>=<version>"),
		rules.NewViolation(rules.NewFileLocation("Dockerfile"), "DL3057", "HEALTHCHECK instruction missing.", rules.SeverityInfo),
	}

	var buf bytes.Buffer
	require.NoError(t, NewCodeClimateReporter(&buf).Report(violations, nil, ReportMetadata{}))

	var issues []CodeClimateIssue
	require.NoError(t, json.Unmarshal(buf.Bytes(), &issues))
	require.Len(t, issues, 3)

	assert.Equal(t, "DL3057", issues[0].CheckName)
	assert.Equal(t, CodeClimateLines{Begin: 1, End: 1}, issues[0].Location.Lines, "file-level issues point at line 1")
	assert.Equal(t, "minor", issues[0].Severity)

	assert.Equal(t, "issue", issues[1].Type)
	assert.Equal(t, "major", issues[1].Severity)
	assert.Equal(t, []string{"Bug Risk"}, issues[1].Categories)
	require.NotNil(t, issues[1].Content)
	assert.Equal(t, "Use apt-get install <package>=<version>", issues[1].Content.Body)

	assert.Equal(t, []string{"Style"}, issues[2].Categories)
	assert.Equal(t, "info", issues[2].Severity)
	assert.Nil(t, issues[2].Content)

	assert.Len(t, issues[1].Fingerprint, 64)
	assert.NotEqual(t, issues[1].Fingerprint, issues[2].Fingerprint)
}

func TestCodeClimateFingerprintStable(t *testing.T) {
	a := fingerprint("Dockerfile", 3, "DL3008", "msg")
	assert.Equal(t, a, fingerprint("Dockerfile", 3, "DL3008", "msg"))
	assert.NotEqual(t, a, fingerprint("Dockerfile", 4, "DL3008", "msg"))
}

func TestCodeClimateReporterEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCodeClimateReporter(&buf).Report(nil, nil, ReportMetadata{}))
	assert.JSONEq(t, "[]", buf.String())
}
