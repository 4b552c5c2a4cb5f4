package reporter

import (
	"bytes"
	"encoding/xml"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wharflab/stagelint/internal/rules"
)

func TestCheckstyleReporter(t *testing.T) {
	withColumn := violationAt("app/Dockerfile", 5, "SC2086", `Double quote "$x"`, rules.SeverityInfo)
	withColumn.Location.Column = 7

	violations := []rules.Violation{
		withColumn,
		violationAt("Dockerfile", 1, "DL3006", "Always tag the version of an image explicitly", rules.SeverityWarning),
		violationAt("app/Dockerfile", 2, "DL3020", "Use COPY instead of ADD", rules.SeverityError),
	}

	var buf bytes.Buffer
	require.NoError(t, NewCheckstyleReporter(&buf).Report(violations, nil, ReportMetadata{}))
	assert.True(t, strings.HasPrefix(buf.String(), xml.Header))

	var report checkstyleReport
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &report))
	assert.Equal(t, "4.3", report.Version)
	require.Len(t, report.Files, 2)

	assert.Equal(t, "Dockerfile", report.Files[0].Name)
	assert.Equal(t, []checkstyleError{
		{Line: 1, Severity: "warning", Message: "Always tag the version of an image explicitly", Source: "DL3006"},
	}, report.Files[0].Errors)

	assert.Equal(t, "app/Dockerfile", report.Files[1].Name)
	assert.Equal(t, []checkstyleError{
		{Line: 2, Severity: "error", Message: "Use COPY instead of ADD", Source: "DL3020"},
		{Line: 5, Column: 7, Severity: "info", Message: `Double quote "$x"`, Source: "SC2086"},
	}, report.Files[1].Errors)
}

func TestCheckstyleReporterEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCheckstyleReporter(&buf).Report(nil, nil, ReportMetadata{}))
	assert.Contains(t, buf.String(), `<checkstyle version="4.3"></checkstyle>`)
}
