package reporter

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wharflab/stagelint/internal/rules"
)

func reportJSON(t *testing.T, violations []rules.Violation, metadata ReportMetadata) JSONOutput {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, NewJSONReporter(&buf).Report(violations, nil, metadata))
	var out JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	return out
}

func TestJSONReporter_LintResults(t *testing.T) {
	t.Parallel()
	withColumn := violationAt("Dockerfile", 7, "SC2086", "Double quote to prevent globbing.", rules.SeverityInfo)
	withColumn.Location.Column = 9

	violations := []rules.Violation{
		violationAt("Dockerfile", 10, "DL3000", "Use absolute WORKDIR", rules.SeverityError),
		withColumn,
		violationAt("Dockerfile", 5, "DL3006", "Always tag the version of an image explicitly", rules.SeverityWarning).
			WithDocURL(rules.HadolintDocURL("DL3006")),
	}
	out := reportJSON(t, violations, ReportMetadata{FilesScanned: 1, RulesEnabled: 42, Files: []string{"Dockerfile"}})

	require.Len(t, out.Results, 1)
	res := out.Results[0]
	assert.Equal(t, "Dockerfile", res.File)
	assert.Empty(t, res.ParseErrors)

	require.Len(t, res.Failures, 3)
	assert.Equal(t, CheckFailure{
		Code:     "DL3006",
		Severity: rules.SeverityWarning,
		Message:  "Always tag the version of an image explicitly",
		Line:     5,
		DocURL:   "https://github.com/hadolint/hadolint/wiki/DL3006",
	}, res.Failures[0])
	assert.Equal(t, "SC2086", res.Failures[1].Code)
	require.NotNil(t, res.Failures[1].Column)
	assert.Equal(t, 9, *res.Failures[1].Column)
	assert.Equal(t, "DL3000", res.Failures[2].Code)

	assert.Equal(t, Summary{
		FilesScanned: 1, RulesEnabled: 42,
		Failures: 3, Errors: 1, Warnings: 1, Info: 1,
	}, out.Summary)
}

func TestJSONReporter_Files(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		violations []rules.Violation
		metadata   ReportMetadata
		wantFiles  []string
		wantCounts []int
	}{
		{
			name:      "clean file keeps its result",
			metadata:  ReportMetadata{Files: []string{"Dockerfile"}},
			wantFiles: []string{"Dockerfile"}, wantCounts: []int{0},
		},
		{
			name: "sorted with forward slashes",
			violations: []rules.Violation{
				violationAt(`svc\api\Dockerfile`, 1, "DL3007", "Using latest", rules.SeverityWarning),
				violationAt("app/Dockerfile", 2, "DL3059", "Multiple consecutive RUN", rules.SeverityInfo),
				violationAt("app/Dockerfile", 4, "DL3048", "Invalid label key", rules.SeverityStyle),
			},
			wantFiles: []string{"app/Dockerfile", "svc/api/Dockerfile"}, wantCounts: []int{2, 1},
		},
		{
			name:      "nothing scanned",
			wantFiles: []string{}, wantCounts: []int{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out := reportJSON(t, tt.violations, tt.metadata)
			files := []string{}
			counts := []int{}
			for _, res := range out.Results {
				files = append(files, res.File)
				counts = append(counts, len(res.Failures))
			}
			assert.Equal(t, tt.wantFiles, files)
			assert.Equal(t, tt.wantCounts, counts)
		})
	}
}

func TestJSONReporter_WireShape(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	err := NewJSONReporter(&buf).Report(
		[]rules.Violation{rules.NewViolation(rules.NewFileLocation("Dockerfile"), "DL3057", "HEALTHCHECK instruction missing.", rules.SeverityInfo)},
		nil,
		ReportMetadata{ParseErrors: map[string][]string{"Dockerfile": {"line 3: bad"}}},
	)
	require.NoError(t, err)

	var raw struct {
		Results []map[string]json.RawMessage `json:"results"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	require.Len(t, raw.Results, 1)
	assert.JSONEq(t, `["line 3: bad"]`, string(raw.Results[0]["parse_errors"]))
	assert.JSONEq(t,
		`[{"code":"DL3057","severity":"info","message":"HEALTHCHECK instruction missing.","line":0}]`,
		string(raw.Results[0]["failures"]))
}
