package linter

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wharflab/stagelint/internal/config"
	"github.com/wharflab/stagelint/internal/rules"
	_ "github.com/wharflab/stagelint/internal/rules/all"
	"github.com/wharflab/stagelint/internal/shellcheck"
)

// linesOf returns the lines of the failures with the given code.
func linesOf(res Result, code string) []int {
	var lines []int
	for _, v := range res.Failures {
		if v.RuleCode == code {
			lines = append(lines, v.Line())
		}
	}
	return lines
}

func TestLint_StageReset(t *testing.T) {
	t.Parallel()

	res := Lint("FROM debian:12 AS build\nUSER root\nFROM debian:12\nUSER app\n", nil)
	assert.Empty(t, linesOf(res, "DL3002"), "root in an earlier stage must not leak")

	res = Lint("FROM debian:12 AS build\nUSER app\nFROM debian:12\nUSER root\n", nil)
	assert.Equal(t, []int{4}, linesOf(res, "DL3002"))
}

func TestLint_PragmaSuppression(t *testing.T) {
	t.Parallel()

	src := "FROM ubuntu:24.04\n" +
		"# hadolint ignore=DL3008\n" +
		"RUN apt-get install -y nginx\n" +
		"RUN apt-get install -y nginx\n"
	res := Lint(src, nil)
	assert.Equal(t, []int{4}, linesOf(res, "DL3008"))
	assert.Positive(t, res.Suppressed)

	res = Lint("# hadolint global ignore=DL3008,DL3015\n"+src, nil)
	assert.Empty(t, linesOf(res, "DL3008"))
	assert.Empty(t, linesOf(res, "DL3015"))
}

func TestLint_BareIgnoreIsInert(t *testing.T) {
	t.Parallel()
	res := Lint("FROM ubuntu:24.04\n# hadolint ignore\nRUN apt-get install -y nginx\n", nil)
	assert.Equal(t, []int{3}, linesOf(res, "DL3008"))
	assert.Zero(t, res.Suppressed)
}

func TestLint_PragmaDisabledByConfig(t *testing.T) {
	t.Parallel()
	cfg := config.Default()
	cfg.DisableIgnorePragma = true
	res := Lint("FROM ubuntu:24.04\n# hadolint ignore=DL3008\nRUN apt-get install -y nginx\n", cfg)
	assert.Equal(t, []int{3}, linesOf(res, "DL3008"))
}

func TestLint_TagPinning(t *testing.T) {
	t.Parallel()
	src := "ARG BASE=alpine:3.20\n" +
		"FROM ubuntu:24.04 AS builder\n" +
		"FROM scratch\n" +
		"FROM ${BASE}\n" +
		"FROM builder\n" +
		"FROM ubuntu\n"
	res := Lint(src, nil)
	assert.Equal(t, []int{6}, linesOf(res, "DL3006"))
}

func TestLint_StageReferences(t *testing.T) {
	t.Parallel()
	src := "FROM golang:1.22 AS builder\n" +
		"COPY --from=builder /a /b\n" +
		"FROM alpine:3.20\n" +
		"COPY --from=builder /a /b\n" +
		"COPY --from=nope /a /b\n" +
		"COPY --from=nginx:1.27 /etc/nginx /etc/nginx\n" +
		"COPY --from=0 /a /b\n" +
		"COPY --from=1 /a /b\n"
	res := Lint(src, nil)
	assert.Equal(t, []int{2, 8}, linesOf(res, "DL3023"))
	assert.Equal(t, []int{2, 5, 8}, linesOf(res, "DL3022"))
}

func TestLint_ShellTextIsNotHeredoc(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		src  string
		code string
		want []int
	}{
		{
			name: "arithmetic shift",
			src:  "FROM alpine:3.20\nRUN echo $((1<<BITS))\nUSER root\nFROM ubuntu\n",
			code: "DL3006",
			want: []int{4},
		},
		{
			name: "quoted marker",
			src:  "FROM alpine:3.20\nRUN echo \"use <<EOF for heredocs\"\nUSER root\n",
			code: "DL3002",
			want: []int{3},
		},
		{
			name: "unterminated heredoc",
			src:  "FROM alpine:3.20\nRUN <<EOF\nUSER root\n",
			code: "DL3006",
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := Lint(tt.src, nil)
			assert.Empty(t, res.ParseErrors)
			assert.Equal(t, tt.want, linesOf(res, tt.code))
		})
	}
}

func TestLint_RejectedInstructionKeepsLaterRules(t *testing.T) {
	t.Parallel()
	res := Lint("FROM alpine:3.20\nENV ONLYKEY\nUSER root\nFROM ubuntu\n", nil)
	assert.Empty(t, res.ParseErrors)
	assert.Equal(t, []int{3}, linesOf(res, "DL3002"))
	assert.Equal(t, []int{4}, linesOf(res, "DL3006"))
}

func TestLint_WgetAndCurl(t *testing.T) {
	t.Parallel()

	res := Lint("FROM debian:12\nRUN wget http://x\nRUN curl http://y\n", nil)
	assert.Equal(t, []int{3}, linesOf(res, "DL4001"))

	res = Lint("FROM debian:12\nRUN curl http://x\nFROM debian:12\nRUN curl http://y\n", nil)
	assert.Empty(t, linesOf(res, "DL4001"))
}

func TestLint_SortedAndIdempotent(t *testing.T) {
	t.Parallel()
	src := "FROM ubuntu\n" +
		"MAINTAINER me\n" +
		"RUN cd /tmp && apt-get install nginx\n" +
		"RUN sudo make install\n" +
		"USER root\n"

	first := Lint(src, nil)
	second := Lint(src, nil)
	require.NotEmpty(t, first.Failures)
	assert.Equal(t, first.Failures, second.Failures)
	assert.Empty(t, first.ParseErrors)

	for i := 1; i < len(first.Failures); i++ {
		assert.LessOrEqual(t, first.Failures[i-1].Line(), first.Failures[i].Line())
	}
}

func TestLint_UnknownInstructionsDoNotAbort(t *testing.T) {
	t.Parallel()
	res := Lint("FROM ubuntu:24.04\nFROBNICATE all the things\nMAINTAINER me\n", nil)
	assert.Empty(t, res.ParseErrors)
	assert.Equal(t, []int{3}, linesOf(res, "DL4000"))
}

func TestLint_ConfigOverrides(t *testing.T) {
	t.Parallel()
	cfg := config.Default()
	cfg.Rules.Exclude = []string{"DL3015"}
	cfg.Rules.Set("DL3008", config.RuleConfig{Severity: "error"})
	cfg.Rules.Set("DL3009", config.RuleConfig{Severity: "off"})

	res := Lint("FROM ubuntu:24.04\nRUN apt-get update && apt-get install -y nginx\n", cfg)
	assert.Empty(t, linesOf(res, "DL3015"))
	assert.Empty(t, linesOf(res, "DL3009"))
	require.Equal(t, []int{2}, linesOf(res, "DL3008"))
	for _, v := range res.Failures {
		if v.RuleCode == "DL3008" {
			assert.Equal(t, rules.SeverityError, v.Severity)
		}
	}
}

func TestLint_OptInRule(t *testing.T) {
	t.Parallel()
	src := "FROM alpine:3.20\n"
	assert.Empty(t, linesOf(Lint(src, nil), "DL3057"))

	cfg := config.Default()
	cfg.Rules.Include = []string{"DL3057"}
	res := Lint(src, cfg)
	require.Len(t, linesOf(res, "DL3057"), 1)
}

type fakeAnalyzer struct {
	mu       sync.Mutex
	requests []shellcheck.Request
	findings []shellcheck.Finding
}

func (f *fakeAnalyzer) Analyze(_ context.Context, req shellcheck.Request) []shellcheck.Finding {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	return f.findings
}

func TestLintWith_ShellcheckPassthrough(t *testing.T) {
	t.Parallel()
	analyzer := &fakeAnalyzer{findings: []shellcheck.Finding{
		{Line: 1, Column: 6, Level: "info", Code: 2086, Message: "Double quote to prevent globbing and word splitting."},
	}}
	src := "FROM alpine:3.20\n" +
		"ARG NAME\n" +
		"ENV HOME_DIR=/home/app\n" +
		"RUN echo $NAME\n" +
		"RUN [\"echo\", \"exec\"]\n" +
		"FROM alpine:3.20\n" +
		"SHELL [\"/bin/ash\", \"-c\"]\n" +
		"RUN echo $NAME\n"

	res := LintWith(context.Background(), src, Options{ShellAnalyzer: analyzer})

	require.Len(t, analyzer.requests, 2, "exec-form RUN is not analyzed")
	assert.Equal(t, "echo $NAME", analyzer.requests[0].Script)
	assert.Equal(t, "bash", analyzer.requests[0].Shell)
	assert.Equal(t, []string{"NAME", "HOME_DIR"}, analyzer.requests[0].Vars)
	assert.Equal(t, "sh", analyzer.requests[1].Shell)
	assert.Empty(t, analyzer.requests[1].Vars, "variables reset at FROM")

	assert.Equal(t, []int{4, 8}, linesOf(res, "SC2086"))
	for _, v := range res.Failures {
		if v.RuleCode == "SC2086" {
			assert.Equal(t, rules.SeverityInfo, v.Severity)
		}
	}
}

func TestLintWith_ShellcheckPragma(t *testing.T) {
	t.Parallel()
	analyzer := &fakeAnalyzer{findings: []shellcheck.Finding{{Line: 1, Level: "warning", Code: 2164, Message: "cd"}}}
	src := "FROM alpine:3.20\n# hadolint ignore=SC2164\nRUN cd /tmp\nRUN cd /opt\n"
	res := LintWith(context.Background(), src, Options{ShellAnalyzer: analyzer})
	assert.Equal(t, []int{4}, linesOf(res, "SC2164"))
}

func TestLintWith_File(t *testing.T) {
	t.Parallel()
	res := LintWith(context.Background(), "FROM ubuntu\n", Options{File: "services/api/Dockerfile"})
	require.NotEmpty(t, res.Failures)
	assert.Equal(t, "services/api/Dockerfile", res.File)
	assert.Equal(t, "services/api/Dockerfile", res.Failures[0].File())

	assert.Equal(t, DefaultFile, Lint("FROM ubuntu\n", nil).File)
}

func TestLintFiles(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	paths := make([]string, 0, 4)
	for i, content := range []string{
		"FROM ubuntu\n",
		"FROM alpine:3.20\nMAINTAINER me\n",
		"FROM debian:12\nWORKDIR app\n",
		"FROM scratch\n",
	} {
		p := filepath.Join(dir, "Dockerfile."+string(rune('a'+i)))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
		paths = append(paths, p)
	}

	results, err := LintFiles(context.Background(), paths, Options{Config: config.Default()})
	require.NoError(t, err)
	require.Len(t, results, len(paths))
	for i, res := range results {
		assert.Equal(t, filepath.ToSlash(paths[i]), res.File)
	}
	assert.Equal(t, []int{1}, linesOf(results[0], "DL3006"))
	assert.Equal(t, []int{2}, linesOf(results[1], "DL4000"))
	assert.Equal(t, []int{2}, linesOf(results[2], "DL3000"))
	assert.Empty(t, results[3].Failures)

	_, err = LintFiles(context.Background(), append(paths, filepath.Join(dir, "missing")), Options{Config: config.Default()})
	require.Error(t, err)
}

func TestLintFile_TooLarge(t *testing.T) {
	t.Parallel()
	p := filepath.Join(t.TempDir(), "Dockerfile")
	require.NoError(t, os.WriteFile(p, []byte("FROM alpine:3.20\nRUN echo hello\n"), 0o600))

	cfg := config.Default()
	cfg.FileValidation.MaxFileSize = 8
	_, err := LintFile(context.Background(), p, Options{Config: cfg})
	require.Error(t, err)
}

func TestLintFiles_LoadConfig(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	strict := filepath.Join(dir, "Dockerfile.strict")
	loose := filepath.Join(dir, "Dockerfile.loose")
	for _, p := range []string{strict, loose} {
		require.NoError(t, os.WriteFile(p, []byte("FROM ubuntu\n"), 0o600))
	}

	results, err := LintFiles(context.Background(), []string{strict, loose}, Options{
		LoadConfig: func(path string) (*config.Config, error) {
			cfg := config.Default()
			if path == loose {
				cfg.Rules.Exclude = []string{"DL3006"}
			}
			return cfg, nil
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1}, linesOf(results[0], "DL3006"))
	assert.Empty(t, linesOf(results[1], "DL3006"))
}
