package hadolint

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wharflab/stagelint/internal/testutil"
)

func TestDL3011Rule_Check(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		dockerfile string
		wantCount  int
	}{
		{name: "invalid single port", dockerfile: "FROM alpine:3.18\nEXPOSE 80000\n", wantCount: 1},
		{name: "valid single port", dockerfile: "FROM alpine:3.18\nEXPOSE 60000\n", wantCount: 0},
		{name: "valid port variable", dockerfile: "FROM alpine:3.18\nEXPOSE ${FOOBAR}\n", wantCount: 0},
		{name: "invalid port in range", dockerfile: "FROM alpine:3.18\nEXPOSE 40000-80000/tcp\n", wantCount: 1},
		{name: "valid port range", dockerfile: "FROM alpine:3.18\nEXPOSE 40000-60000/tcp\n", wantCount: 0},
		{name: "port at boundary 65535", dockerfile: "FROM alpine:3.18\nEXPOSE 65535\n", wantCount: 0},
		{name: "port just over boundary", dockerfile: "FROM alpine:3.18\nEXPOSE 65536\n", wantCount: 1},
		{name: "port 0 is valid", dockerfile: "FROM alpine:3.18\nEXPOSE 0\n", wantCount: 0},
		{name: "multiple invalid ports", dockerfile: "FROM alpine:3.18\nEXPOSE 80000 90000\n", wantCount: 2},
		{name: "mixed ports", dockerfile: "FROM alpine:3.18\nEXPOSE 80 80000 443\n", wantCount: 1},
		{name: "udp", dockerfile: "FROM alpine:3.18\nEXPOSE 53/udp\n", wantCount: 0},
		{name: "range both ends invalid", dockerfile: "FROM alpine:3.18\nEXPOSE 70000-80000/tcp\n", wantCount: 2},
		{name: "negative port", dockerfile: "FROM alpine:3.18\nEXPOSE -1\n", wantCount: 1},
		{
			name:       "multi-stage dockerfile",
			dockerfile: "FROM alpine:3.18 AS builder\nEXPOSE 80000\n\nFROM alpine:3.18\nEXPOSE 443\n",
			wantCount:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			violations := testutil.LintRule(t, NewDL3011Rule(), tt.dockerfile)
			testutil.AssertViolationCount(t, violations, tt.wantCount)
		})
	}
}

func TestValidatePortSpec(t *testing.T) {
	t.Parallel()
	tests := []struct {
		portSpec string
		want     []string
	}{
		{"80", nil},
		{"65535", nil},
		{"65536", []string{"65536"}},
		{"-1", []string{"-1"}},
		{"-1/tcp", []string{"-1"}},
		{"70000/tcp", []string{"70000"}},
		{"40000-80000", []string{"80000"}},
		{"70000-60000", []string{"70000"}},
		{"70000-80000", []string{"70000", "80000"}},
		{"${START}-${END}", nil},
		{"40000-${END}", nil},
		{"http", nil},
	}

	for _, tt := range tests {
		t.Run(tt.portSpec, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, validatePortSpec(tt.portSpec))
		})
	}
}
