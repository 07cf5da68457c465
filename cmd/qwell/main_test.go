package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/qwell/report"
)

func TestRun_Default(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(nil, &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, report.ComputingLine, lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "E[0]="))
	assert.True(t, strings.HasPrefix(lines[2], "E[1]="))
}

func TestRun_Outputs(t *testing.T) {
	dir := t.TempDir()
	xlsx := filepath.Join(dir, "run.xlsx")
	tsv := filepath.Join(dir, "psi.tsv")
	var stdout, stderr bytes.Buffer
	code := run([]string{
		"--mesh=interval", "--elements=58", "--plots", "--out=" + filepath.Join(dir, "plots"),
		"--xlsx=" + xlsx, "--tsv=" + tsv, "--samples=50", "--log-level=debug",
	}, &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())

	for _, f := range []string{
		filepath.Join(dir, "plots", report.MeshFile),
		filepath.Join(dir, "plots", report.StateFile(0)),
		filepath.Join(dir, "plots", report.StateFile(1)),
		xlsx, tsv,
	} {
		_, err := os.Stat(f)
		assert.NoError(t, err, f)
	}
	assert.Contains(t, stderr.String(), "solved")
}

func TestRun_Sweep(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"--mesh=interval", "--elements=58", "--sweep=60,80", "--workers=2"}, &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "W=60 E[0]="))
	assert.True(t, strings.HasPrefix(lines[1], "W=80 E[0]="))
}

func TestRun_ExitCodes(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want int
	}{
		{"help", []string{"--help"}, exitOK},
		{"unknown flag", []string{"--nope"}, exitFailure},
		{"bad degree", []string{"--degree=3"}, exitFailure},
		{"missing config", []string{"--config=" + filepath.Join(t.TempDir(), "none.yaml")}, exitFailure},
		{"unknown backend", []string{"--backend=slepc"}, exitCapability},
		{"cpu requirement", []string{"--backend=jacobi", "--require-cpu=avx2"}, exitCapability},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			assert.Equal(t, tc.want, run(tc.args, &stdout, &stderr))
			assert.Empty(t, stdout.String())
		})
	}
}
