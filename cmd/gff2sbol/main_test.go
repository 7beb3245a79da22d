package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coolbeans/gff2sbol/pkg/config"
	"github.com/coolbeans/gff2sbol/pkg/roles"
	"github.com/coolbeans/gff2sbol/pkg/watch"
)

const sampleInput = "../../pkg/convert/testdata/sample.gff3"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.Execute()
	return out.String() + errOut.String(), err
}

func TestConvertCommand(t *testing.T) {
	output := filepath.Join(t.TempDir(), "out.xml")

	_, err := run(t, "convert", sampleInput, "-o", output)
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<?xml")
	assert.Contains(t, string(data), "http://ncl.ac.uk/syntheticyeast/yeast_chr11_3_34/1")
	assert.Contains(t, string(data), `xmlns:gff3=`)
}

func TestConvertCommand_FlagsAndStats(t *testing.T) {
	output := filepath.Join(t.TempDir(), "out.ttl")

	out, err := run(t, "convert", sampleInput, "-o", output, "--format", "turtle", "--contig", "chrXI", "--stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Records:")
	assert.Contains(t, out, "Sequence length:")

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "@prefix sbol:")
	assert.Contains(t, string(data), "http://ncl.ac.uk/syntheticyeast/chrXI/1")
}

func TestConvertCommand_MalformedInput(t *testing.T) {
	input := filepath.Join(t.TempDir(), "bad.gff3")
	require.NoError(t, os.WriteFile(input, []byte("##gff-version 3\nchrXI\tSGD\tgene\n"), 0644))
	output := filepath.Join(t.TempDir(), "bad.xml")

	_, err := run(t, "convert", input, "-o", output)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")

	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr), "no output on failure")
}

func TestConvertCommand_BadFormat(t *testing.T) {
	_, err := run(t, "convert", sampleInput, "--format", "csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "csv")
}

func TestRolesCommand(t *testing.T) {
	out, err := run(t, "roles")
	require.NoError(t, err)
	assert.Contains(t, out, "gene")
	assert.Contains(t, out, "http://identifiers.org/so/SO:0000704")
	assert.Contains(t, out, "12 feature types")
}

func TestRolesExportCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roles.yaml")
	out, err := run(t, "roles", "export", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 12 roles")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "type: chromosome")
}

func TestInitCommand(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, "init", dir)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "gff2sbol.yaml"))
	assert.FileExists(t, filepath.Join(dir, "roles", "default.yaml"))

	_, err = run(t, "init", dir)
	assert.Error(t, err, "refuses to overwrite")
}

func TestDocsCommand(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, "docs", dir)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "gff2sbol_convert.md"))
}

func TestWatchCommand_RequiresSources(t *testing.T) {
	_, err := run(t, "watch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to watch")
}

func TestCheckSources_SkipsDisabled(t *testing.T) {
	dir := t.TempDir()
	enabledOut := filepath.Join(dir, "on.xml")
	disabledOut := filepath.Join(dir, "off.xml")
	off := false

	sources := &watch.SourcesConfig{Sources: []watch.SourceConfig{
		{Name: "on", Input: sampleInput, Output: enabledOut},
		{Name: "off", Input: filepath.Join(dir, "off.gff3"), Output: disabledOut, Enabled: &off},
	}}
	require.NoError(t, sources.Validate())

	cfg := config.DefaultConfig()
	registry := roles.NewRegistry()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	monitor := watch.NewMonitor(sources, 0)
	monitor.OnChange(func(change watch.Change) error {
		return reconvert(cfg, registry, logger, change.Source)
	})

	checkSources(monitor, sources, logger)

	assert.FileExists(t, enabledOut)
	assert.NoFileExists(t, disabledOut)

	status := monitor.Status()
	require.Len(t, status, 2)
	assert.Equal(t, watch.SourceStatusDisabled, status[0].Status)
	assert.Equal(t, 0, status[0].Conversions)
	assert.Equal(t, watch.SourceStatusActive, status[1].Status)
	assert.Equal(t, 1, status[1].Conversions)
}
