package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nozzle/mdist"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func quietLogger() *slog.Logger {
	return mdist.NoopLogger()
}

func TestParseBox(t *testing.T) {
	box, err := parseBox("")
	require.NoError(t, err)
	assert.Nil(t, box)

	box, err = parseBox("1, 1.5,2")
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 1.5, 2}, box)

	_, err = parseBox("1,2")
	assert.ErrorIs(t, err, mdist.ErrDimension)
	_, err = parseBox("1,x,2")
	assert.Error(t, err)
}

func TestLoadCoordinates(t *testing.T) {
	dir := t.TempDir()
	coords, err := loadCoordinates(writeFile(t, dir, "ok.csv", "0,0,0\n1, 2, 3\n"))
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 0, 0, 1, 2, 3}, coords)

	_, err = loadCoordinates(writeFile(t, dir, "ragged.csv", "0,0,0\n1,2\n"))
	assert.Error(t, err)
	_, err = loadCoordinates(writeFile(t, dir, "empty.csv", ""))
	assert.Error(t, err)
	_, err = loadCoordinates(writeFile(t, dir, "bad.csv", "0,a,0\n"))
	assert.Error(t, err)
}

func TestRunCrossDistance(t *testing.T) {
	dir := t.TempDir()
	ref := writeFile(t, dir, "ref.csv", "0,0,0\n")
	conf := writeFile(t, dir, "conf.csv", "1,1,2\n1,0,2\n0.5,0.5,1.5\n")
	out := filepath.Join(dir, "out.csv")

	err := run(options{refFile: ref, confFile: conf, box: "1,1,2", outputFile: out, workers: 1}, quietLogger())
	require.NoError(t, err)
	assert.Equal(t, []string{"0.000000,0.000000,0.866025"}, readLines(t, out))

	err = run(options{refFile: ref, confFile: conf, outputFile: out, workers: 1}, quietLogger())
	require.NoError(t, err)
	assert.Equal(t, []string{"2.449490,2.236068,1.658312"}, readLines(t, out))
}

func TestRunSelfDistance(t *testing.T) {
	dir := t.TempDir()
	ref := writeFile(t, dir, "ref.csv", "0,0,0\n3,4,0\n0,0,12\n")
	out := filepath.Join(dir, "out.csv")

	var logs bytes.Buffer
	err := run(options{refFile: ref, outputFile: out}, mdist.NewTextLogger(&logs, slog.LevelInfo))
	require.NoError(t, err)
	assert.Equal(t, []string{"5.000000", "12.000000", "13.000000"}, readLines(t, out))
	assert.Contains(t, logs.String(), "saved distances")
	assert.Contains(t, logs.String(), "max=13")
}

func TestRunCutoff(t *testing.T) {
	dir := t.TempDir()
	ref := writeFile(t, dir, "ref.csv", "0.5,0.5,0.5\n9.5,0.5,0.5\n5,5,5\n")
	out := filepath.Join(dir, "out.csv")

	err := run(options{refFile: ref, box: "10,10,10", cutoff: 1.5, outputFile: out}, quietLogger())
	require.NoError(t, err)
	assert.Equal(t, []string{"0,1,1.000000"}, readLines(t, out))

	err = run(options{refFile: ref, confFile: ref, box: "10,10,10", cutoff: 0.5, outputFile: out}, quietLogger())
	require.NoError(t, err)
	assert.Equal(t, []string{"0,0,0.000000", "1,1,0.000000", "2,2,0.000000"}, readLines(t, out))
}

func TestRunRandom(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.csv")

	err := run(options{random: 20, seed: 7, box: "5,5,5", outputFile: out, workers: 2}, quietLogger())
	require.NoError(t, err)
	assert.Len(t, readLines(t, out), 20*19/2)
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.csv")

	err := run(options{outputFile: out}, quietLogger())
	assert.ErrorIs(t, err, errUsage)

	err = run(options{refFile: filepath.Join(dir, "missing.csv"), outputFile: out}, quietLogger())
	assert.Error(t, err)

	ref := writeFile(t, dir, "ref.csv", "0,0,0\n")
	err = run(options{refFile: ref, box: "1,2", outputFile: out}, quietLogger())
	assert.ErrorIs(t, err, mdist.ErrDimension)
}
