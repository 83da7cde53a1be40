package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hupe1980/binder/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoPairsCSV = `1,0.9,0.1,0.1
0.9,1,0.1,0.1
0.1,0.1,1,0.9
0.1,0.1,0.9,1
`

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunCommand(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "psm.csv", twoPairsCSV)
	output := filepath.Join(dir, "out", "result.json")
	metrics := filepath.Join(dir, "binder.prom")

	stdout, stderr, err := execute(t, "run",
		"--input", input,
		"--output", output,
		"--metrics-file", metrics,
		"--iterations", "20",
		"--threads", "2",
		"--seed", "7",
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, "clusters=2")
	assert.Contains(t, stdout, "loss=2.6")
	assert.Contains(t, stderr, "search completed")

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	var rec struct {
		Labels []int   `json:"labels"`
		Loss   float64 `json:"binder_loss"`
	}
	require.NoError(t, codec.GoJSON{}.Unmarshal(data, &rec))
	assert.Equal(t, []int{1, 1, 2, 2}, rec.Labels)
	assert.InDelta(t, 2.6, rec.Loss, 1e-9)

	prom, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "binder_runs_total{status=\"success\"} 1")
}

func TestRunCommand_JSONOutput(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "psm.csv", twoPairsCSV)

	stdout, _, err := execute(t, "run", "-i", input, "-n", "5", "--json", "--log-level", "error")
	require.NoError(t, err)

	var rec struct {
		Labels      []int `json:"labels"`
		NumClusters int   `json:"num_clusters"`
	}
	require.NoError(t, codec.JSON{}.Unmarshal([]byte(stdout), &rec))
	assert.Equal(t, []int{1, 1, 2, 2}, rec.Labels)
	assert.Equal(t, 2, rec.NumClusters)
}

func TestRunCommand_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "psm.csv", twoPairsCSV)
	cfgPath := writeFile(t, dir, "run.yaml", `
max_clusters: 1
target_iterations: 3
max_threads: 1
log_format: json
log_level: warn
`)

	stdout, stderr, err := execute(t, "run", "--config", cfgPath, "--input", input)
	require.NoError(t, err)
	assert.Contains(t, stdout, "clusters=1")
	assert.Contains(t, stdout, "iterations=3")
	assert.Empty(t, stderr)

	// Flags override the file.
	stdout, _, err = execute(t, "run", "--config", cfgPath, "--input", input, "--max-clusters", "2", "--iterations", "4")
	require.NoError(t, err)
	assert.Contains(t, stdout, "clusters=2")
	assert.Contains(t, stdout, "iterations=4")
}

func TestRunCommand_CSVLabelsFeedLoss(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "psm.csv", twoPairsCSV)
	labels := filepath.Join(dir, "labels.csv.zst")

	_, _, err := execute(t, "run", "-i", input, "-o", labels, "-n", "5", "--log-level", "error")
	require.NoError(t, err)

	stdout, _, err := execute(t, "loss", "--input", input, "--labels", labels)
	require.NoError(t, err)
	assert.Equal(t, "partition 1: loss=2.6\n", stdout)
}

func TestRunCommand_MemoryLimit(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "psm.csv", twoPairsCSV)

	stdout, _, err := execute(t, "run", "-i", input, "-n", "2", "--memory-limit", "400B", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, stdout, "threads=1")
	assert.Contains(t, stdout, "clusters=2")
}

func TestLossCommand(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "psm.csv", twoPairsCSV)
	labels := writeFile(t, dir, "candidates.csv", "1,2,3,4\n1,1,2,2\n")

	stdout, _, err := execute(t, "loss", "-i", input, "-l", labels)
	require.NoError(t, err)
	assert.Equal(t, "partition 1: loss=4.2\npartition 2: loss=2.6\n", stdout)

	stdout, _, err = execute(t, "loss", "-i", input, "-l", labels, "--json", "--codec", "json")
	require.NoError(t, err)
	var losses []float64
	require.NoError(t, codec.JSON{}.Unmarshal([]byte(stdout), &losses))
	require.Len(t, losses, 2)
	assert.InDelta(t, 4.2, losses[0], 1e-9)
	assert.InDelta(t, 2.6, losses[1], 1e-9)
}

func TestCommandErrors(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "psm.csv", twoPairsCSV)
	short := writeFile(t, dir, "short.csv", "1,2\n")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"MissingInput", []string{"run"}, `required flag(s) "input" not set`},
		{"MissingFile", []string{"run", "-i", filepath.Join(dir, "nope.csv")}, "no such file"},
		{"BadFormat", []string{"run", "-i", writeFile(t, dir, "psm.txt", "1")}, "unknown file format"},
		{"BadThreshold", []string{"run", "-i", input, "-c", "-1"}, "threshold"},
		{"TooManyClusters", []string{"run", "-i", input, "-k", "9"}, "max clusters"},
		{"Unbounded", []string{"run", "-i", input, "-n", "0"}, "iteration target or a time limit"},
		{"BadScheme", []string{"run", "-i", "ftp://host/psm.csv"}, "unsupported scheme"},
		{"BadLogLevel", []string{"run", "-i", input, "--log-level", "loud"}, "invalid log level"},
		{"BadCodec", []string{"run", "-i", input, "--codec", "xml"}, "unknown codec"},
		{"BadMemoryLimit", []string{"run", "-i", input, "--memory-limit", "lots"}, "invalid memory limit"},
		{"MemoryLimitTooSmall", []string{"run", "-i", input, "--memory-limit", "64B"}, "memory limit too small"},
		{"LabelCount", []string{"loss", "-i", input, "-l", short}, "partition length"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRunCommand_TimeLimit(t *testing.T) {
	dir := t.TempDir()
	var b strings.Builder
	const n = 120
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if j > 0 {
				b.WriteByte(',')
			}
			if i%4 == j%4 {
				b.WriteString("0.9")
			} else {
				b.WriteString("0.05")
			}
		}
		b.WriteByte('\n')
	}
	input := writeFile(t, dir, "big.csv", b.String())

	began := time.Now()
	stdout, _, err := execute(t, "run", "-i", input, "-n", "0", "--time-limit", "50ms", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, stdout, "time_limit_reached=true")
	assert.Less(t, time.Since(began), 5*time.Second)
}

func TestParseLocation(t *testing.T) {
	tests := []struct {
		uri  string
		want location
	}{
		{"data/psm.csv", location{scheme: "file", bucket: "data", name: "psm.csv"}},
		{"psm.csv", location{scheme: "file", bucket: ".", name: "psm.csv"}},
		{"s3://bucket/runs/a/psm.csv.zst", location{scheme: "s3", bucket: "bucket", name: "runs/a/psm.csv.zst"}},
		{"minio://localhost:9000/runs/a/psm.json", location{scheme: "minio", endpoint: "localhost:9000", bucket: "runs", name: "a/psm.json"}},
	}
	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			got, err := parseLocation(tt.uri)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "s3://bucket", "s3:///key", "minio://host/bucket", "gs://b/k"} {
		_, err := parseLocation(bad)
		assert.ErrorIs(t, err, errBadLocation, bad)
	}
}
