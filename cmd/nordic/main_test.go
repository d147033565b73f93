package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePath = "../../internal/nordic/testdata/sample.nor"

func jsonLines(t *testing.T, out string) []map[string]any {
	t.Helper()
	var objs []map[string]any
	sc := bufio.NewScanner(strings.NewReader(out))
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		var m map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &m))
		objs = append(objs, m)
	}
	require.NoError(t, sc.Err())
	return objs
}

func TestDecode_PrintsOneObjectPerEvent(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"decode", samplePath}, nil, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	objs := jsonLines(t, stdout.String())
	require.Len(t, objs, 2)
	assert.InDelta(t, 1, objs[0]["line"], 0)
	assert.InDelta(t, 7, objs[1]["line"], 0)
	assert.Len(t, objs[0]["picks"], 2)
}

func TestDecode_Enrich(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"decode", "-enrich", "-mode", "strict", samplePath}, nil, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	objs := jsonLines(t, stdout.String())
	require.Len(t, objs, 2)
	assert.NotEmpty(t, objs[0]["id"])
	assert.NotEqual(t, objs[0]["id"], objs[1]["id"])
	assert.Equal(t, "local", objs[0]["event_class"])
	assert.Equal(t, samplePath, objs[0]["source"])
}

func TestDecode_Stdin(t *testing.T) {
	data, err := os.ReadFile(samplePath)
	require.NoError(t, err)

	var stdout, stderr bytes.Buffer
	code := run([]string{"decode", "-"}, bytes.NewReader(data), &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Len(t, jsonLines(t, stdout.String()), 2)
}

func TestDecode_StrictFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.nor")
	require.NoError(t, os.WriteFile(path, []byte(" 2020  821 15 0 12.3L    1\n"), 0o600))

	var stdout, stderr bytes.Buffer
	code := run([]string{"decode", "-mode", "strict", path}, nil, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "invalid line length")
}

func TestValidate_Sample(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"validate", samplePath}, nil, &stdout, &stderr)
	require.Equal(t, 0, code, stdout.String())

	out := stdout.String()
	assert.Contains(t, out, "events: 2")
	assert.Contains(t, out, "decode       PASS")
	assert.Contains(t, out, "timestamps   PASS")
	assert.Contains(t, out, "round-trip   PASS")
}

func TestValidate_ReportsDiagnostics(t *testing.T) {
	data, err := os.ReadFile(samplePath)
	require.NoError(t, err)
	// Corrupt the latitude of the first hypocenter.
	broken := strings.Replace(string(data), " 28.500", " 28.5x0", 1)
	path := filepath.Join(t.TempDir(), "broken.nor")
	require.NoError(t, os.WriteFile(path, []byte(broken), 0o600))

	var stdout, stderr bytes.Buffer
	code := run([]string{"validate", path}, nil, &stdout, &stderr)
	assert.Equal(t, 1, code)

	out := stdout.String()
	assert.Contains(t, out, "events: 2")
	assert.Contains(t, out, "diagnostic numeric_format: 1")
	assert.Contains(t, out, "decode       FAIL")
}

func TestRun_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no command", nil},
		{"no file", []string{"decode"}},
		{"bad mode", []string{"decode", "-mode", "picky", samplePath}},
		{"unknown command", []string{"explode", samplePath}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			assert.Equal(t, 2, run(tt.args, nil, &stdout, &stderr))
			assert.NotEmpty(t, stderr.String())
		})
	}
}

func TestRun_MissingFile(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"decode", filepath.Join(t.TempDir(), "nope.nor")}, nil, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "read input")
}
