package cluster

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeStub writes an executable shell script standing in for the platform
// CLI binary.
func writeStub(t *testing.T, script string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "cli-stub")
	err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755)
	require.NoError(t, err, "failed to write CLI stub")

	return path
}

func TestCLIRun(t *testing.T) {
	path := writeStub(t, `
echo "hello $1"
echo "some noise" 1>&2
`)

	c := New(Config{Path: path})

	stdout, stderr, err := c.Run(context.Background(), "world")
	require.NoError(t, err)
	assert.Equal(t, "hello world\n", stdout)
	assert.Equal(t, "some noise\n", stderr)
}

func TestCLIRunFailure(t *testing.T) {
	path := writeStub(t, `
echo "partial output"
echo "Object of type 'kafka' does not exist" 1>&2
exit 7
`)

	c := New(Config{Path: path})

	stdout, _, err := c.Run(context.Background(), "package", "describe", "kafka")
	require.Error(t, err)
	assert.Equal(t, "partial output\n", stdout)
	assert.Contains(t, err.Error(), "does not exist")
	assert.Contains(t, err.Error(), "package describe kafka")
}

func TestCLIRunMissingBinary(t *testing.T) {
	c := New(Config{Path: filepath.Join(t.TempDir(), "no-such-cli")})

	_, _, err := c.Run(context.Background(), "node", "--json")
	require.Error(t, err)
}

type scriptedRunner struct {
	stdout string
	stderr string
	err    error

	calls [][]string
}

func (r *scriptedRunner) Run(_ context.Context, args ...string) (string, string, error) {
	r.calls = append(r.calls, args)
	return r.stdout, r.stderr, r.err
}

func TestRunJSON(t *testing.T) {
	r := &scriptedRunner{stdout: `["0", "1", "2"]`}

	var ids []string
	err := RunJSON(context.Background(), r, &ids, "kafka", "--name=kafka", "broker", "list")
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "1", "2"}, ids)
}

func TestRunJSONInvalidOutput(t *testing.T) {
	r := &scriptedRunner{stdout: "Running deploy plan...\n"}

	var out map[string]interface{}
	err := RunJSON(context.Background(), r, &out, "plan", "status", "deploy")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JSON")
}

func TestRunJSONPropagatesRunError(t *testing.T) {
	r := &scriptedRunner{err: errors.New("connection refused")}

	var out map[string]interface{}
	err := RunJSON(context.Background(), r, &out, "node", "--json")
	require.ErrorContains(t, err, "connection refused")
}

func TestServiceArgs(t *testing.T) {
	args := ServiceArgs("kafka", "/test/integration/kafka", "broker", "get", "0")
	assert.Equal(t,
		[]string{"kafka", "--name=/test/integration/kafka", "broker", "get", "0"},
		args)
}

func TestServiceJSON(t *testing.T) {
	r := &scriptedRunner{stdout: `{"status": "COMPLETE"}`}

	var out struct {
		Status string `json:"status"`
	}
	err := ServiceJSON(context.Background(), r, "kafka", "/test/integration/kafka", &out, "plan", "status", "deploy", "--json")
	require.NoError(t, err)
	assert.Equal(t, "COMPLETE", out.Status)

	require.Len(t, r.calls, 1)
	assert.Equal(t,
		[]string{"kafka", "--name=/test/integration/kafka", "plan", "status", "deploy", "--json"},
		r.calls[0])
}
