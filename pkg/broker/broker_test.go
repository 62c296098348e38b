package broker

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedRunner struct {
	stdout string
	err    error
	calls  [][]string
}

func (r *scriptedRunner) Run(_ context.Context, args ...string) (string, string, error) {
	r.calls = append(r.calls, args)
	return r.stdout, "", r.err
}

func newTestClient(t *testing.T, r *scriptedRunner) *Client {
	t.Helper()

	c, err := NewClient(ClientConfig{
		Runner:      r,
		PackageName: "kafka",
		ServiceName: "/test/integration/kafka",
	})
	require.NoError(t, err)
	return c
}

func TestListStringIDs(t *testing.T) {
	r := &scriptedRunner{stdout: `["0", "1", "2"]`}
	c := newTestClient(t, r)

	ids, err := c.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "1", "2"}, ids)

	require.Len(t, r.calls, 1)
	assert.Equal(t,
		[]string{"kafka", "--name=/test/integration/kafka", "broker", "list"},
		r.calls[0])
}

func TestListNumericIDs(t *testing.T) {
	r := &scriptedRunner{stdout: `[0, 1, 2]`}
	c := newTestClient(t, r)

	ids, err := c.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "1", "2"}, ids)
}

func TestListEmpty(t *testing.T) {
	r := &scriptedRunner{stdout: `[]`}
	c := newTestClient(t, r)

	ids, err := c.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestListCLIError(t *testing.T) {
	r := &scriptedRunner{err: errors.New("service unreachable")}
	c := newTestClient(t, r)

	_, err := c.List(context.Background())
	require.ErrorContains(t, err, "broker list failed")
}

func TestGetWithRack(t *testing.T) {
	r := &scriptedRunner{stdout: `{
	  "id": 0,
	  "host": "kafka-0-broker.kafka.mesh",
	  "port": 1025,
	  "endpoints": ["PLAINTEXT://kafka-0-broker.kafka.mesh:1025"],
	  "rack": "us-east-1a",
	  "jmx_port": -1,
	  "version": 4,
	  "timestamp": "1514906980374"
	}`}
	c := newTestClient(t, r)

	info, err := c.Get(context.Background(), "0")
	require.NoError(t, err)

	assert.Equal(t, 0, info.ID)
	assert.Equal(t, "kafka-0-broker.kafka.mesh", info.Host)
	assert.Equal(t, 1025, info.Port)
	require.True(t, info.HasRack())
	assert.Equal(t, "us-east-1a", *info.Rack)

	require.Len(t, r.calls, 1)
	assert.Equal(t,
		[]string{"kafka", "--name=/test/integration/kafka", "broker", "get", "0"},
		r.calls[0])
}

func TestGetWithoutRack(t *testing.T) {
	r := &scriptedRunner{stdout: `{"id": 1, "host": "kafka-1-broker.kafka.mesh", "port": 1025, "version": 4}`}
	c := newTestClient(t, r)

	info, err := c.Get(context.Background(), "1")
	require.NoError(t, err)
	assert.Nil(t, info.Rack)
	assert.False(t, info.HasRack())
}

func TestGetNullRack(t *testing.T) {
	// A null rack means the same as an absent one.
	r := &scriptedRunner{stdout: `{"id": 2, "host": "kafka-2-broker.kafka.mesh", "port": 1025, "rack": null}`}
	c := newTestClient(t, r)

	info, err := c.Get(context.Background(), "2")
	require.NoError(t, err)
	assert.Nil(t, info.Rack)
	assert.False(t, info.HasRack())
}

func TestGetStringID(t *testing.T) {
	// Some CLI releases return the id as a string.
	r := &scriptedRunner{stdout: `{"id": "2", "host": "kafka-2-broker.kafka.mesh", "port": "1025"}`}
	c := newTestClient(t, r)

	info, err := c.Get(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, 2, info.ID)
	assert.Equal(t, 1025, info.Port)
}

func TestNewClientValidation(t *testing.T) {
	_, err := NewClient(ClientConfig{PackageName: "kafka", ServiceName: "kafka"})
	assert.ErrorContains(t, err, "runner")

	_, err = NewClient(ClientConfig{Runner: &scriptedRunner{}, ServiceName: "kafka"})
	assert.ErrorContains(t, err, "package name")

	_, err = NewClient(ClientConfig{Runner: &scriptedRunner{}, PackageName: "kafka"})
	assert.ErrorContains(t, err, "service name")
}
