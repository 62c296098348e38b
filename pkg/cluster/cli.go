// Package cluster wraps the orchestration platform's command-line binary.
// Everything the harness knows about the cluster and the services running on
// it comes back through this shim; the platform itself is a black box.
package cluster

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
)

// DefaultBinary is the platform CLI binary resolved from PATH when no
// explicit path is configured.
const DefaultBinary = "dcos"

// DefaultTimeout bounds a single CLI invocation. Individual operations that
// poll (plan status, task counts) apply their own longer deadlines on top.
const DefaultTimeout = 5 * time.Minute

// Runner executes platform CLI commands. The concrete implementation shells
// out; tests substitute scripted runners.
type Runner interface {
	Run(ctx context.Context, args ...string) (stdout string, stderr string, err error)
}

// CLI invokes the platform command-line binary.
type CLI struct {
	path    string
	timeout time.Duration
	log     hclog.Logger
}

// Config configures a CLI runner.
type Config struct {
	// Path is the CLI binary path or name. Defaults to DefaultBinary.
	Path string

	// Timeout bounds each invocation. Defaults to DefaultTimeout.
	Timeout time.Duration

	Logger hclog.Logger
}

// New creates a CLI runner.
func New(cfg Config) *CLI {
	if cfg.Path == "" {
		cfg.Path = DefaultBinary
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = hclog.NewNullLogger()
	}

	return &CLI{
		path:    cfg.Path,
		timeout: cfg.Timeout,
		log:     cfg.Logger,
	}
}

// Path returns the configured CLI binary path.
func (c *CLI) Path() string {
	return c.path
}

// Run executes the CLI with the given arguments and returns captured stdout
// and stderr. A non-zero exit wraps the trimmed stderr into the error so
// callers can match on CLI failure messages.
func (c *CLI) Run(ctx context.Context, args ...string) (string, string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.path, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	c.log.Debug("cli invocation",
		"binary", c.path,
		"args", strings.Join(args, " "),
		"duration", time.Since(start),
		"error", err)

	if err != nil {
		return stdout.String(), stderr.String(), fmt.Errorf(
			"%s %s: %w: %s",
			c.path, strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}

	return stdout.String(), stderr.String(), nil
}

// RunJSON executes the CLI and decodes its stdout as JSON into out.
func RunJSON(ctx context.Context, r Runner, out interface{}, args ...string) error {
	stdout, _, err := r.Run(ctx, args...)
	if err != nil {
		return err
	}

	if err := json.Unmarshal([]byte(stdout), out); err != nil {
		return fmt.Errorf("failed to decode CLI output as JSON: %w", err)
	}

	return nil
}

// ServiceArgs builds the service-scoped argument list: the package's CLI
// subcommand addressed to a named (possibly foldered) service instance.
func ServiceArgs(packageName, serviceName string, args ...string) []string {
	argv := make([]string, 0, len(args)+2)
	argv = append(argv, packageName, "--name="+serviceName)
	argv = append(argv, args...)
	return argv
}

// ServiceRun executes a service CLI subcommand.
func ServiceRun(ctx context.Context, r Runner, packageName, serviceName string, args ...string) (string, string, error) {
	return r.Run(ctx, ServiceArgs(packageName, serviceName, args...)...)
}

// ServiceJSON executes a service CLI subcommand and decodes its JSON output.
func ServiceJSON(ctx context.Context, r Runner, packageName, serviceName string, out interface{}, args ...string) error {
	return RunJSON(ctx, r, out, ServiceArgs(packageName, serviceName, args...)...)
}
