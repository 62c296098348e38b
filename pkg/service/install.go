package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"

	"github.com/meshstack/kafka-acceptance/pkg/cluster"
)

// DefaultWaitTimeout bounds how long install and uninstall wait for the
// cluster to converge. Broker restarts during a rolling deploy make this
// deliberately generous.
const DefaultWaitTimeout = 25 * time.Minute

// Installer submits package install and uninstall requests and waits for
// the platform to converge.
type Installer struct {
	runner      cluster.Runner
	fs          afero.Fs
	packageName string
	log         hclog.Logger
}

// InstallerConfig configures an Installer.
type InstallerConfig struct {
	Runner cluster.Runner

	// FS is where options documents are written. Defaults to the OS
	// filesystem, which the CLI binary reads the file from.
	FS afero.Fs

	// PackageName identifies the package in the platform's package repo.
	PackageName string

	Logger hclog.Logger
}

// NewInstaller creates an installer for one package.
func NewInstaller(cfg InstallerConfig) (*Installer, error) {
	if cfg.Runner == nil {
		return nil, fmt.Errorf("runner is required")
	}
	if cfg.PackageName == "" {
		return nil, fmt.Errorf("package name is required")
	}
	if cfg.FS == nil {
		cfg.FS = afero.NewOsFs()
	}
	if cfg.Logger == nil {
		cfg.Logger = hclog.NewNullLogger()
	}

	return &Installer{
		runner:      cfg.Runner,
		fs:          cfg.FS,
		packageName: cfg.PackageName,
		log:         cfg.Logger,
	}, nil
}

// InstallRequest describes one service install.
type InstallRequest struct {
	// ServiceName is the (possibly foldered) instance name.
	ServiceName string

	// BrokerCount is the expected number of broker tasks once deployed.
	BrokerCount int

	// Options are merged over the defaults derived from ServiceName and
	// BrokerCount; on conflicts the request options win.
	Options Options

	// WaitTimeout bounds the wait for convergence. Defaults to
	// DefaultWaitTimeout.
	WaitTimeout time.Duration
}

// Install installs the package as a named service instance and blocks until
// the deploy plan completes and the expected broker tasks are running.
func (i *Installer) Install(ctx context.Context, req InstallRequest) error {
	if req.ServiceName == "" {
		return fmt.Errorf("service name is required")
	}

	options := DefaultOptions(req.ServiceName, req.BrokerCount).Merge(req.Options)
	optionsPath, err := options.WriteFile(i.fs)
	if err != nil {
		return err
	}
	defer i.fs.Remove(optionsPath)

	i.log.Info("installing service",
		"package", i.packageName,
		"service", req.ServiceName,
		"brokers", req.BrokerCount)

	_, _, err = i.runner.Run(ctx,
		"package", "install", i.packageName, "--yes", "--options="+optionsPath)
	if err != nil {
		return fmt.Errorf("failed to install %s as %s: %w", i.packageName, req.ServiceName, err)
	}

	if err := i.WaitForDeployComplete(ctx, req.ServiceName, req.WaitTimeout); err != nil {
		return err
	}

	if req.BrokerCount > 0 {
		if err := i.WaitForRunningTasks(ctx, req.ServiceName, req.BrokerCount, req.WaitTimeout); err != nil {
			return err
		}
	}

	return nil
}

// Uninstall removes a service instance and waits for its tasks to drain.
// Uninstalling a service that is not installed is not an error, so suites
// can uninstall up front for idempotent cleanup.
func (i *Installer) Uninstall(ctx context.Context, serviceName string) error {
	i.log.Info("uninstalling service", "package", i.packageName, "service", serviceName)

	var result *multierror.Error

	_, _, err := i.runner.Run(ctx,
		"package", "uninstall", i.packageName, "--app-id="+serviceName, "--yes")
	if err != nil {
		if isNotInstalled(err) {
			i.log.Debug("service was not installed", "service", serviceName)
			return nil
		}
		result = multierror.Append(result, fmt.Errorf("uninstall request failed: %w", err))
	}

	if err := i.WaitForNoTasks(ctx, serviceName, DefaultWaitTimeout); err != nil {
		result = multierror.Append(result, fmt.Errorf("tasks did not drain: %w", err))
	}

	return result.ErrorOrNil()
}

// isNotInstalled matches the CLI's complaint when the uninstall target does
// not exist.
func isNotInstalled(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "is not installed") ||
		strings.Contains(msg, "does not exist") ||
		strings.Contains(msg, "not found")
}
