// Package uninstall implements the `uninstall` command.
package uninstall

import (
	"context"
	"flag"
	"fmt"

	"github.com/meshstack/kafka-acceptance/internal/cmd/base"
	"github.com/meshstack/kafka-acceptance/internal/config"
	"github.com/meshstack/kafka-acceptance/pkg/cluster"
	"github.com/meshstack/kafka-acceptance/pkg/service"
)

type Command struct {
	*base.Command

	flagConfig string
	flagName   string
}

func (c *Command) Synopsis() string {
	return "Uninstall a service instance and wait for its tasks to drain"
}

func (c *Command) Help() string {
	return `Usage: kafka-acceptance uninstall [options]

  Uninstalls the named service instance. Uninstalling an instance that is
  not installed is a no-op.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("uninstall", flag.ExitOnError))

	f.StringVar(
		&c.flagConfig, "config", "",
		"[KAFKA_ACCEPTANCE_CONFIG] Path to the harness configuration file",
	)
	f.StringVar(
		&c.flagName, "name", "",
		"Service instance name (defaults to the configured service name)",
	)

	return f
}

func (c *Command) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	cfg, err := config.Load(c.flagConfig)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	serviceName := c.flagName
	if serviceName == "" {
		serviceName = cfg.Service.ServiceName
	}

	runner := cluster.New(cluster.Config{
		Path:   cfg.Cluster.CLIPath,
		Logger: c.Log,
	})

	installer, err := service.NewInstaller(service.InstallerConfig{
		Runner:      runner,
		PackageName: cfg.Service.PackageName,
		Logger:      c.Log,
	})
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	c.UI.Info(fmt.Sprintf("Uninstalling %s...", serviceName))

	if err := installer.Uninstall(context.Background(), serviceName); err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	c.UI.Info("Service removed")
	return 0
}
