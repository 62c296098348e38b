// Package install implements the `install` command.
package install

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/meshstack/kafka-acceptance/internal/cmd/base"
	"github.com/meshstack/kafka-acceptance/internal/config"
	"github.com/meshstack/kafka-acceptance/pkg/cluster"
	"github.com/meshstack/kafka-acceptance/pkg/service"
)

type Command struct {
	*base.Command

	flagConfig      string
	flagName        string
	flagCount       int
	flagDetectZones bool
	flagTimeout     time.Duration
}

func (c *Command) Synopsis() string {
	return "Install the service package and wait for it to deploy"
}

func (c *Command) Help() string {
	return `Usage: kafka-acceptance install [options]

  Installs the configured package as a named service instance and blocks
  until the deploy plan completes and all brokers are running.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("install", flag.ExitOnError))

	f.StringVar(
		&c.flagConfig, "config", "",
		"[KAFKA_ACCEPTANCE_CONFIG] Path to the harness configuration file",
	)
	f.StringVar(
		&c.flagName, "name", "",
		"Service instance name (defaults to the configured service name)",
	)
	f.IntVar(
		&c.flagCount, "count", 0,
		"Broker count (defaults to the configured broker count)",
	)
	f.BoolVar(
		&c.flagDetectZones, "detect-zones", false,
		"Install with fault-domain zone detection enabled",
	)
	f.DurationVar(
		&c.flagTimeout, "timeout", service.DefaultWaitTimeout,
		"How long to wait for the deployment to converge",
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
	brokerCount := c.flagCount
	if brokerCount == 0 {
		brokerCount = cfg.Service.BrokerCount
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

	req := service.InstallRequest{
		ServiceName: serviceName,
		BrokerCount: brokerCount,
		WaitTimeout: c.flagTimeout,
	}
	if c.flagDetectZones {
		req.Options = service.Options{
			"service": map[string]interface{}{
				"detect_zones": true,
			},
		}
	}

	c.UI.Info(fmt.Sprintf("Installing %s as %s (%d brokers)...",
		cfg.Service.PackageName, serviceName, brokerCount))

	if err := installer.Install(context.Background(), req); err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	c.UI.Info("Service deployed")
	return 0
}
