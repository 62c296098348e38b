// Package version implements the `version` command.
package version

import (
	"context"
	"flag"
	"fmt"

	"github.com/meshstack/kafka-acceptance/internal/cmd/base"
	"github.com/meshstack/kafka-acceptance/internal/config"
	appversion "github.com/meshstack/kafka-acceptance/internal/version"
	"github.com/meshstack/kafka-acceptance/pkg/cluster"
)

type Command struct {
	*base.Command

	flagConfig  string
	flagCluster bool
}

func (c *Command) Synopsis() string {
	return "Print the harness version"
}

func (c *Command) Help() string {
	return `Usage: kafka-acceptance version [options]

  Prints the harness version, and optionally the attached cluster's
  version.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("version", flag.ExitOnError))

	f.StringVar(
		&c.flagConfig, "config", "",
		"[KAFKA_ACCEPTANCE_CONFIG] Path to the harness configuration file",
	)
	f.BoolVar(
		&c.flagCluster, "cluster", false,
		"Also query the attached cluster's version through the CLI",
	)

	return f
}

func (c *Command) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	c.UI.Output("kafka-acceptance " + appversion.Version)

	if !c.flagCluster {
		return 0
	}

	cfg, err := config.Load(c.flagConfig)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	runner := cluster.New(cluster.Config{
		Path:   cfg.Cluster.CLIPath,
		Logger: c.Log,
	})

	v, err := cluster.Version(context.Background(), runner)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	c.UI.Output("cluster " + v.String())
	return 0
}
