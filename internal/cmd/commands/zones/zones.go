// Package zones implements the `zones` command.
package zones

import (
	"context"
	"flag"
	"fmt"

	"github.com/meshstack/kafka-acceptance/internal/cmd/base"
	"github.com/meshstack/kafka-acceptance/internal/config"
	"github.com/meshstack/kafka-acceptance/pkg/cluster"
	"github.com/meshstack/kafka-acceptance/pkg/faultdomain"
)

type Command struct {
	*base.Command

	flagConfig string
}

func (c *Command) Synopsis() string {
	return "List the fault-domain zones advertised by the cluster"
}

func (c *Command) Help() string {
	return `Usage: kafka-acceptance zones [options]

  Lists the distinct fault-domain zones the cluster's agents advertise.
  Agents without a configured fault domain are skipped.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("zones", flag.ExitOnError))

	f.StringVar(
		&c.flagConfig, "config", "",
		"[KAFKA_ACCEPTANCE_CONFIG] Path to the harness configuration file",
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

	runner := cluster.New(cluster.Config{
		Path:   cfg.Cluster.CLIPath,
		Logger: c.Log,
	})

	detector, err := faultdomain.NewDetector(faultdomain.DetectorConfig{
		Runner: runner,
		Logger: c.Log,
	})
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	zones, err := detector.Zones(context.Background())
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	if len(zones) == 0 {
		c.UI.Info("No fault-domain zones advertised by this cluster")
		return 0
	}

	for _, z := range zones {
		c.UI.Output(z.String())
	}
	return 0
}
