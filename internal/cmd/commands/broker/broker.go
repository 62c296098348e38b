// Package broker implements the `broker list` and `broker get` commands.
package broker

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"

	"github.com/mitchellh/cli"

	"github.com/meshstack/kafka-acceptance/internal/cmd/base"
	"github.com/meshstack/kafka-acceptance/internal/config"
	"github.com/meshstack/kafka-acceptance/pkg/broker"
	"github.com/meshstack/kafka-acceptance/pkg/cluster"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Inspect broker metadata"
}

func (c *Command) Help() string {
	return `Usage: kafka-acceptance broker <subcommand> [options] [args]

  This command groups subcommands for inspecting broker metadata.`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}

// newClient assembles a broker client from flags shared by the subcommands.
func newClient(b *base.Command, configPath, name string) (*broker.Client, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	serviceName := name
	if serviceName == "" {
		serviceName = cfg.Service.ServiceName
	}

	runner := cluster.New(cluster.Config{
		Path:   cfg.Cluster.CLIPath,
		Logger: b.Log,
	})

	return broker.NewClient(broker.ClientConfig{
		Runner:      runner,
		PackageName: cfg.Service.PackageName,
		ServiceName: serviceName,
		Logger:      b.Log,
	})
}

type ListCommand struct {
	*base.Command

	flagConfig string
	flagName   string
}

func (c *ListCommand) Synopsis() string {
	return "List broker ids"
}

func (c *ListCommand) Help() string {
	return `Usage: kafka-acceptance broker list [options]

  Lists the ids of all registered brokers.` + c.Flags().Help()
}

func (c *ListCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("broker list", flag.ExitOnError))

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

func (c *ListCommand) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	client, err := newClient(c.Command, c.flagConfig, c.flagName)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	ids, err := client.List(context.Background())
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	out, err := json.MarshalIndent(ids, "", "  ")
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	c.UI.Output(string(out))
	return 0
}

type GetCommand struct {
	*base.Command

	flagConfig string
	flagName   string
}

func (c *GetCommand) Synopsis() string {
	return "Show metadata for one broker"
}

func (c *GetCommand) Help() string {
	return `Usage: kafka-acceptance broker get [options] <broker-id>

  Shows the metadata document for a single broker, including its rack
  placement when the service was installed with zone detection.` + c.Flags().Help()
}

func (c *GetCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("broker get", flag.ExitOnError))

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

func (c *GetCommand) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	if f.NArg() != 1 {
		c.UI.Error("exactly one broker id is required")
		return 1
	}
	id := f.Arg(0)

	client, err := newClient(c.Command, c.flagConfig, c.flagName)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	info, err := client.Get(context.Background(), id)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	out, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	c.UI.Output(string(out))
	return 0
}
