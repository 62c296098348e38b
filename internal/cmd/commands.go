package cmd

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/meshstack/kafka-acceptance/internal/cmd/base"
	brokercmd "github.com/meshstack/kafka-acceptance/internal/cmd/commands/broker"
	installcmd "github.com/meshstack/kafka-acceptance/internal/cmd/commands/install"
	uninstallcmd "github.com/meshstack/kafka-acceptance/internal/cmd/commands/uninstall"
	versioncmd "github.com/meshstack/kafka-acceptance/internal/cmd/commands/version"
	zonescmd "github.com/meshstack/kafka-acceptance/internal/cmd/commands/zones"
)

// Commands is the mapping of CLI subcommands to factories.
var Commands map[string]cli.CommandFactory

func initCommands(log hclog.Logger, ui cli.Ui) {
	baseCommand := &base.Command{
		Log: log,
		UI:  ui,
	}

	Commands = map[string]cli.CommandFactory{
		"install": func() (cli.Command, error) {
			return &installcmd.Command{Command: baseCommand}, nil
		},
		"uninstall": func() (cli.Command, error) {
			return &uninstallcmd.Command{Command: baseCommand}, nil
		},
		"broker": func() (cli.Command, error) {
			return &brokercmd.Command{Command: baseCommand}, nil
		},
		"broker list": func() (cli.Command, error) {
			return &brokercmd.ListCommand{Command: baseCommand}, nil
		},
		"broker get": func() (cli.Command, error) {
			return &brokercmd.GetCommand{Command: baseCommand}, nil
		},
		"zones": func() (cli.Command, error) {
			return &zonescmd.Command{Command: baseCommand}, nil
		},
		"version": func() (cli.Command, error) {
			return &versioncmd.Command{Command: baseCommand}, nil
		},
	}
}
