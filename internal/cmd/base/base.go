// Package base carries the pieces shared by every CLI command.
package base

import (
	"bytes"
	"flag"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
)

// Command is embedded by all commands to share the logger and UI.
type Command struct {
	Log hclog.Logger
	UI  cli.Ui
}

// FlagSet wraps flag.FlagSet with help rendering for command Help() output.
type FlagSet struct {
	*flag.FlagSet
}

// NewFlagSet wraps a flag set.
func NewFlagSet(f *flag.FlagSet) *FlagSet {
	return &FlagSet{FlagSet: f}
}

// Help renders the flag defaults as a help section.
func (f *FlagSet) Help() string {
	var buf bytes.Buffer
	f.SetOutput(&buf)
	f.PrintDefaults()
	return "\n\nOptions:\n" + buf.String()
}
