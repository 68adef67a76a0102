package main

import (
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/keyscrub/keyscrub/command"
	"github.com/keyscrub/keyscrub/version"
)

func main() {
	os.Exit(realMain())
}

func realMain() int {
	// The Ui writes to stderr so stdout stays reserved for redacted content.
	ui := &cli.BasicUi{
		Writer:      os.Stderr,
		ErrorWriter: os.Stderr,
	}

	c := cli.NewCLI("keyscrub", version.GetVersion().SemanticVersion())
	c.Args = os.Args[1:]
	c.Commands = map[string]cli.CommandFactory{
		"run":     command.RunCommandFactory(ui),
		"version": command.VersionCommandFactory(ui),
	}

	exitStatus, err := c.Run()
	if err != nil {
		hclog.L().Error("problem executing command", "error", err)
	}
	return exitStatus
}
