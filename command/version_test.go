package command

import (
	"testing"

	"github.com/mitchellh/cli"
	"github.com/stretchr/testify/assert"
)

func TestVersionCommand_Run(t *testing.T) {
	ui := cli.NewMockUi()
	c := NewVersionCommand(ui)

	rc := c.Run(nil)

	assert.Equal(t, Success, rc)
	assert.Contains(t, ui.OutputWriter.String(), "keyscrub v")
}
