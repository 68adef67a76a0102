package command

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	home "github.com/mitchellh/go-homedir"

	"github.com/keyscrub/keyscrub/hcl"
	"github.com/keyscrub/keyscrub/redact"
	"github.com/keyscrub/keyscrub/redactor"
)

// stdio is the conventional path value selecting stdin or stdout.
const stdio = "-"

var _ cli.Command = &RunCommand{}

type RunCommand struct {
	ui    cli.Ui
	flags *flag.FlagSet

	// dryrun lists the rules that would apply without reading any input
	dryrun bool

	// in and out are file paths; "-" selects stdin/stdout
	in  string
	out string

	// HCL file location
	config string
}

func (c *RunCommand) init() {
	const (
		dryrunUsageText = "Displays the redaction rules that would be applied during a normal run without reading any input."
		inUsageText     = "Path to the file to scrub; '-' reads standard input."
		outUsageText    = "Path the scrubbed content should be written to; '-' writes standard output."
		configUsageText = "Path to an HCL configuration file with additional rule blocks."
	)

	// flag.ContinueOnError allows flag.Parse to return an error if one comes up, rather than doing an `os.Exit(2)`
	// on its own.
	c.flags = flag.NewFlagSet("run", flag.ContinueOnError)

	c.flags.BoolVar(&c.dryrun, "dryrun", false, dryrunUsageText)
	c.flags.StringVar(&c.in, "in", stdio, inUsageText)
	c.flags.StringVar(&c.out, "out", stdio, outUsageText)
	c.flags.StringVar(&c.config, "config", "", configUsageText)

	// When invalid flags are provided, Go will output a usage message of its own. If we direct our flag set to
	// io.Discard, it will effectively be hidden, allowing us to print our own Help message upon failure.
	c.flags.SetOutput(io.Discard)
}

// NewRunCommand produces a new *command pointer, initialized for use in a CLI application.
func NewRunCommand(ui cli.Ui) *RunCommand {
	c := &RunCommand{ui: ui}
	c.init()
	return c
}

// RunCommandFactory provides a cli.CommandFactory that will produce an appropriately-initiated *command.
func RunCommandFactory(ui cli.Ui) cli.CommandFactory {
	return func() (cli.Command, error) {
		return NewRunCommand(ui), nil
	}
}

// Help provides help text to users who pass in the --help flag or who enter invalid options.
func (c *RunCommand) Help() string {
	helpText := `Usage: keyscrub run [options]

Reads text from standard input (or -in), rewrites hardcoded API-key values into environment-variable
lookups, and writes the result to standard output (or -out). Content that matches no rule passes
through byte-for-byte.
`

	return Usage(helpText, c.flags)
}

// Synopsis provides a brief description of the command, for inclusion in the application's primary --help.
func (c *RunCommand) Synopsis() string {
	return "Scrub hardcoded API keys from a text stream"
}

// Run executes the command.
func (c *RunCommand) Run(args []string) int {
	if err := c.parseFlags(args); err != nil {
		// Output the specific error to help the user understand what went wrong.
		c.ui.Warn(err.Error())
		// Since there was an issue in input, let's show our Help to try and assist the user.
		c.ui.Warn(c.Help())
		return FlagParseError
	}

	l := configureLogging("keyscrub")

	redactions, rc := c.buildRedactions(l)
	if rc != Success {
		return rc
	}
	l.Debug("assembled rule set", "rules", len(redactions))

	if c.dryrun {
		for _, red := range redactions {
			c.ui.Output(fmt.Sprintf("would apply rule, ID=%s", red.ID))
		}
		return Success
	}

	in, err := c.openInput()
	if err != nil {
		l.Error("Failed to open input", "in", c.in, "error", err)
		return RedactError
	}
	defer in.Close()

	out, err := c.openOutput()
	if err != nil {
		l.Error("Failed to open output", "out", c.out, "error", err)
		return OutputError
	}

	rr, err := redactor.NewRuleRedactor(redactions).Redact(in)
	if err != nil {
		l.Error("Failed to redact input stream", "in", c.in, "error", err)
		return RedactError
	}
	if _, err := io.Copy(out, rr); err != nil {
		l.Error("Failed to write redacted output", "out", c.out, "error", err)
		return OutputError
	}
	if err := out.Close(); err != nil {
		l.Error("Failed to flush redacted output", "out", c.out, "error", err)
		return OutputError
	}

	return Success
}

func (c *RunCommand) parseFlags(args []string) error {
	return c.flags.Parse(args)
}

// buildRedactions assembles the effective rule list: configured rules first, then the built-in set
// unless the config opts out. Earlier rules take precedence.
func (c *RunCommand) buildRedactions(l hclog.Logger) ([]*redact.Redact, int) {
	var custom []*redact.Redact
	skipDefaults := false

	if c.config != "" {
		path, err := home.Expand(c.config)
		if err != nil {
			l.Error("Failed to expand configuration path", "config", c.config, "error", err)
			return nil, ConfigError
		}
		cfg, err := hcl.Parse(path)
		if err != nil {
			l.Error("Failed to load configuration", "config", path, "error", err)
			return nil, ConfigError
		}
		custom, err = hcl.BuildRedactions(cfg.Rules)
		if err != nil {
			l.Error("Failed to compile configured rules", "config", path, "error", err)
			return nil, ConfigError
		}
		skipDefaults = cfg.SkipDefaultRules
	}

	if skipDefaults {
		return custom, Success
	}
	defaults, err := redact.DefaultKeyRedactions()
	if err != nil {
		l.Error("Failed to compile built-in rules", "error", err)
		return nil, ConfigError
	}
	return redact.Flatten(custom, defaults), Success
}

func (c *RunCommand) openInput() (io.ReadCloser, error) {
	if c.in == stdio {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(c.in)
}

func (c *RunCommand) openOutput() (io.WriteCloser, error) {
	if c.out == stdio {
		// stdout is owned by the process; Close is a no-op so the caller can treat both paths alike.
		return nopWriteCloser{os.Stdout}, nil
	}
	return os.Create(c.out)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// configureLogging takes a logger name, sets the default configuration, grabs the LOG_LEVEL from our ENV vars, and
// returns a configured and usable logger. Logs go to stderr; stdout stays reserved for redacted content.
func configureLogging(loggerName string) hclog.Logger {
	// Create logger, set default and log level
	appLogger := hclog.New(&hclog.LoggerOptions{
		Name:  loggerName,
		Color: hclog.AutoColor,
	})
	hclog.SetDefault(appLogger)
	if logStr := os.Getenv("LOG_LEVEL"); logStr != "" {
		if level := hclog.LevelFromString(logStr); level != hclog.NoLevel {
			appLogger.SetLevel(level)
			appLogger.Debug("Logger configuration change", "LOG_LEVEL", hclog.Fmt("%s", logStr))
		}
	}
	return hclog.Default()
}
