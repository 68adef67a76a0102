package command

// Success indicates a successful command execution.
const Success int = 0

// The following error group is intended for issues within the command's execution.
const (
	// FlagParseError indicates that a command was unable to successfully parse the flags/arguments provided to it.
	FlagParseError int = iota + 16

	// ConfigError indicates that there was an error in the keyscrub configuration.
	ConfigError

	// RedactError indicates an error reading the input stream or applying redaction rules to it.
	RedactError

	// OutputError indicates an error writing the redacted output.
	OutputError
)
