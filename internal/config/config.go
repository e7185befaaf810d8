package config

import (
	"github.com/urfave/cli/v3"
)

// Config carries everything the scan needs, resolved from flags and the
// optional YAML config file.
type Config struct {
	InputDir    string
	OutputFile  string
	Save        bool
	Interactive bool
	LogLevel    string
}

// Load reads the resolved flag values off the command.
func Load(cmd *cli.Command) *Config {
	return &Config{
		InputDir:    cmd.String("input"),
		OutputFile:  cmd.String("output"),
		Save:        cmd.Bool("save"),
		Interactive: cmd.Bool("interactive"),
		LogLevel:    cmd.String("log-level"),
	}
}
