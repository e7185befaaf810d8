package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	altsrc "github.com/urfave/cli-altsrc/v3"
	"github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/mrsinham/dicomscan/internal/config"
	"github.com/mrsinham/dicomscan/internal/pipeline"
)

// version is set at build time via -ldflags
var version = "dev"

func cmd() *cli.Command {
	return &cli.Command{
		Name:    "dicomscan",
		Usage:   "Summarize a directory of DICOM files into one metadata table",
		Version: version,
		Flags:   flags(),
		Action:  run,
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	log, ok := ctx.Value(loggerKey{}).(*slog.Logger)
	if !ok {
		return errors.New("failed to get logger from context")
	}

	cfg := config.Load(cmd)

	if level, ok := ctx.Value(levelKey{}).(*slog.LevelVar); ok {
		lvl, err := parseLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		level.Set(lvl)
	}

	if cfg.Interactive {
		if err := promptScanOptions(cfg); err != nil {
			return fmt.Errorf("interactive prompt: %w", err)
		}
	}

	if cfg.InputDir == "" {
		return errors.New("--input is required (or run with --interactive)")
	}

	table, err := pipeline.New(log).Run(cfg.InputDir)
	if err != nil {
		return err
	}

	if err := table.Format(os.Stdout); err != nil {
		return err
	}

	if cfg.Save || cfg.OutputFile != "" {
		out := cfg.OutputFile
		if out == "" {
			out = defaultOutputName(cfg.InputDir)
		}
		if err := table.SaveCSV(out); err != nil {
			return fmt.Errorf("save csv: %w", err)
		}
		log.Info("table saved", slog.String("file", out))
	}

	return nil
}

func flags() []cli.Flag {
	var configFile string

	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Validator:   validateConfigFile,
			Usage:       "Load configuration from `FILE`",
			Destination: &configFile,
		},
		&cli.StringFlag{
			Name:    "input",
			Aliases: []string{"i"},
			Usage:   "Directory containing the .dcm collection",
			Sources: cli.NewValueSourceChain(yaml.YAML("scan.input_dir", altsrc.NewStringPtrSourcer(&configFile))),
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Write the table as CSV to `FILE` (implies --save)",
			Sources: cli.NewValueSourceChain(yaml.YAML("scan.output_file", altsrc.NewStringPtrSourcer(&configFile))),
		},
		&cli.BoolFlag{
			Name:  "save",
			Usage: "Write the table as CSV (default name derived from the input directory)",
		},
		&cli.BoolFlag{
			Name:    "interactive",
			Aliases: []string{"t"},
			Usage:   "Prompt for the directory and save options",
		},
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "Diagnostics verbosity: debug, info, warn, error",
			Value:   "info",
			Sources: cli.NewValueSourceChain(yaml.YAML("scan.log_level", altsrc.NewStringPtrSourcer(&configFile))),
		},
	}
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level %q (valid: debug, info, warn, error)", s)
	}
}

// defaultOutputName derives the CSV name from the input directory so two
// collections never silently overwrite each other's output.
func defaultOutputName(inputDir string) string {
	base := filepath.Base(filepath.Clean(inputDir))
	if base == "." || base == string(filepath.Separator) {
		base = "collection"
	}
	return base + "_metadata.csv"
}

func validateConfigFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%q does not exist", path)
		}
		return fmt.Errorf("failed to stat %q: %w", path, err)
	}

	if info.IsDir() {
		return fmt.Errorf("%q is a directory, not a file", path)
	}

	ext := filepath.Ext(info.Name())
	if ext != ".yml" && ext != ".yaml" {
		return fmt.Errorf("invalid extension %q", path)
	}

	return nil
}
