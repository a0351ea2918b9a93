// Package cli provides the command-line interface for snipconv.
package cli

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/wedtex/snipconv/internal/config"
	"github.com/wedtex/snipconv/internal/logging"
	"github.com/wedtex/snipconv/internal/ui"
)

var (
	// Version is the current version of the application.
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
	// BuildDate is the date and time of the build.
	BuildDate = "unknown"
)

// Run executes the CLI application with the given context and arguments.
func Run(ctx context.Context, args []string) error {
	app := &cli.Command{
		Name:    "snipconv",
		Usage:   "Convert WinEdt active strings into editor snippet files",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "Path to an alternate config file",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable verbose output (info level logging)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug output (debug level logging, implies verbose)",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored output",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			// A broken config file is reported by the command itself;
			// here it only means display preferences fall back.
			cfg, err := loadConfig(cmd)
			if err != nil {
				cfg = config.Default()
			}
			configureColors(cmd, cfg)
			return ctx, configureLogging(cmd, cfg)
		},
		Commands: []*cli.Command{
			versionCommand(),
			configCommand(),
			importCommand(),
			convertCommand(),
			browseCommand(),
		},
	}
	return app.Run(ctx, args)
}

// loadConfig loads the effective configuration, honoring --config.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	if path := cmd.String("config"); path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load()
}

// configureColors sets up color output from the config file and CLI
// flags, flags winning.
func configureColors(cmd *cli.Command, cfg *config.Config) {
	switch cfg.Output.Color {
	case "always":
		ui.EnableColors()
	case "never":
		ui.DisableColors()
	}
	if cmd.Bool("no-color") {
		ui.DisableColors()
	}
}

// configureLogging sets up the logging level from the config file and
// CLI flags, flags winning.
func configureLogging(cmd *cli.Command, cfg *config.Config) error {
	opts := logging.DefaultOptions()

	if cfg.Output.Verbose {
		opts.Level = slog.LevelInfo
	}
	if cmd.Bool("debug") {
		opts.Level = slog.LevelDebug
		opts.AddSource = true
	} else if cmd.Bool("verbose") {
		opts.Level = slog.LevelInfo
	}

	logger := logging.New(opts)
	logging.SetDefault(logger)

	logging.Debug("logging configured", slog.String("level", opts.Level.String()))

	return nil
}
