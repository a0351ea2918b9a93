// Package cli provides command definitions for snipconv.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/wedtex/snipconv/internal/config"
	"github.com/wedtex/snipconv/internal/convert"
	"github.com/wedtex/snipconv/internal/export"
	"github.com/wedtex/snipconv/internal/model"
	"github.com/wedtex/snipconv/internal/parser"
	"github.com/wedtex/snipconv/internal/parser/winedt"
	"github.com/wedtex/snipconv/internal/ui"
	"github.com/wedtex/snipconv/internal/ui/tui"
	"github.com/wedtex/snipconv/internal/util"
)

func configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Display or initialize the configuration",
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Write the default configuration file",
				Action: func(_ context.Context, _ *cli.Command) error {
					if config.Exists() {
						return fmt.Errorf("config file already exists at %s", config.FilePath())
					}
					if err := config.Default().Save(); err != nil {
						return err
					}
					fmt.Println(ui.StatusSuccess("wrote " + config.FilePath()))
					return nil
				},
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			fmt.Println(ui.Header("Effective configuration"))
			fmt.Print(string(data))
			return nil
		},
	}
}

func importCommand() *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Import WinEdt active strings into the normalized snippet file",
		UsageText: "snipconv import [options]",
		Description: `Read an active-string definition file together with its template
   bank and write the normalized snippet records.

   Examples:
     snipconv import -s ActiveStrings.ini -t FasTeX_Templates.edt
     snipconv import -s ActiveStrings.ini -t FasTeX_Templates.edt -o data.json`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "strings",
				Aliases: []string{"s"},
				Usage:   "Path to the active-string definition file",
			},
			&cli.StringFlag{
				Name:    "templates",
				Aliases: []string{"t"},
				Usage:   "Path to the template bank file",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Path for the normalized snippet file",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			stringsPath := cfg.Import.Strings
			if cmd.IsSet("strings") {
				stringsPath = cmd.String("strings")
			}
			templatesPath := cfg.Import.Templates
			if cmd.IsSet("templates") {
				templatesPath = cmd.String("templates")
			}
			dataPath := cfg.Import.Data
			if cmd.IsSet("output") {
				dataPath = cmd.String("output")
			}
			stringsPath = util.ExpandPath(stringsPath, "")
			templatesPath = util.ExpandPath(templatesPath, "")
			dataPath = util.ExpandPath(dataPath, "")

			if stringsPath == "" {
				return errors.New("no active-string file given (use --strings or set import.strings)")
			}
			if templatesPath == "" {
				return errors.New("no template file given (use --templates or set import.templates)")
			}

			var src parser.Source = winedt.New(stringsPath, templatesPath)
			snips, err := src.Parse()
			if err != nil {
				return fmt.Errorf("%s import failed: %w", src.Name(), err)
			}

			if err := export.WriteData(dataPath, snips); err != nil {
				return fmt.Errorf("write %s: %w", dataPath, err)
			}

			fmt.Println(ui.StatusSuccess(fmt.Sprintf("imported %d %s snippets to %s", len(snips), src.Name(), dataPath)))
			return nil
		},
	}
}

func convertCommand() *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Usage:     "Convert the normalized snippet file to an editor format",
		UsageText: "snipconv convert [options] <format>",
		Description: `Convert normalized snippet records to one of the supported targets.

   Supported formats: data, vscode, atom, live, split

   Examples:
     snipconv convert vscode
     snipconv convert --dir out split`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Usage:   "Path to the normalized snippet file",
			},
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "Directory converted files are written to",
			},
			&cli.StringSliceFlag{
				Name:    "exclude",
				Aliases: []string{"x"},
				Usage:   "Drop snippets whose trigger or body matches the pattern (repeatable)",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			args := cmd.Args()
			if args.Len() != 1 {
				return errors.New("convert requires exactly 1 argument: <format>")
			}
			format, err := export.ParseFormat(args.Get(0))
			if err != nil {
				return err
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			dataPath := cfg.Import.Data
			if cmd.IsSet("input") {
				dataPath = cmd.String("input")
			}
			dir := cfg.Convert.Dir
			if cmd.IsSet("dir") {
				dir = cmd.String("dir")
			}
			dataPath = util.ExpandPath(dataPath, "")
			dir = util.ExpandPath(dir, "")

			transform, err := buildTransform(cfg, cmd.StringSlice("exclude"))
			if err != nil {
				return err
			}

			snips, err := export.ReadData(dataPath)
			if err != nil {
				return fmt.Errorf("read %s: %w", dataPath, err)
			}
			snips = transform.ApplyAll(snips)

			exporter := export.New(export.Options{
				Single: cfg.Convert.Single.Options(),
				Multi:  cfg.Convert.Multi.Options(),
				Dir:    dir,
			})
			paths, err := exporter.Export(snips, format)
			if err != nil {
				return err
			}

			for _, p := range paths {
				fmt.Println(ui.StatusSuccess("wrote " + p))
			}
			return nil
		},
	}
}

// buildTransform merges command-line exclude patterns into the configured
// transform options and validates the result.
func buildTransform(cfg *config.Config, excludes []string) (convert.Transform, error) {
	raw := make(map[string]any, len(cfg.Transform)+1)
	for k, v := range cfg.Transform {
		raw[k] = v
	}
	if len(excludes) > 0 {
		merged := make([]string, 0, len(excludes))
		if prev, ok := raw["exclude"].([]string); ok {
			merged = append(merged, prev...)
		} else if prev, ok := raw["exclude"].([]any); ok {
			for _, p := range prev {
				if s, ok := p.(string); ok {
					merged = append(merged, s)
				}
			}
		}
		merged = append(merged, excludes...)
		raw["exclude"] = merged
	}
	return convert.ParseTransform(raw)
}

func browseCommand() *cli.Command {
	return &cli.Command{
		Name:      "browse",
		Usage:     "Browse imported snippets interactively",
		UsageText: "snipconv browse [options]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Usage:   "Path to the normalized snippet file",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			dataPath := cfg.Import.Data
			if cmd.IsSet("input") {
				dataPath = cmd.String("input")
			}
			dataPath = util.ExpandPath(dataPath, "")

			snips, err := export.ReadData(dataPath)
			if err != nil {
				return fmt.Errorf("read %s: %w", dataPath, err)
			}
			if len(snips) == 0 {
				fmt.Println(ui.StatusSkipped("no snippets to browse"))
				return nil
			}

			result, err := tui.RunSnippetList(snips)
			if err != nil {
				return err
			}

			if result.Action == tui.SnippetActionView {
				printSnippet(os.Stdout, result.Selected, ui.TerminalWidth())
			}
			return nil
		},
	}
}

// printSnippet writes the selected record, each line truncated to the
// terminal width so long bodies do not wrap.
func printSnippet(w io.Writer, s model.Snippet, width int) {
	fmt.Fprintf(w, "%s (%s)\n", ui.Bold(s.Trigger), ui.ModeLabel(s.Mode))
	if s.Description != "" {
		fmt.Fprintln(w, ui.Dim(ui.Fit(s.Description, width)))
	}
	for _, line := range s.Body.Lines() {
		fmt.Fprintln(w, "  "+ui.Fit(line, width-2))
	}
}
