// submodule cmd contains command definitions
package main

import (
	"strings"

	"github.com/desertthunder/tiledict/internal/formatter"
	"github.com/desertthunder/tiledict/internal/shared"
	"github.com/desertthunder/tiledict/internal/tasks"
	"github.com/urfave/cli/v3"
)

// setupCommand handles setup operations for the database and configuration file.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file (defaults to " + defaultConfigPath + ")",
					},
				},
				Action: r.SetupDatabase,
			},
			{
				Name:  "config",
				Usage: "Write the default configuration file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "path",
						Aliases: []string{"p"},
						Usage:   "Where to write the configuration file",
						Value:   defaultConfigPath,
					},
				},
				Action: r.SetupConfig,
			},
		},
	}
}

// packCommand runs the packer on a list of widths.
func packCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "pack",
		Usage:     "Reorder items of width 1 or 2 so rows of width 2 fill up",
		ArgsUsage: "<widths, e.g. 1,1,2,1>",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "widths",
			},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Pack,
	}
}

// tilesCommand prints the packed tile board.
func tilesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "tiles",
		Usage: "Print the two-column tile board",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "count",
				Aliases: []string{"n"},
				Usage:   "Number of tiles (defaults to tiles.count from config)",
			},
			&cli.StringSliceFlag{
				Name:    "expand",
				Aliases: []string{"e"},
				Usage:   "Ids of tiles to expand, e.g. Item3,Item7",
			},
			&cli.BoolFlag{
				Name:  "saved",
				Usage: "Start from the state saved by the TUI",
			},
			&cli.BoolFlag{
				Name:  "reset",
				Usage: "Clear the state saved by the TUI before printing",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Tiles,
	}
}

// wordsCommand handles dictionary operations.
func wordsCommand(r *Runner) *cli.Command {
	formats := strings.Join(formatter.Formats, ", ")

	return &cli.Command{
		Name:    "words",
		Aliases: []string{"dict"},
		Usage:   "Dictionary operations",
		Commands: []*cli.Command{
			{
				Name:  "search",
				Usage: "List words whose bare form contains the query",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "query",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format: " + formats,
						Value:   formatter.FormatText,
					},
					sourceFlag(),
				},
				Action: r.WordsSearch,
			},
			{
				Name:  "import",
				Usage: "Load a word asset into the database",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "asset",
						Usage: "Path to a words.json file (defaults to the bundled asset)",
					},
				},
				Action: r.WordsImport,
			},
			{
				Name:  "add",
				Usage: "Add a word to the database",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "bare",
						Usage:    "Unaccented form",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "accented",
						Usage: "Form with stress marks",
					},
					&cli.StringFlag{
						Name:  "usage",
						Usage: "English gloss",
					},
					&cli.StringFlag{
						Name:  "type",
						Usage: "Part of speech",
					},
					&cli.StringFlag{
						Name:  "level",
						Usage: "Proficiency level, e.g. A1",
					},
					&cli.IntFlag{
						Name:  "id",
						Usage: "Explicit id (assigned by the database when omitted)",
					},
				},
				Action: r.WordsAdd,
			},
			{
				Name:  "delete",
				Usage: "Delete a word from the store by id",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:     "id",
						Usage:    "Id of the word to delete",
						Required: true,
					},
				},
				Action: r.WordsDelete,
			},
			{
				Name:  "export",
				Usage: "Export every word",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format: " + formats,
						Value:   formatter.FormatCSV,
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path, or directory with --by-level (defaults to stdout)",
					},
					&cli.BoolFlag{
						Name:  "by-level",
						Usage: "Write one file per level plus a manifest",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent writers for --by-level",
						Value: tasks.DefaultWorkers,
					},
					sourceFlag(),
				},
				Action: r.WordsExport,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive TUI",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "screen",
				Usage: "Root screen: home, tiles or dict (defaults to ui.root from config)",
			},
			&cli.BoolFlag{
				Name:  "ephemeral",
				Usage: "Do not save tile state to the database",
			},
		},
		Action: r.TUI,
	}
}

func sourceFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "source",
		Aliases: []string{"s"},
		Usage:   "Word source: " + shared.SourceAsset + " or " + shared.SourceDatabase + " (defaults to dict.source from config)",
	}
}
