package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/jswain/augur/pkg/config"
	"github.com/jswain/augur/pkg/tree"
)

var (
	version = "dev"
	commit  = "none"    //nolint:unused // set via ldflags at build time
	date    = "unknown" //nolint:unused // set via ldflags at build time
)

func main() {
	app := &cli.App{
		Name:      "augur-tree",
		Usage:     "Print a directory tree",
		Version:   version,
		ArgsUsage: "[path]",
		Description: `Renders a filtered, depth-limited view of a directory subtree.
The path defaults to the current directory.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (TOML, YAML, or JSON)",
				EnvVars: []string{"AUGUR_CONFIG"},
			},
			&cli.StringSliceFlag{
				Name:    "exclude",
				Aliases: []string{"e"},
				Usage:   "Directory names to skip (repeatable)",
			},
			&cli.StringFlag{
				Name:    "filter",
				Aliases: []string{"F"},
				Usage:   "Glob restricting listed filenames (e.g. '*.py')",
			},
			&cli.IntFlag{
				Name:    "depth",
				Aliases: []string{"d"},
				Usage:   "Max depth of the displayed tree (0 = unlimited)",
			},
			&cli.BoolFlag{
				Name:    "sizes",
				Aliases: []string{"s"},
				Usage:   "Include file sizes in the output",
			},
			&cli.BoolFlag{
				Name:    "times",
				Aliases: []string{"t"},
				Usage:   "Include file modification times in the output",
			},
			&cli.BoolFlag{
				Name:  "sort",
				Usage: "Sort files by modification time",
			},
			&cli.BoolFlag{
				Name:  "gitignore",
				Usage: "Skip entries matched by .gitignore files",
			},
		},
		Action: runTree,
	}

	if err := app.Run(os.Args); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

func runTree(c *cli.Context) error {
	root := "."
	if c.Args().Len() > 0 {
		root = c.Args().First()
	}

	var cfg *config.Config
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded
	} else {
		cfg, _ = config.LoadOrDefault()
	}

	opts := tree.Options{
		Filter:       cfg.Tree.Filter,
		MaxDepth:     cfg.Tree.MaxDepth,
		IncludeSize:  cfg.Tree.IncludeSize,
		IncludeMTime: cfg.Tree.IncludeMTime,
		SortByMTime:  cfg.Tree.SortByMTime,
		ExcludeDirs:  cfg.Tree.ExcludeDirs,
		Gitignore:    cfg.Tree.Gitignore,
	}
	if c.IsSet("filter") {
		opts.Filter = c.String("filter")
	}
	if c.IsSet("depth") {
		opts.MaxDepth = c.Int("depth")
	}
	if c.IsSet("sizes") {
		opts.IncludeSize = c.Bool("sizes")
	}
	if c.IsSet("times") {
		opts.IncludeMTime = c.Bool("times")
	}
	if c.IsSet("sort") {
		opts.SortByMTime = c.Bool("sort")
	}
	if c.IsSet("gitignore") {
		opts.Gitignore = c.Bool("gitignore")
	}
	if c.IsSet("exclude") {
		opts.ExcludeDirs = c.StringSlice("exclude")
	}

	printer, err := tree.NewPrinter(opts)
	if err != nil {
		return err
	}
	return printer.Print(os.Stdout, root)
}
