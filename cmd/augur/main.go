package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/jswain/augur/internal/output"
	"github.com/jswain/augur/internal/progress"
	"github.com/jswain/augur/internal/scanner"
	"github.com/jswain/augur/pkg/config"
	"github.com/jswain/augur/pkg/extractor"
	"github.com/jswain/augur/pkg/models"
	"github.com/jswain/augur/pkg/parser"
)

var (
	version = "dev"
	commit  = "none"    //nolint:unused // set via ldflags at build time
	date    = "unknown" //nolint:unused // set via ldflags at build time
)

func main() {
	app := &cli.App{
		Name:      "augur",
		Usage:     "Inspect Python declarations",
		Version:   version,
		ArgsUsage: "<path>",
		Description: `Augur parses a Python file and reports every function, method, and class:
parameters with annotations, return annotation, docstring, the names each
body calls, nested declarations, and whether a function looks like the
program's entry point. Given a directory it analyzes every Python file
under it.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (TOML, YAML, or JSON)",
				EnvVars: []string{"AUGUR_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "text",
				Usage:   "Output format: text, json, markdown, toon, yaml",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write output to file",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored output",
			},
			&cli.BoolFlag{
				Name:  "qualify-methods",
				Usage: "Name methods Class.method instead of the bare name",
			},
			&cli.BoolFlag{
				Name:  "drop-receiver",
				Usage: "Omit the self/cls parameter from method signatures",
			},
			&cli.BoolFlag{
				Name:  "class-records",
				Usage: "Capture class docstrings, treating classes as declarations",
			},
			&cli.BoolFlag{
				Name:  "summary",
				Usage: "Print a per-file summary table instead of the nested listing",
			},
		},
		Action:   runAnalyze,
		Commands: []*cli.Command{initCommand(), configCommand()},
	}

	if err := app.Run(os.Args); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

// loadConfig resolves the effective config, folding CLI flags over it.
func loadConfig(c *cli.Context) (*config.Config, error) {
	var cfg *config.Config
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg, _ = config.LoadOrDefault()
	}

	if c.IsSet("qualify-methods") {
		cfg.Extract.QualifyMethods = c.Bool("qualify-methods")
	}
	if c.IsSet("drop-receiver") {
		cfg.Extract.DropReceiver = c.Bool("drop-receiver")
	}
	if c.IsSet("class-records") {
		cfg.Extract.ClassRecords = c.Bool("class-records")
	}
	if c.IsSet("format") {
		cfg.Output.Format = c.String("format")
	}
	if c.Bool("no-color") {
		cfg.Output.Color = false
	}
	return cfg, nil
}

func runAnalyze(c *cli.Context) error {
	if c.Args().Len() != 1 {
		cli.ShowAppHelp(c)
		return fmt.Errorf("expected exactly one path argument")
	}
	path := c.Args().First()

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	formatter, err := output.NewFormatter(
		output.ParseFormat(cfg.Output.Format), c.String("output"), cfg.Output.Color)
	if err != nil {
		return err
	}
	defer formatter.Close()

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("input not found: %w", err)
	}

	ex := extractor.New(extractor.Options{
		QualifyMethods: cfg.Extract.QualifyMethods,
		DropReceiver:   cfg.Extract.DropReceiver,
		ClassRecords:   cfg.Extract.ClassRecords,
	})

	if info.IsDir() {
		return analyzeDirectory(c, cfg, ex, formatter, path)
	}
	return analyzeFile(c, ex, formatter, path)
}

func analyzeFile(c *cli.Context, ex *extractor.Extractor, formatter *output.Formatter, path string) error {
	p := parser.New()
	defer p.Close()

	res, err := p.ParseFile(path)
	if err != nil {
		return err
	}

	report, err := ex.Extract(res)
	if err != nil {
		return err
	}
	warnToStderr(report.Warnings)

	if c.Bool("summary") {
		return formatter.Output(summaryTable([]*models.FileReport{report}))
	}
	return formatter.Output(report)
}

func analyzeDirectory(c *cli.Context, cfg *config.Config, ex *extractor.Extractor, formatter *output.Formatter, root string) error {
	files, err := scanner.New(cfg).ScanDir(root)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		color.Yellow("No Python files found under %s", root)
		return nil
	}

	p := parser.New()
	defer p.Close()

	tracker := progress.NewTracker("Analyzing...", len(files))
	report := &models.DirectoryReport{Root: root}
	for _, file := range files {
		res, err := p.ParseFile(file)
		if err != nil {
			report.Failures = append(report.Failures, models.Failure{Path: file, Error: err.Error()})
			tracker.Tick()
			continue
		}
		fr, err := ex.Extract(res)
		if err != nil {
			report.Failures = append(report.Failures, models.Failure{Path: file, Error: err.Error()})
			tracker.Tick()
			continue
		}
		warnToStderr(fr.Warnings)
		report.Reports = append(report.Reports, fr)
		tracker.Tick()
	}
	tracker.FinishSuccess()

	if len(report.Reports) == 0 {
		for _, f := range report.Failures {
			fmt.Fprintf(os.Stderr, "%s: %s\n", f.Path, f.Error)
		}
		return fmt.Errorf("no file under %s could be analyzed", root)
	}

	if c.Bool("summary") {
		return formatter.Output(summaryTable(report.Reports))
	}
	return formatter.Output(report)
}

func warnToStderr(warnings []string) {
	for _, w := range warnings {
		color.New(color.FgYellow).Fprintf(os.Stderr, "warning: %s\n", w)
	}
}
