// Command ifc2graphml converts IFC building models into GraphML
// entity-relationship graphs.
//
//	ifc2graphml -i models -o graphs
//	ifc2graphml inspect graphs/house.graphml
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-ifcgraph/pkg/config"
	"github.com/dd0wney/cluso-ifcgraph/pkg/convert"
	"github.com/dd0wney/cluso-ifcgraph/pkg/graphml"
	"github.com/dd0wney/cluso-ifcgraph/pkg/logging"
	"github.com/dd0wney/cluso-ifcgraph/pkg/metrics"
	"github.com/dd0wney/cluso-ifcgraph/pkg/validation"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code. Files
// that fail to convert do not change the exit code.
func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

type flags struct {
	configPath      string
	inputDir        string
	outputDir       string
	recursive       bool
	atomic          bool
	logLevel        string
	logFormat       string
	metricsFile     string
	primaryCategory string
	spaceCommonPset string
	logPruned       bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var f flags

	root := &cobra.Command{
		Use:   "ifc2graphml",
		Short: "Convert IFC building models to GraphML graphs",
		Long: `ifc2graphml reads every IFC file in the input directory, builds a graph of
spaces and the walls, doors and windows around them, and writes one GraphML
file per model to the output directory.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, &f)
			if err != nil {
				return err
			}
			return convertAll(cfg, stdout, stderr)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	defaults := config.Default()
	pf := root.Flags()
	pf.StringVarP(&f.configPath, "config", "c", "", "YAML configuration file")
	pf.StringVarP(&f.inputDir, "input-dir", "i", defaults.InputDir, "Directory containing IFC files")
	pf.StringVarP(&f.outputDir, "output-dir", "o", defaults.OutputDir, "Directory for output GraphML files")
	pf.BoolVarP(&f.recursive, "recursive", "r", defaults.Recursive, "Search subdirectories and mirror them in the output directory")
	pf.BoolVar(&f.atomic, "atomic", defaults.AtomicWrite, "Write through a temporary file and rename it into place")
	pf.StringVar(&f.logLevel, "log-level", defaults.LogLevel, "Log level (debug, info, warn, error)")
	pf.StringVar(&f.logFormat, "log-format", defaults.LogFormat, "Log format (json, text)")
	pf.StringVar(&f.metricsFile, "metrics-file", "", "Write Prometheus metrics to this file after the run")
	pf.StringVar(&f.primaryCategory, "primary-category", defaults.Extraction.PrimaryCategory, "IFC type inserted as the primary node category")
	pf.StringVar(&f.spaceCommonPset, "space-common-pset", defaults.Extraction.SpaceCommonPset, "Property set whose Name property names a space")
	pf.BoolVar(&f.logPruned, "log-pruned", false, "Log every entity pruned for having no relations")

	root.AddCommand(newInspectCmd(stdout))
	return root
}

// loadConfig layers defaults, the config file, the environment and the
// flags the user set explicitly, in that order.
func loadConfig(cmd *cobra.Command, f *flags) (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed
	if changed("input-dir") {
		cfg.InputDir = f.inputDir
	}
	if changed("output-dir") {
		cfg.OutputDir = f.outputDir
	}
	if changed("recursive") {
		cfg.Recursive = f.recursive
	}
	if changed("atomic") {
		cfg.AtomicWrite = f.atomic
	}
	if changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if changed("log-format") {
		cfg.LogFormat = f.logFormat
	}
	if changed("metrics-file") {
		cfg.MetricsFile = f.metricsFile
	}
	if changed("primary-category") {
		cfg.Extraction.PrimaryCategory = f.primaryCategory
	}
	if changed("space-common-pset") {
		cfg.Extraction.SpaceCommonPset = f.spaceCommonPset
	}
	if changed("log-pruned") {
		cfg.Extraction.LogPruned = f.logPruned
	}

	if err := validation.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func convertAll(cfg *config.Config, stdout, stderr io.Writer) error {
	logger := logging.New(stderr, logging.ParseLevel(cfg.LogLevel), logging.ParseFormat(cfg.LogFormat))
	logging.SetDefaultLogger(logger)

	report, err := convert.New(cfg, nil, metrics.NewRegistry()).Run()
	switch {
	case errors.Is(err, convert.ErrNoInputFiles):
		fmt.Fprintf(stdout, "No %s files found in %s\n", cfg.Extension, cfg.InputDir)
		return nil
	case err != nil:
		return err
	}

	renderReport(stdout, report, isTerminal(stdout))
	return nil
}

func newInspectCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect FILE.graphml...",
		Short: "Summarise GraphML files written by ifc2graphml",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			styled := isTerminal(stdout)
			for _, path := range args {
				g, err := graphml.ReadFile(path)
				if err != nil {
					return fmt.Errorf("inspect %s: %w", path, err)
				}
				renderInspect(stdout, path, g, styled)
			}
			return nil
		},
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
