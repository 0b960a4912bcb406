package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/san-kum/algoviz/internal/config"
	"github.com/san-kum/algoviz/internal/generator"
	"github.com/san-kum/algoviz/internal/logging"
	"github.com/san-kum/algoviz/internal/tui"
	"github.com/spf13/cobra"
)

var (
	configFile string
	dataDir    string
	theme      string
	verbose    bool

	preset    string
	dataFlag  string
	paramFlag map[string]string
	speed     float64
	interval  int
	frameRate int
	save      bool

	format   string
	output   string
	plotVar  string
	markdown bool
	animate  bool
	stats    bool
	stepAt   int

	sweepParam string
	sweepMin   int
	sweepMax   int
	sweepStep  int
	trials     int
	trialSize  int
	trialSeed  int64
)

var (
	registry = generator.Default()
	cfg      *config.Config
	logger   *slog.Logger
)

// main registers the commands and launches the interactive player when no
// subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:           "algoviz",
		Short:         "step through algorithm visualizations",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run(registry, cfg, logger)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", config.DefaultDataDir, "saved runs directory")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", config.DefaultTheme, "colour theme")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	playCmd := &cobra.Command{
		Use:   "play [algorithm]",
		Short: "autoplay an algorithm in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  playAlgorithm,
	}
	inputFlags(playCmd)
	playCmd.Flags().Float64Var(&speed, "speed", config.DefaultSpeed, "speed multiplier")
	playCmd.Flags().IntVar(&interval, "interval", config.DefaultBaseIntervalMs, "base step interval in ms")
	playCmd.Flags().IntVar(&frameRate, "fps", 0, "frame rate limit (0 draws every step)")
	playCmd.Flags().BoolVar(&save, "save", false, "save the run")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list algorithms",
		RunE:  listAlgorithms,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [algorithm]",
		Short: "list available presets for an algorithm",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for algorithm: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	stepsCmd := &cobra.Command{
		Use:   "steps [algorithm]",
		Short: "print the generated step sequence",
		Args:  cobra.MaximumNArgs(1),
		RunE:  printSteps,
	}
	inputFlags(stepsCmd)
	stepsCmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json, yaml or csv")
	stepsCmd.Flags().BoolVar(&save, "save", false, "save the run")

	traceCmd := &cobra.Command{
		Use:   "trace [algorithm]",
		Short: "print every frame of a run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  traceAlgorithm,
	}
	inputFlags(traceCmd)
	traceCmd.Flags().StringVar(&plotVar, "plot", "", "plot a numeric variable across the run")
	traceCmd.Flags().BoolVar(&markdown, "markdown", false, "print a markdown transcript")
	traceCmd.Flags().BoolVar(&stats, "stats", false, "print operation counts")
	traceCmd.Flags().BoolVar(&animate, "play", false, "animate instead of printing every frame")

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list saved runs",
		RunE:  listRuns,
	}
	runsExportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	runsExportCmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json, yaml or csv")
	runsExportCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	runsPlayCmd := &cobra.Command{
		Use:   "play [run_id]",
		Short: "replay a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  playRun,
	}
	runsPlayCmd.Flags().Float64Var(&speed, "speed", config.DefaultSpeed, "speed multiplier")
	runsPlayCmd.Flags().IntVar(&interval, "interval", config.DefaultBaseIntervalMs, "base step interval in ms")
	runsCmd.AddCommand(runsExportCmd, runsPlayCmd)

	embedCmd := &cobra.Command{
		Use:   "embed [document]",
		Short: "list the visualizations declared in an HTML or MDX document",
		Args:  cobra.ExactArgs(1),
		RunE:  inspectDocument,
	}

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [algorithm]",
		Short: "rerun an algorithm over a range of one numeric parameter",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	inputFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "vary", "", "parameter to vary")
	sweepCmd.Flags().IntVar(&sweepMin, "min", 0, "first value")
	sweepCmd.Flags().IntVar(&sweepMax, "max", 10, "last value")
	sweepCmd.Flags().IntVar(&sweepStep, "stride", 1, "increment")
	_ = sweepCmd.MarkFlagRequired("vary")

	randomCmd := &cobra.Command{
		Use:   "random [algorithm]",
		Short: "run an algorithm on random arrays and report step counts",
		Args:  cobra.ExactArgs(1),
		RunE:  runRandom,
	}
	randomCmd.Flags().StringToStringVarP(&paramFlag, "param", "p", nil, "parameter values, name=value")
	randomCmd.Flags().IntVar(&trials, "trials", 20, "number of trials")
	randomCmd.Flags().IntVar(&trialSize, "size", 8, "array length")
	randomCmd.Flags().Int64Var(&trialSeed, "seed", 1, "random seed")

	svgCmd := &cobra.Command{
		Use:   "svg [algorithm]",
		Short: "export one frame as SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportSVG,
	}
	inputFlags(svgCmd)
	svgCmd.Flags().IntVar(&stepAt, "step", -1, "step index (default last)")
	svgCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	rootCmd.AddCommand(playCmd, listCmd, presetsCmd, stepsCmd, traceCmd, runsCmd, embedCmd, batchCmd, sweepCmd, randomCmd, svgCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func inputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&preset, "preset", "", "use a preset input")
	cmd.Flags().StringVar(&dataFlag, "input", "", "comma separated data items")
	cmd.Flags().StringToStringVarP(&paramFlag, "param", "p", nil, "parameter values, name=value")
}

// setup loads the config file and applies persistent flags that were set
// explicitly.
func setup(cmd *cobra.Command) error {
	logger = logging.New(logging.Level(verbose))

	cfg = config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("data-dir") || cfg.DataDir == "" {
		cfg.DataDir = dataDir
	}
	if cmd.Flags().Changed("theme") || cfg.Theme == "" {
		cfg.Theme = theme
	}
	logger.Debug("config ready", "file", configFile, "algorithm", cfg.Algorithm, "data_dir", cfg.DataDir)
	return nil
}
