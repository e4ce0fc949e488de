// Package cli wires the zibox command tree. The root command is the
// compiler: parse, lower, optimize, schedule, render. Subcommands cover the
// small conveniences around it (format listing, file scaffolding).
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yourusername/zibox/internal/codegen"
	"github.com/yourusername/zibox/internal/config"
	"github.com/yourusername/zibox/internal/ir"
	"github.com/yourusername/zibox/internal/logbook"
	"github.com/yourusername/zibox/internal/optimizer"
	"github.com/yourusername/zibox/internal/parser"
	"github.com/yourusername/zibox/internal/runtime"
	"github.com/yourusername/zibox/internal/scheduler"
)

var (
	flagOutputFormat string
	flagOutputFile   string
	flagWorkdayStart string
	flagWorkdayEnd   string
	flagScheduleMode string
	flagOptLevel     int
	flagFocusTags    []string
	flagMaxParallel  int
	flagDeepworkTag  string
	flagDryRun       bool
	flagShowIR       bool
	flagVisualize    bool
	flagRun          bool
)

var rootCmd = &cobra.Command{
	Use:   "zibox FILE",
	Short: "Compile structured plan files into scheduled execution plans",
	Long: `Zibox is a DSL compiler for attention/task modeling. It turns
structured .zbx text files into optimized, time-allocated execution plans.`,
	Version:      "0.1.0",
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runCompile,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&flagOutputFormat, "output-format", "f", "", "Output format (markdown, json, shell, calendar)")
	flags.StringVarP(&flagOutputFile, "output-file", "o", "", "Output file path (default: stdout)")
	flags.StringVar(&flagWorkdayStart, "workday-start", "", "Workday start time (HH:MM)")
	flags.StringVar(&flagWorkdayEnd, "workday-end", "", "Workday end time (HH:MM)")
	flags.StringVar(&flagScheduleMode, "schedule-mode", "", "Schedule mode (naive, early-bird, deepwork-first)")
	flags.IntVarP(&flagOptLevel, "opt-level", "O", 0, "Optimization level (0-3)")
	flags.StringSliceVar(&flagFocusTags, "focus-tag", nil, "Focus on specific tags (repeatable)")
	flags.IntVar(&flagMaxParallel, "max-parallel", 0, "Maximum number of parallel tasks")
	flags.StringVar(&flagDeepworkTag, "deepwork-tag", "", "Tag routed into the deepwork window")
	flags.BoolVar(&flagDryRun, "dry-run", false, "Simulate task execution")
	flags.BoolVar(&flagShowIR, "show-ir", false, "Print the intermediate representation")
	flags.BoolVar(&flagVisualize, "visualize", false, "Print a schedule timeline")
	flags.BoolVar(&flagRun, "run", false, "Step through the compiled plan interactively")

	rootCmd.AddCommand(formatsCmd, newCmd, logCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// mergeFlags layers explicitly set flags over the file configuration.
func mergeFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("output-format") {
		cfg.OutputFormat = flagOutputFormat
	}
	if flags.Changed("output-file") {
		cfg.OutputFile = flagOutputFile
	}
	if flags.Changed("workday-start") {
		cfg.WorkdayStart = flagWorkdayStart
	}
	if flags.Changed("workday-end") {
		cfg.WorkdayEnd = flagWorkdayEnd
	}
	if flags.Changed("schedule-mode") {
		cfg.ScheduleMode = flagScheduleMode
	}
	if flags.Changed("opt-level") {
		cfg.OptimizationLevel = flagOptLevel
	}
	if flags.Changed("focus-tag") {
		cfg.FocusTags = flagFocusTags
	}
	if flags.Changed("max-parallel") {
		cfg.MaxParallel = flagMaxParallel
	}
	if flags.Changed("deepwork-tag") {
		cfg.DeepworkTag = flagDeepworkTag
	}
	cfg.DryRun = flagDryRun
	cfg.ShowIR = flagShowIR
	cfg.Visualize = flagVisualize
}

func runCompile(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no input file specified; run 'zibox --help' for usage")
	}
	inputFile := args[0]

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	mergeFlags(cmd, &cfg)

	// Configuration errors surface before any stage runs.
	md, err := cfg.Metadata()
	if err != nil {
		return err
	}
	mode, err := cfg.Mode()
	if err != nil {
		return err
	}
	format, err := codegen.ParseFormat(cfg.OutputFormat)
	if err != nil {
		return err
	}

	blocks, err := parser.ParseFile(inputFile)
	if err != nil {
		return err
	}

	log, err := logbook.New(logbook.DefaultPath)
	if err != nil {
		return err
	}
	log.Stage(logbook.StageCompile).Info("compiling %s (%s, level %d, %s)",
		inputFile, mode, md.OptimizationLevel, format)

	program := ir.Lower(blocks, md)
	optimizer.Optimize(program, md.OptimizationLevel)
	sched := scheduler.New(mode,
		scheduler.WithDeepworkTag(md.DeepworkTag),
		scheduler.WithLogbook(log))
	sched.Schedule(program)

	if cfg.ShowIR {
		if err := showIR(cmd, program); err != nil {
			return err
		}
	}
	if cfg.Visualize {
		fmt.Fprintln(cmd.OutOrStdout())
		fmt.Fprintln(cmd.OutOrStdout(), codegen.Visualize(program))
	}

	output, err := codegen.Generate(program, format)
	if err != nil {
		return err
	}
	if err := emit(cmd, cfg.OutputFile, output); err != nil {
		return err
	}

	if flagRun {
		return runtime.Run(program, cfg.DryRun, log)
	}
	return nil
}

// showIR prints the lowered, optimized, scheduled program in its JSON form.
func showIR(cmd *cobra.Command, program *ir.Program) error {
	dump, err := codegen.Generate(program, codegen.FormatJSON)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Intermediate representation:")
	fmt.Fprintln(cmd.OutOrStdout(), dump)
	return nil
}

// emit writes the rendered output to the configured file, or stdout when no
// file is configured.
func emit(cmd *cobra.Command, outputFile, output string) error {
	if outputFile == "" {
		fmt.Fprintln(cmd.OutOrStdout(), output)
		return nil
	}
	if dir := filepath.Dir(outputFile); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(outputFile, []byte(output), 0o644); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Output written to %s\n", outputFile)
	return nil
}
