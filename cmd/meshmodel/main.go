package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/san-kum/meshmodel/internal/config"
	"github.com/san-kum/meshmodel/internal/dynamo"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	configFile string
	preset     string
	entityName string
	viewName   string
	nx         int
	ny         int
	dt         float64
	frameRate  int
	themeName  string
	withAudio  bool
	parallel   bool

	ticks      int
	plot       bool
	outPath    string
	format     string
	traceRow   int
	traceCol   int
	minHeight  float64
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	trials     int
	impulses   int
	amplitude  float64
	seed       int64

	tuneDt       []float64
	tuneC0       []float64
	tuneFeedback []float64
	tuneMetric   string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// newRootCmd registers the commands. With no subcommand the live terminal
// view runs.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "meshmodel",
		Short:        "2D scalar mesh field simulator",
		SilenceUsage: true,
		RunE:         runLive,
		// Subcommands bind the same variables, so the last registered
		// default wins unless the running command's defaults are restored.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cmd.LocalNonPersistentFlags().VisitAll(func(f *pflag.Flag) {
				if f.Changed || err != nil {
					return
				}
				if sv, ok := f.Value.(pflag.SliceValue); ok {
					err = sv.Replace(nil)
				} else {
					err = f.Value.Set(f.DefValue)
				}
			})
			return err
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "start from a named preset")
	pf.StringVar(&entityName, "entity", "", "initial entity mode (wave, particle, higgs_decay, photon_trail, entangled_pair)")
	pf.StringVar(&viewName, "view", "", "initial view (tension, curvature, coherence)")
	pf.IntVar(&nx, "nx", 0, "grid columns")
	pf.IntVar(&ny, "ny", 0, "grid rows")
	pf.Float64Var(&dt, "dt", 0, "wave timestep")
	pf.IntVar(&frameRate, "fps", 0, "frame rate")
	pf.StringVar(&themeName, "theme", "", "terminal color theme")
	pf.BoolVar(&parallel, "parallel", false, "split the wave stencil across CPU cores")
	pf.BoolVar(&withAudio, "audio", false, "play an ambient pad driven by the field (live, gui)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive terminal view",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}

	menuCmd := &cobra.Command{
		Use:   "menu",
		Short: "pick and tune a preset, then run the terminal view",
		Args:  cobra.NoArgs,
		RunE:  runMenu,
	}

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "interactive 3D window",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "advance the simulation headless and print metrics",
		Args:  cobra.NoArgs,
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&ticks, "ticks", 200, "number of frames")
	runCmd.Flags().BoolVar(&plot, "plot", false, "plot the peak history")

	scriptCmd := &cobra.Command{
		Use:   "script [scenario.yaml]",
		Short: "replay a scripted sequence of mode switches",
		Args:  cobra.ExactArgs(1),
		RunE:  runScript,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "spectrum, peaks and traced-sample phase portrait",
		Args:  cobra.NoArgs,
		RunE:  runAnalyze,
	}
	analyzeCmd.Flags().IntVar(&ticks, "ticks", 200, "number of frames")
	analyzeCmd.Flags().IntVar(&traceRow, "row", -1, "sampled row (default centre)")
	analyzeCmd.Flags().IntVar(&traceCol, "col", -1, "sampled column (default centre)")
	analyzeCmd.Flags().Float64Var(&minHeight, "min-height", 0.05, "smallest reported peak")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "write the fields after n frames",
		Args:  cobra.NoArgs,
		RunE:  runSnapshot,
	}
	snapshotCmd.Flags().IntVar(&ticks, "ticks", 100, "number of frames")
	snapshotCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	snapshotCmd.Flags().StringVar(&format, "format", "csv", "csv (selected field), full (all fields), json (session), svg (surface)")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep one wave parameter",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&sweepParam, "param", "feedback", "parameter name (dt, c0, feedback)")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 0.05, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 6, "number of values")
	sweepCmd.Flags().IntVar(&ticks, "ticks", 200, "frames per value")

	bifurcationCmd := &cobra.Command{
		Use:   "bifurcation",
		Short: "plot traced-sample maxima across one wave parameter",
		Args:  cobra.NoArgs,
		RunE:  runBifurcation,
	}
	bifurcationCmd.Flags().StringVar(&sweepParam, "param", "feedback", "parameter name (dt, c0, feedback)")
	bifurcationCmd.Flags().Float64Var(&sweepMin, "min", 0, "first value")
	bifurcationCmd.Flags().Float64Var(&sweepMax, "max", 0.05, "last value")
	bifurcationCmd.Flags().IntVar(&sweepSteps, "steps", 40, "number of values")
	bifurcationCmd.Flags().IntVar(&ticks, "ticks", 300, "frames per value")
	bifurcationCmd.Flags().IntVar(&traceRow, "row", -1, "sampled row (default quarter)")
	bifurcationCmd.Flags().IntVar(&traceCol, "col", -1, "sampled column (default quarter)")

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid search wave parameters for the lowest metric",
		Args:  cobra.NoArgs,
		RunE:  runTune,
	}
	tuneCmd.Flags().Float64SliceVar(&tuneDt, "dt-values", nil, "dt values to try")
	tuneCmd.Flags().Float64SliceVar(&tuneC0, "c0", nil, "c0 values to try")
	tuneCmd.Flags().Float64SliceVar(&tuneFeedback, "feedback", nil, "feedback values to try")
	tuneCmd.Flags().StringVar(&tuneMetric, "metric", "clamp_hits", "metric to minimise (peak, energy, coherence, clamp_hits)")
	tuneCmd.Flags().IntVar(&ticks, "ticks", 200, "frames per combination")

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "random impulse stability trials",
		Args:  cobra.NoArgs,
		RunE:  runMonteCarlo,
	}
	monteCarloCmd.Flags().IntVar(&trials, "trials", 20, "number of trials")
	monteCarloCmd.Flags().IntVar(&impulses, "impulses", 4, "impulses per trial")
	monteCarloCmd.Flags().Float64Var(&amplitude, "amplitude", 1, "largest impulse")
	monteCarloCmd.Flags().IntVar(&ticks, "ticks", 200, "frames per trial")
	monteCarloCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 uses the clock)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tGRID\tDT\tENTITY\tVIEW\tTHEME")
			for _, name := range config.ListPresets() {
				c := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%dx%d\t%.3f\t%s\t%s\t%s\n",
					name, c.Grid.Nx, c.Grid.Ny, c.Wave.Dt, c.Entity, c.View, c.Theme)
			}
			return w.Flush()
		},
	}

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the effective configuration as yaml",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}

	rootCmd.AddCommand(liveCmd, menuCmd, guiCmd, runCmd, scriptCmd, analyzeCmd, snapshotCmd, sweepCmd, bifurcationCmd, tuneCmd, monteCarloCmd, presetsCmd, initCmd)
	return rootCmd
}

// loadConfig layers the preset, the config file and explicitly set flags,
// in that order, and validates the result.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("entity") {
		m, err := dynamo.ParseEntityMode(entityName)
		if err != nil {
			return nil, err
		}
		cfg.Entity = m
	}
	if flags.Changed("view") {
		v, err := dynamo.ParseViewMode(viewName)
		if err != nil {
			return nil, err
		}
		cfg.View = v
	}
	if flags.Changed("nx") {
		cfg.Grid.Nx = nx
	}
	if flags.Changed("ny") {
		cfg.Grid.Ny = ny
	}
	if flags.Changed("dt") {
		cfg.Wave.Dt = dt
	}
	if flags.Changed("parallel") {
		cfg.Wave.Parallel = parallel
	}
	if flags.Changed("fps") {
		cfg.FPS = frameRate
	}
	if flags.Changed("theme") {
		cfg.Theme = themeName
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
