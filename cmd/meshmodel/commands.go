package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/meshmodel/internal/analysis"
	"github.com/san-kum/meshmodel/internal/audio"
	"github.com/san-kum/meshmodel/internal/automation"
	"github.com/san-kum/meshmodel/internal/config"
	"github.com/san-kum/meshmodel/internal/export"
	"github.com/san-kum/meshmodel/internal/gui"
	"github.com/san-kum/meshmodel/internal/metrics"
	"github.com/san-kum/meshmodel/internal/optim"
	"github.com/san-kum/meshmodel/internal/sim"
	"github.com/san-kum/meshmodel/internal/tui"
	"github.com/san-kum/meshmodel/internal/viz"
	"github.com/spf13/cobra"
)

// newSession builds a session from cfg with the default metrics attached,
// already in the configured entity and view.
func newSession(cfg *config.Config) (*sim.Session, error) {
	s := sim.New(cfg.BuildGrid(), cfg.WaveIntegrator())
	for _, m := range metrics.Defaults(s.Wave()) {
		s.AddMetric(m)
	}
	if _, err := s.Reset(cfg.Entity); err != nil {
		return nil, err
	}
	if err := s.SetViewMode(cfg.View); err != nil {
		return nil, err
	}
	return s, nil
}

func setup(cmd *cobra.Command) (*config.Config, *sim.Session, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	s, err := newSession(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, s, nil
}

// startAudio attaches a synth to s when --audio is set.
func startAudio(s *sim.Session) (stop func() error, err error) {
	if !withAudio {
		return func() error { return nil }, nil
	}
	synth := audio.NewSynth()
	if err := synth.Start(); err != nil {
		return nil, fmt.Errorf("audio: %w", err)
	}
	s.AddObserver(synth)
	return synth.Stop, nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, s, err := setup(cmd)
	if err != nil {
		return err
	}
	stop, err := startAudio(s)
	if err != nil {
		return err
	}
	defer stop()
	viz.SetTheme(cfg.Theme)
	return viz.Run(s, cfg.FPS)
}

func runMenu(cmd *cobra.Command, args []string) error {
	cfg, err := tui.RunLauncher()
	if err != nil || cfg == nil {
		return err
	}
	s, err := newSession(cfg)
	if err != nil {
		return err
	}
	stop, err := startAudio(s)
	if err != nil {
		return err
	}
	defer stop()
	viz.SetTheme(cfg.Theme)
	return viz.Run(s, cfg.FPS)
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, s, err := setup(cmd)
	if err != nil {
		return err
	}
	stop, err := startAudio(s)
	if err != nil {
		return err
	}
	defer stop()
	return gui.Run(s, cfg.FPS)
}

func runHeadless(cmd *cobra.Command, args []string) error {
	_, s, err := setup(cmd)
	if err != nil {
		return err
	}

	fmt.Printf("running %s on %s for %d frames...\n", s.Entity().Label(), s.Grid(), ticks)
	peaks := make([]float64, 0, ticks)
	for i := 0; i < ticks; i++ {
		if err := cmd.Context().Err(); err != nil {
			return err
		}
		s.Step()
		peaks = append(peaks, s.SelectField().MaxAbs())
	}

	fmt.Printf("timestep: %d\n", s.TimeStep())
	fmt.Printf("ticks: %d\n", s.Ticks())
	fmt.Printf("valid: %v\n", s.State().IsValid())
	printMetrics(os.Stdout, s.Metrics())

	if plot && len(peaks) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(peaks,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("max |"+s.View().FieldName()+"| per frame"),
		))
	}
	return nil
}

func printMetrics(w io.Writer, m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintln(w, "\nmetrics:")
	for _, name := range names {
		fmt.Fprintf(w, "  %s: %.6f\n", name, m[name])
	}
}

func runScript(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	_, s, err := setup(cmd)
	if err != nil {
		return err
	}

	if sc.Name != "" {
		fmt.Printf("scenario: %s\n", sc.Name)
	}
	results, err := automation.RunScenario(cmd.Context(), s, sc)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tENTITY\tVIEW\tT\tTICKS\tPEAK\tENERGY\tCOHERENCE")
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%.4f\t%.4f\t%.4f\n",
			r.Step, r.Entity.Label(), r.View.Label(), r.TimeStep, r.Ticks,
			r.Metrics["peak"], r.Metrics["energy"], r.Metrics["coherence"])
	}
	if ferr := w.Flush(); ferr != nil && err == nil {
		err = ferr
	}
	return err
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	_, s, err := setup(cmd)
	if err != nil {
		return err
	}
	g := s.Grid()
	row, col := traceRow, traceCol
	if row < 0 {
		row = g.Ny / 2
	}
	if col < 0 {
		col = g.Nx / 2
	}
	if row >= g.Ny || col >= g.Nx {
		return fmt.Errorf("sample (%d, %d) outside %s", row, col, g)
	}
	trace := analysis.NewTrace(row, col)
	s.AddObserver(trace)
	s.Run(ticks)

	f := s.SelectField()
	fmt.Printf("analysis: %s / %s after %d frames\n\n", s.Entity().Label(), s.View().Label(), s.Ticks())

	ps := analysis.RowSpectrum(f, row)
	if len(ps) > 1 {
		fmt.Println(asciigraph.Plot(ps,
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("spectrum of %s row %d", s.View().FieldName(), row)),
		))
		k := analysis.DominantBin(ps)
		fmt.Printf("\ndominant wavenumber: %d (wavelength %.3f)\n", k, g.Lx/float64(max(k, 1)))
	}

	peaks := analysis.LocalMaxima(f, minHeight)
	fmt.Printf("\npeaks >= %.3f: %d\n", minHeight, len(peaks))
	for i, p := range peaks {
		if i == 10 {
			fmt.Printf("  ... %d more\n", len(peaks)-10)
			break
		}
		fmt.Printf("  (%d, %d) x=%.3f y=%.3f value=%.4f\n", p.Row, p.Col, g.XAt(p.Col), g.YAt(p.Row), p.Value)
	}

	rate := analysis.DivergenceRate(g, s.Wave(), s.State(), row, col, 1e-6, 100)
	fmt.Printf("\ndivergence rate at (%d, %d): %.4f\n", row, col, rate)

	if len(trace.Points) > 1 {
		fmt.Printf("\nphase portrait psi vs v at (%d, %d):\n", row, col)
		fmt.Println(analysis.PhasePortraitToASCII(trace.Points, 70, 20))
	}
	return nil
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	_, s, err := setup(cmd)
	if err != nil {
		return err
	}
	write, err := snapshotWriter(s, format)
	if err != nil {
		return err
	}
	s.Run(ticks)

	if outPath == "" {
		return write(os.Stdout)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	if err := writeAndClose(f, write); err != nil {
		return err
	}
	fmt.Printf("wrote %s (t=%d)\n", outPath, s.TimeStep())
	return nil
}

// snapshotWriter picks the encoder for format; it reads the session when
// called, not when chosen.
func snapshotWriter(s *sim.Session, format string) (func(io.Writer) error, error) {
	switch strings.ToLower(format) {
	case "csv":
		return func(w io.Writer) error { return export.FieldCSV(w, s.SelectField()) }, nil
	case "full":
		return func(w io.Writer) error { return export.SnapshotCSV(w, s.Grid(), s.State()) }, nil
	case "json":
		return func(w io.Writer) error { return export.SnapshotJSON(w, s) }, nil
	case "svg":
		return func(w io.Writer) error {
			canvas := viz.NewCanvas(80, 30)
			viz.Render3D(canvas, viz.SurfaceWireframe(s.SelectField(), 40, 0.35), viz.NewCamera())
			_, err := io.WriteString(w, export.CanvasToSVG(canvas, 4, "#00ff88"))
			return err
		}, nil
	}
	return nil, fmt.Errorf("unknown format: %s (csv, full, json, svg)", format)
}

// writeAndClose runs write on wc and closes it, reporting the close error
// when the write succeeded.
func writeAndClose(wc io.WriteCloser, write func(io.Writer) error) error {
	err := write(wc)
	if cerr := wc.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	results, err := automation.RunSweep(cmd.Context(), &automation.ParameterSweep{
		Grid:      cfg.BuildGrid(),
		Base:      cfg.WaveIntegrator(),
		ParamName: sweepParam,
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepSteps,
		Ticks:     ticks,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tMAX_PEAK\tENERGY\tCOHERENCE\tCLAMP_HITS\tVALID\n", strings.ToUpper(sweepParam))
	for _, r := range results {
		fmt.Fprintf(w, "%.4f\t%.4f\t%.4f\t%.4f\t%.4f\t%v\n",
			r.ParamValue, r.MaxPeak, r.Energy, r.Coherence, r.ClampHits, r.Valid)
	}
	return w.Flush()
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	results, err := automation.RunMonteCarlo(cmd.Context(), &automation.MonteCarloConfig{
		Grid:      cfg.BuildGrid(),
		Base:      cfg.WaveIntegrator(),
		NumTrials: trials,
		Impulses:  impulses,
		Amplitude: amplitude,
		Ticks:     ticks,
		Seed:      seed,
	})
	if err != nil {
		return err
	}
	stable, unstable := automation.MonteCarloStats(results)
	fmt.Printf("trials: %d  stable: %d  unstable: %d\n", len(results), stable, unstable)
	return nil
}

func runBifurcation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	g := cfg.BuildGrid()
	row, col := traceRow, traceCol
	if row < 0 {
		row = g.Ny / 4
	}
	if col < 0 {
		col = g.Nx / 4
	}
	if row >= g.Ny || col >= g.Nx {
		return fmt.Errorf("sample (%d, %d) outside %s", row, col, g)
	}
	data, err := analysis.Bifurcation(analysis.BifurcationSweep{
		Grid:      g,
		Base:      cfg.WaveIntegrator(),
		ParamName: sweepParam,
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		Steps:     sweepSteps,
		Row:       row,
		Col:       col,
		Transient: ticks / 2,
		Record:    ticks - ticks/2,
	})
	if err != nil {
		return err
	}
	fmt.Printf("psi maxima at (%d, %d), %s %.4f..%.4f\n\n", row, col, sweepParam, sweepMin, sweepMax)
	fmt.Print(analysis.BifurcationToASCII(data, 70, 20))
	return nil
}

func runTune(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var names []string
	var ranges [][]float64
	for _, p := range []struct {
		name   string
		values []float64
	}{{"dt", tuneDt}, {"c0", tuneC0}, {"feedback", tuneFeedback}} {
		if len(p.values) > 0 {
			names = append(names, p.name)
			ranges = append(ranges, p.values)
		}
	}
	if len(names) == 0 {
		return fmt.Errorf("give at least one of --dt-values, --c0, --feedback")
	}

	build := func(params map[string]float64) (*sim.Session, error) {
		c := *cfg
		if v, ok := params["dt"]; ok {
			c.Wave.Dt = v
		}
		if v, ok := params["c0"]; ok {
			c.Wave.C0 = v
		}
		if v, ok := params["feedback"]; ok {
			c.Wave.Feedback = v
		}
		if err := c.Validate(); err != nil {
			return nil, err
		}
		return newSession(&c)
	}

	gs := optim.NewGridSearch(names, ranges)
	fmt.Printf("searching %d combinations of %s for the lowest %s...\n", gs.Combinations(), strings.Join(names, ", "), tuneMetric)
	best, val, err := gs.Search(cmd.Context(), build, ticks, tuneMetric)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, n := range names {
		fmt.Fprintf(w, "%s\t%.4f\n", n, best[n])
	}
	fmt.Fprintf(w, "%s\t%.4f\n", tuneMetric, val)
	return w.Flush()
}
