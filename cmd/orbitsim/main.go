package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/orbitlab/orbitsim/internal/config"
	"github.com/orbitlab/orbitsim/internal/engine"
	"github.com/orbitlab/orbitsim/internal/export"
	"github.com/orbitlab/orbitsim/internal/metrics"
	"github.com/orbitlab/orbitsim/internal/storage"
	"github.com/orbitlab/orbitsim/internal/view"
	"github.com/orbitlab/orbitsim/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	systemFile string
	numBodies  int
	seed       int64
	dt         float64
	forcePower float64
	scale      float64
	steps      int
	tickRate   int
	outFile    string
	svgWidth   float64
	svgHeight  float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "orbitsim",
		Short: "interactive n-body orbit simulator",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the live view when no subcommand is given.
			return runLive(cmd, args)
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".orbitsim", "run data directory")
	addSystemFlags(rootCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the simulation with live terminal visualization",
		RunE:  runLive,
	}
	addSystemFlags(liveCmd)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless and store diagnostics",
		RunE:  runHeadless,
	}
	addSystemFlags(runCmd)
	runCmd.Flags().IntVar(&steps, "steps", 3650, "physics ticks to run")
	runCmd.Flags().IntVar(&tickRate, "rate", 0, "tick rate cap, 0 for unthrottled")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in system presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets()
			sort.Strings(names)
			for _, name := range names {
				fmt.Printf("%s (%d bodies)\n", name, len(config.GetPreset(name)))
			}
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the energy series of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "run with tracing and export the scene to SVG",
		RunE:  exportScene,
	}
	addSystemFlags(exportCmd)
	exportCmd.Flags().IntVar(&steps, "steps", 3650, "physics ticks to run")
	exportCmd.Flags().StringVarP(&outFile, "out", "o", "orbit.svg", "output file")
	exportCmd.Flags().Float64Var(&svgWidth, "width", 1280, "image width in px")
	exportCmd.Flags().Float64Var(&svgHeight, "height", 800, "image height in px")

	rootCmd.AddCommand(liveCmd, runCmd, presetsCmd, listCmd, plotCmd, exportCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func addSystemFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "settings file (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "built-in system preset")
	cmd.Flags().StringVar(&systemFile, "system", "", "semicolon system description file")
	cmd.Flags().IntVar(&numBodies, "bodies", 0, "body count for randomized systems")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed, 0 for time-based")
	cmd.Flags().Float64Var(&dt, "dt", 0, "days per tick (negative reverses time)")
	cmd.Flags().Float64Var(&forcePower, "power", 0, "force-law exponent, -2 for gravity")
	cmd.Flags().Float64Var(&scale, "scale", 0, "initial zoom in px/AU")
}

// buildConfig layers CLI flags over an optional settings file over
// defaults.
func buildConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if preset != "" {
		cfg.Preset = preset
	}
	if systemFile != "" {
		cfg.SystemFile = systemFile
	}
	if numBodies > 0 {
		cfg.Bodies = numBodies
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	if dt != 0 {
		cfg.Dt = dt
	}
	if forcePower != 0 {
		cfg.ForcePower = forcePower
	}
	if scale > 0 {
		cfg.Scale = scale
	}
	cfg.Normalize()
	return cfg, nil
}

func buildEngine() (*engine.Engine, *config.Config, error) {
	cfg, err := buildConfig()
	if err != nil {
		return nil, nil, err
	}
	records, err := cfg.Records()
	if err != nil {
		return nil, nil, err
	}
	return engine.New(records, cfg.EngineOptions()), cfg, nil
}

func runLive(cmd *cobra.Command, args []string) error {
	eng, cfg, err := buildEngine()
	if err != nil {
		return err
	}
	return viz.Run(eng, cfg.Sampler(eng.Model()), cfg.Scale)
}

func systemName(cfg *config.Config) string {
	switch {
	case cfg.Preset != "":
		return cfg.Preset
	case cfg.SystemFile != "":
		return "file"
	default:
		return "random"
	}
}

func runHeadless(cmd *cobra.Command, args []string) error {
	eng, cfg, err := buildEngine()
	if err != nil {
		return err
	}
	eng.SetPaused(false)

	observers := []metrics.Metric{
		metrics.NewEnergyDrift(eng.Model()),
		metrics.NewMomentumDrift(),
		metrics.NewBodyCount(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	series := make([]storage.Sample, 0, steps)
	err = eng.Run(ctx, tickRate, steps, func(tick int) bool {
		reg := eng.Bodies()
		for _, m := range observers {
			m.Observe(reg, eng.Time())
		}
		p := reg.Momentum()
		series = append(series, storage.Sample{
			Time:            eng.Time(),
			Energy:          reg.Energy(eng.Model()),
			Px:              p.X,
			Py:              p.Y,
			AngularMomentum: reg.AngularMomentum(),
			Bodies:          len(reg),
		})
		return true
	})
	if err != nil && err != context.Canceled {
		return err
	}

	values := make(map[string]float64, len(observers))
	for _, m := range observers {
		values[m.Name()] = m.Value()
	}

	store := storage.New(dataDir)
	if err := store.Init(); err != nil {
		return err
	}
	runID, err := store.Save(storage.RunMetadata{
		System:     systemName(cfg),
		Seed:       cfg.Seed,
		Dt:         cfg.Dt,
		ForcePower: cfg.ForcePower,
		Steps:      len(series),
		Metrics:    values,
	}, series, eng.Bodies())
	if err != nil {
		return err
	}

	fmt.Printf("run %s: %d ticks, %d bodies remain\n", runID, len(series), len(eng.Bodies()))
	for _, m := range observers {
		fmt.Printf("  %s: %g\n", m.Name(), m.Value())
	}
	plotSeries(series)
	return nil
}

func plotSeries(series []storage.Sample) {
	if len(series) < 2 {
		return
	}
	energy := make([]float64, len(series))
	for i, s := range series {
		energy[i] = s.Energy
	}
	fmt.Println("\nenergy:")
	fmt.Println(asciigraph.Plot(energy, asciigraph.Height(10), asciigraph.Width(70)))
}

func listRuns(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	runs, err := store.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no stored runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSYSTEM\tSTEPS\tDT\tPOWER\tTIMESTAMP")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%g\t%g\t%s\n",
			run.ID, run.System, run.Steps, run.Dt, run.ForcePower,
			run.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	series, err := store.LoadSeries(args[0])
	if err != nil {
		return err
	}
	if len(series) < 2 {
		return fmt.Errorf("run %s has no series data", args[0])
	}
	plotSeries(series)
	return nil
}

func exportScene(cmd *cobra.Command, args []string) error {
	eng, cfg, err := buildEngine()
	if err != nil {
		return err
	}
	eng.SetPaused(false)
	eng.ToggleTrace()

	for i := 0; i < steps; i++ {
		eng.Step()
	}

	tr := view.NewTransform(svgWidth, svgHeight)
	tr.Scale = cfg.Scale
	tr.Recentre(eng.ViewReference().Pos)

	if err := export.WriteScene(outFile, eng.Bodies(), tr, eng.Contours(), svgWidth, svgHeight); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d bodies)\n", outFile, len(eng.Bodies()))
	return nil
}
