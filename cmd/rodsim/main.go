package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/pierremaillar/rodsim/internal/config"
	"github.com/pierremaillar/rodsim/internal/scenario"
	"github.com/pierremaillar/rodsim/internal/stepper"
	"github.com/pierremaillar/rodsim/internal/storage"
)

var (
	dataDir    string
	configFile string
	dt         float64
	duration   float64
	nodes      int
	damping    float64
	noSave     bool

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	faintStyle  = lipgloss.NewStyle().Faint(true)
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rodsim",
		Short: "slender-body simulation lab",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".rodsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "assemble and integrate a scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "YAML config file")
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	runCmd.Flags().IntVar(&nodes, "nodes", config.DefaultNodes, "nodes per rod")
	runCmd.Flags().Float64Var(&damping, "damping", config.DefaultDamping, "damping coefficient")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "skip persisting the run")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list scenarios and stored runs",
		RunE:  listAll,
	}

	rootCmd.AddCommand(runCmd, listCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig(name string) (*config.Config, error) {
	if configFile != "" {
		return config.Load(configFile)
	}
	cfg := config.Default()
	cfg.Scenario = name
	cfg.Dt = dt
	cfg.Duration = duration
	cfg.Nodes = nodes
	cfg.Damping = damping
	return cfg, cfg.Validate()
}

func runScenario(cmd *cobra.Command, args []string) error {
	name := args[0]
	cfg, err := loadConfig(name)
	if err != nil {
		return err
	}

	built, err := scenario.NewRegistry().Build(name, cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Println(headerStyle.Render(fmt.Sprintf("rodsim run: %s", name)))
	fmt.Println(faintStyle.Render(fmt.Sprintf("dt=%g duration=%g nodes=%d", cfg.Dt, cfg.Duration, cfg.Nodes)))

	steps, err := stepper.Integrate(ctx, built.Sim, stepper.NewPositionVerlet(), stepper.Config{
		Dt:       cfg.Dt,
		Duration: cfg.Duration,
	})
	if err != nil {
		return err
	}

	if series := built.Recorder.TipSeries(1); len(series) > 1 {
		fmt.Println(asciigraph.Plot(series,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("tip vertical displacement"),
		))
	}

	if noSave {
		fmt.Println(faintStyle.Render(fmt.Sprintf("%d steps, run not saved", steps)))
		return nil
	}

	store := storage.New(dataDir)
	if err := store.Init(); err != nil {
		return err
	}
	runID, err := store.Save(name, cfg.Dt, cfg.Duration, steps, built.Recorder)
	if err != nil {
		return err
	}
	fmt.Println(faintStyle.Render(fmt.Sprintf("%d steps, saved as %s", steps, runID)))
	return nil
}

func listAll(cmd *cobra.Command, args []string) error {
	fmt.Println(headerStyle.Render("scenarios"))
	for _, name := range scenario.NewRegistry().List() {
		fmt.Printf("  %s\n", name)
	}

	store := storage.New(dataDir)
	runs, err := store.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		return nil
	}

	fmt.Println(headerStyle.Render("stored runs"))
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "  id\tscenario\tsamples")
	for _, id := range runs {
		meta, err := store.LoadMetadata(id)
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "  %s\t%s\t%d\n", meta.ID, meta.Scenario, meta.Samples)
	}
	return w.Flush()
}
