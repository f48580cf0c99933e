package main

import (
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/gravsim/internal/comm"
	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/fmm"
	"github.com/san-kum/gravsim/internal/geom"
	"github.com/san-kum/gravsim/internal/metrics"
	"github.com/san-kum/gravsim/internal/scene"
	"github.com/san-kum/gravsim/internal/store"
	"github.com/san-kum/gravsim/internal/tree"
	"github.com/san-kum/gravsim/internal/viz"
)

var version = "0.3.0"

var (
	configFile string
	preset     string
	ranks      int
	steps      int
	maxMass    float64
	theta      float64
	leafCap    int
	sceneKind  string
	sceneN     int
	spacing    float64
	seed       int64
	exportJSON string
	exportCSV  string
)

func main() {
	root := &cobra.Command{
		Use:   "gravsim",
		Short: "Distributed FMM gravity over in-process ranks",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run gravity steps headless and print a summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			res, err := execute(cfg, nil)
			if err != nil {
				return err
			}
			fmt.Print(viz.Summary(cfg.Scene.Kind, cfg.Ranks, len(res.bodies), cfg.MaxMass, cfg.Theta, res.reports))
			return exportResults(cfg, res)
		},
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "Run gravity steps with a live progress view",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			bodies, err := scene.Build(cfg.Scene)
			if err != nil {
				return err
			}

			p := tea.NewProgram(viz.NewModel(cfg.Scene.Kind, cfg.Ranks, len(bodies), cfg.Steps))
			done := make(chan struct{})
			var res *runResult
			var runErr error
			go func() {
				defer close(done)
				res, runErr = execute(cfg, func(r viz.StepReport) {
					p.Send(viz.StepMsg(r))
				})
				p.Send(viz.DoneMsg{Err: runErr})
			}()

			if _, err := p.Run(); err != nil {
				return err
			}
			<-done
			if runErr != nil {
				return runErr
			}
			return exportResults(cfg, res)
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "List the named run presets",
		Run: func(cmd *cobra.Command, args []string) {
			names := config.ListPresets()
			sort.Strings(names)
			for _, name := range names {
				c := config.GetPreset(name)
				fmt.Printf("%-12s %s n=%d ranks=%d maxMass=%g theta=%g\n",
					name, c.Scene.Kind, c.Scene.N, c.Ranks, c.MaxMass, c.Theta)
			}
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("gravsim", version)
		},
	}

	for _, cmd := range []*cobra.Command{runCmd, liveCmd} {
		cmd.Flags().StringVarP(&configFile, "config", "c", "", "YAML config file")
		cmd.Flags().StringVarP(&preset, "preset", "p", "", "named preset (see 'gravsim presets')")
		cmd.Flags().IntVar(&ranks, "ranks", config.DefaultRanks, "number of in-process ranks")
		cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "gravity steps to run")
		cmd.Flags().Float64Var(&maxMass, "max-mass", config.DefaultMaxMass, "frontier cell mass threshold")
		cmd.Flags().Float64Var(&theta, "theta", config.DefaultTheta, "multipole opening angle")
		cmd.Flags().IntVar(&leafCap, "leaf-cap", config.DefaultLeafCap, "octree leaf capacity")
		cmd.Flags().StringVar(&sceneKind, "scene", config.DefaultScene, "scene kind: grid, cluster, pair")
		cmd.Flags().IntVar(&sceneN, "n", config.DefaultN, "scene size parameter")
		cmd.Flags().Float64Var(&spacing, "spacing", config.DefaultSpacing, "grid spacing / cluster side / pair separation")
		cmd.Flags().Int64Var(&seed, "seed", 0, "cluster scene seed")
		cmd.Flags().StringVar(&exportJSON, "export-json", "", "write results to a JSON file")
		cmd.Flags().StringVar(&exportCSV, "export-csv", "", "write results to a CSV file")
	}

	root.AddCommand(runCmd, liveCmd, presetsCmd, versionCmd)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig layers file, preset and explicitly set flags, in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q", preset)
		}
		cfg = p
	}

	set := func(name string) bool { return cmd.Flags().Changed(name) }
	if set("ranks") {
		cfg.Ranks = ranks
	}
	if set("steps") {
		cfg.Steps = steps
	}
	if set("max-mass") {
		cfg.MaxMass = maxMass
	}
	if set("theta") {
		cfg.Theta = theta
	}
	if set("leaf-cap") {
		cfg.LeafCap = leafCap
	}
	if set("scene") {
		cfg.Scene.Kind = sceneKind
	}
	if set("n") {
		cfg.Scene.N = sceneN
	}
	if set("spacing") {
		cfg.Scene.Spacing = spacing
	}
	if set("seed") {
		cfg.Scene.Seed = seed
	}
	if set("export-json") {
		cfg.Export.JSON = exportJSON
	}
	if set("export-csv") {
		cfg.Export.CSV = exportCSV
	}

	return cfg, cfg.Validate()
}

type runResult struct {
	reports []viz.StepReport
	bodies  []*tree.Particle
	metrics map[string]float64
}

// execute runs cfg.Steps gravity steps over cfg.Ranks in-process ranks.
// Bodies do not move between steps, so each rank's tree and solver are built
// once; accelerations are zeroed before every step.
func execute(cfg *config.Config, onStep func(viz.StepReport)) (*runResult, error) {
	bodies, err := scene.Build(cfg.Scene)
	if err != nil {
		return nil, err
	}
	perRank := scene.PartitionX(bodies, cfg.Ranks)

	world := comm.NewWorld(cfg.Ranks)
	trees := make([]*tree.Octree, cfg.Ranks)
	solvers := make([]*fmm.Solver, cfg.Ranks)
	frontier := make([]int, cfg.Ranks)
	for r := 0; r < cfg.Ranks; r++ {
		trees[r] = tree.Build(perRank[r], r, cfg.LeafCap)
		solvers[r] = fmm.NewSolver(world[r])
		frontier[r] = len(fmm.SelectFrontier(trees[r], cfg.MaxMass))
	}

	balance := metrics.NewMomentumBalance()
	maxA := metrics.NewMaxAccel()
	nan := metrics.NewNaNGuard()
	all := make([]tree.Body, len(bodies))
	for i, b := range bodies {
		all[i] = b
	}

	res := &runResult{bodies: bodies}
	for step := 0; step < cfg.Steps; step++ {
		for _, b := range bodies {
			b.Acc = geom.Point{}
		}

		start := time.Now()
		errs := make([]error, cfg.Ranks)
		var wg sync.WaitGroup
		for r := 0; r < cfg.Ranks; r++ {
			wg.Add(1)
			go func(r int) {
				defer wg.Done()
				errs[r] = solvers[r].Step(trees[r], cfg.MaxMass, cfg.Theta)
			}(r)
		}
		wg.Wait()
		for r, err := range errs {
			if err != nil {
				return nil, fmt.Errorf("rank %d: %w", r, err)
			}
		}

		for _, m := range []metrics.Metric{balance, maxA, nan} {
			m.Reset()
			m.Observe(all)
		}

		report := viz.StepReport{
			Step:      step + 1,
			Frontier:  frontier,
			Residual:  balance.Value(),
			MaxAccel:  maxA.Value(),
			NaNBodies: nan.Value(),
			Elapsed:   time.Since(start),
		}
		res.reports = append(res.reports, report)
		if onStep != nil {
			onStep(report)
		}
	}

	res.metrics = map[string]float64{
		balance.Name(): balance.Value(),
		maxA.Name():    maxA.Value(),
		nan.Name():     nan.Value(),
	}
	return res, nil
}

func exportResults(cfg *config.Config, res *runResult) error {
	if cfg.Export.JSON == "" && cfg.Export.CSV == "" {
		return nil
	}
	all := make([]tree.Body, len(res.bodies))
	for i, b := range res.bodies {
		all[i] = b
	}
	data := store.Collect(cfg.Scene.Kind, cfg.Ranks, cfg.MaxMass, cfg.Theta, all, res.metrics)

	if cfg.Export.JSON != "" {
		if err := store.ExportJSON(cfg.Export.JSON, data); err != nil {
			return err
		}
	}
	if cfg.Export.CSV != "" {
		return store.ExportCSV(cfg.Export.CSV, data)
	}
	return nil
}
