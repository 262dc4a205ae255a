package main

import (
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/cwbudde/algo-prewhiten/internal/report"
	"github.com/cwbudde/algo-prewhiten/measure/montecarlo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newMonteCarloCmd(g *globals) *cobra.Command {
	var showProgress bool

	cmd := &cobra.Command{
		Use:   "montecarlo <file> <numin> <numax>",
		Short: "Estimate the peak frequency uncertainty by noise injection",
		Long: `montecarlo adds Gaussian noise N(mu, sigma^2) to the series once per
trial, locates the highest periodogram peak in [numin, numax] and reports
the median, mean and standard deviation of the peak frequencies.`,
		Args: withUsage(func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(3)(cmd, args); err != nil {
				return err
			}
			numin, numax, err := parseBand(args[1], args[2])
			if err != nil {
				return err
			}
			g.v.Set("analysis.numin", numin)
			g.v.Set("analysis.numax", numax)
			return nil
		}),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, ts, err := g.setup(args[0])
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			mcfg, err := cfg.MonteCarloConfig()
			if err != nil {
				return err
			}
			est, err := montecarlo.NewEstimator(mcfg)
			if err != nil {
				return err
			}

			var s *spinner.Spinner
			if showProgress {
				s = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(g.stderr))
				s.Suffix = fmt.Sprintf(" Running %d trials...", est.Config().Trials)
				s.Start()
			}
			start := time.Now()
			res, err := est.Run(cmd.Context(), ts)
			if s != nil {
				s.Stop()
			}
			if err != nil {
				return fmt.Errorf("monte carlo run failed: %w", err)
			}
			logger.Info("monte carlo finished",
				zap.Int("trials", len(res.Frequencies)), zap.Duration("elapsed", time.Since(start)))

			fmt.Fprintf(g.stdout, "Median: %16.16f, Mean: %16.16f, StdDev: %16.16f, Trials: %d\n",
				res.Median, res.Mean, res.StdDev, len(res.Frequencies))

			if cfg.Output.Path != "" {
				doc := report.New(args[0], ts, cfg.Analysis)
				doc.SetMonteCarlo(est.Config(), res)
				if err := writeReport(cfg.Output.Path, cfg.Output.Format, doc); err != nil {
					return err
				}
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.Float64("mu", 0, "mean of the injected noise")
	f.Float64("sigma", 0, "standard deviation of the injected noise")
	f.Int("trials", 0, "number of trials (default 100)")
	f.Int64("seed", 0, "random seed of the first trial (default 1)")
	f.BoolVar(&showProgress, "progress", true, "show a progress spinner")

	bindFlags(g.v, f, map[string]string{
		"mu":     "montecarlo.mu",
		"sigma":  "montecarlo.sigma",
		"trials": "montecarlo.trials",
		"seed":   "montecarlo.seed",
	})
	return cmd
}
