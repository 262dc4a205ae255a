package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/cwbudde/algo-prewhiten/extract"
	"github.com/cwbudde/algo-prewhiten/internal/config"
	"github.com/cwbudde/algo-prewhiten/internal/logging"
	"github.com/cwbudde/algo-prewhiten/internal/report"
	"github.com/cwbudde/algo-prewhiten/series"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	warningColor = color.New(color.FgYellow)
)

// globals holds the persistent flags shared by all commands.
type globals struct {
	v          *viper.Viper
	configFile string
	verbosity  int
	noColor    bool
	stdout     io.Writer
	stderr     io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	g := &globals{v: viper.New(), stdout: stdout, stderr: stderr}
	var initial string

	cmd := &cobra.Command{
		Use:   "pysca <file> <numin> <numax> <dn> <n>",
		Short: "Extract sinusoidal components by iterative prewhitening",
		Long: `pysca repeatedly locates the highest Lomb-Scargle peak of the residual
in [numin, numax], refits all components found so far against the input
series and subtracts them. One line is printed per extracted component.

dn is the half-width of the noise window around each peak (0 disables the
noise and SNR columns) and n the maximum number of components (0 for no
limit, which requires --amp-limit or --snr-limit).`,
		Args:          withUsage(positionalArgs(g.v)),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if g.noColor {
				color.NoColor = true
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, g, args[0], initial)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		c.PrintErr(c.UsageString())
		return err
	})

	pf := cmd.PersistentFlags()
	pf.StringVar(&g.configFile, "config", "", "YAML config file")
	pf.CountVarP(&g.verbosity, "verbose", "v", "increase log verbosity (-v info, -vv debug)")
	pf.BoolVar(&g.noColor, "no-color", false, "disable colored output")
	pf.Float64("ofac", 0, "periodogram oversampling factor (default 6)")
	pf.Float64("hifreq", 0, "highest periodogram frequency (default numax)")
	pf.String("method", "", "periodogram method: direct or fast (default direct)")
	pf.Int("workers", 0, "periodogram worker count (0 = GOMAXPROCS)")
	pf.StringP("output", "o", "", "write a report to this file")
	pf.String("format", "", "report format: text, yaml or json (default text)")

	f := cmd.Flags()
	f.Float64("amp-limit", 0, "stop once a component amplitude falls below this value")
	f.Float64("snr-limit", 0, "stop once a component SNR falls below this value")
	f.Float64("min-separation", 0, "skip peaks closer than this to an extracted frequency")
	f.Bool("refine-freq", false, "refine frequencies in the least-squares fit")
	f.StringVar(&initial, "initial", "", "text report whose components seed the run")

	bindFlags(g.v, pf, map[string]string{
		"ofac":    "analysis.ofac",
		"hifreq":  "analysis.hifreq",
		"method":  "analysis.method",
		"workers": "analysis.workers",
		"output":  "output.path",
		"format":  "output.format",
	})
	bindFlags(g.v, f, map[string]string{
		"amp-limit":      "analysis.amp_limit",
		"snr-limit":      "analysis.snr_limit",
		"min-separation": "analysis.min_separation",
		"refine-freq":    "analysis.refine_freq",
	})

	cmd.AddCommand(newMonteCarloCmd(g))
	return cmd
}

// withUsage prints the command usage to stderr when args fails. Usage is
// silenced for errors raised while running.
func withUsage(args cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, a []string) error {
		if err := args(cmd, a); err != nil {
			cmd.PrintErr(cmd.UsageString())
			return err
		}
		return nil
	}
}

// positionalArgs checks and stores <file> <numin> <numax> <dn> <n>.
func positionalArgs(v *viper.Viper) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(5)(cmd, args); err != nil {
			return err
		}
		numin, numax, err := parseBand(args[1], args[2])
		if err != nil {
			return err
		}
		dn, err := strconv.ParseFloat(args[3], 64)
		if err != nil {
			return fmt.Errorf("invalid dn %q: %w", args[3], err)
		}
		n, err := strconv.Atoi(args[4])
		if err != nil {
			return fmt.Errorf("invalid n %q: %w", args[4], err)
		}
		v.Set("analysis.numin", numin)
		v.Set("analysis.numax", numax)
		v.Set("analysis.snr_width", dn)
		v.Set("analysis.max_components", n)
		return nil
	}
}

func parseBand(lo, hi string) (numin, numax float64, err error) {
	if numin, err = strconv.ParseFloat(lo, 64); err != nil {
		return 0, 0, fmt.Errorf("invalid numin %q: %w", lo, err)
	}
	if numax, err = strconv.ParseFloat(hi, 64); err != nil {
		return 0, 0, fmt.Errorf("invalid numax %q: %w", hi, err)
	}
	return numin, numax, nil
}

// bindFlags binds each named flag to its viper key.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet, keys map[string]string) {
	for name, key := range keys {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			panic(fmt.Sprintf("bind flag %s: %v", name, err))
		}
	}
}

// setup loads the configuration, the logger and the input series.
func (g *globals) setup(file string) (*config.Config, *zap.Logger, *series.TimeSeries, error) {
	cfg, err := config.Load(g.v, g.configFile)
	if err != nil {
		return nil, nil, nil, err
	}
	logger := logging.New(g.stderr, g.verbosity)
	ts, err := series.ReadFile(file)
	if err != nil {
		return nil, nil, nil, err
	}
	logger.Info("series loaded", zap.String("file", file), zap.Int("samples", ts.Len()), zap.Float64("span", ts.Span()))
	return cfg, logger, ts, nil
}

func runExtract(cmd *cobra.Command, g *globals, file, initial string) error {
	cfg, logger, ts, err := g.setup(file)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ecfg, err := cfg.ExtractConfig()
	if err != nil {
		return err
	}
	opts := []extract.Option{
		extract.WithLogger(logger),
		extract.WithObserver(func(i int, c extract.Component) {
			fmt.Fprintln(g.stdout, report.FormatLine(i, c, ecfg.SNRWidth > 0))
		}),
	}
	if initial != "" {
		rows, err := report.ReadTableFile(initial)
		if err != nil {
			return err
		}
		opts = append(opts, extract.WithInitialComponents(rows...))
	}

	ex, err := extract.New(ts, ecfg, opts...)
	if err != nil {
		return err
	}
	n, runErr := ex.Run(cmd.Context())

	if cfg.Output.Path != "" {
		doc := report.New(file, ts, cfg.Analysis)
		doc.AddTable(ex.Table())
		doc.SetResidual(ts.TimesView(), ex.Residual(), ex.LastSpectrum())
		if err := writeReport(cfg.Output.Path, cfg.Output.Format, doc); err != nil {
			return err
		}
		logger.Info("report written", zap.String("path", cfg.Output.Path), zap.String("format", cfg.Output.Format))
	}
	if runErr != nil {
		if ex.Table().Len() > 0 {
			warningColor.Fprintf(g.stderr, "Stopped after %d components\n", ex.Table().Len())
		}
		return runErr
	}
	successColor.Fprintf(g.stderr, "Extracted %d components\n", n)
	return nil
}

func writeReport(path, format string, doc *report.Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	if err := report.Write(f, format, doc); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
