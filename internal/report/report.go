// Package report renders extraction and Monte Carlo results as text, YAML
// or JSON documents.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/cwbudde/algo-prewhiten/dsp/spectrum"
	"github.com/cwbudde/algo-prewhiten/extract"
	"github.com/cwbudde/algo-prewhiten/internal/config"
	"github.com/cwbudde/algo-prewhiten/measure/montecarlo"
	"github.com/cwbudde/algo-prewhiten/series"
	freqstats "github.com/cwbudde/algo-prewhiten/stats/frequency"
	timestats "github.com/cwbudde/algo-prewhiten/stats/time"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Document is one persisted run.
type Document struct {
	RunID     string          `json:"run_id" yaml:"run_id"`
	CreatedAt time.Time       `json:"created_at" yaml:"created_at"`
	Input     string          `json:"input" yaml:"input"`
	Analysis  config.Analysis `json:"analysis" yaml:"analysis"`
	Series    SeriesSummary   `json:"series" yaml:"series"`

	HasNoise   bool             `json:"has_noise" yaml:"has_noise"`
	Components []Row            `json:"components,omitempty" yaml:"components,omitempty"`
	Residual   *ResidualSummary `json:"residual,omitempty" yaml:"residual,omitempty"`
	MonteCarlo *MonteCarloRun   `json:"montecarlo,omitempty" yaml:"montecarlo,omitempty"`
}

// SeriesSummary describes the input series.
type SeriesSummary struct {
	Samples        int     `json:"samples" yaml:"samples"`
	Start          float64 `json:"start" yaml:"start"`
	End            float64 `json:"end" yaml:"end"`
	MedianInterval float64 `json:"median_interval" yaml:"median_interval"`
	Nyquist        float64 `json:"nyquist" yaml:"nyquist"`
	Resolution     float64 `json:"resolution" yaml:"resolution"`
	Mean           float64 `json:"mean" yaml:"mean"`
	StdDev         float64 `json:"stddev" yaml:"stddev"`
}

// Row is one extracted component. Noise and SNR are nil when the noise
// window is disabled or the value is not finite.
type Row struct {
	Index     int      `json:"index" yaml:"index"`
	Frequency float64  `json:"freq" yaml:"freq"`
	Amplitude float64  `json:"amp" yaml:"amp"`
	Phase     float64  `json:"phase" yaml:"phase"`
	Noise     *float64 `json:"noise,omitempty" yaml:"noise,omitempty"`
	SNR       *float64 `json:"snr,omitempty" yaml:"snr,omitempty"`
}

// ResidualSummary describes what is left after prewhitening.
type ResidualSummary struct {
	RMS          float64 `json:"rms" yaml:"rms"`
	StdDev       float64 `json:"stddev" yaml:"stddev"`
	PeakFreq     float64 `json:"peak_freq" yaml:"peak_freq"`
	PeakAmp      float64 `json:"peak_amp" yaml:"peak_amp"`
	Flatness     float64 `json:"flatness" yaml:"flatness"`
	SpectrumBins int     `json:"spectrum_bins" yaml:"spectrum_bins"`
}

// MonteCarloRun summarizes a Monte Carlo uncertainty estimate.
type MonteCarloRun struct {
	Mu     float64 `json:"mu" yaml:"mu"`
	Sigma  float64 `json:"sigma" yaml:"sigma"`
	Trials int     `json:"trials" yaml:"trials"`
	Seed   int64   `json:"seed" yaml:"seed"`
	Median float64 `json:"median" yaml:"median"`
	Mean   float64 `json:"mean" yaml:"mean"`
	StdDev float64 `json:"stddev" yaml:"stddev"`
}

// New starts a document for the series read from input.
func New(input string, ts *series.TimeSeries, analysis config.Analysis) *Document {
	s := timestats.Calculate(ts.TimesView(), ts.ValuesView())
	return &Document{
		RunID:     uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Input:     input,
		Analysis:  analysis,
		Series: SeriesSummary{
			Samples:        s.Samples,
			Start:          s.Start,
			End:            s.End,
			MedianInterval: s.MedianInterval,
			Nyquist:        s.Nyquist,
			Resolution:     s.Resolution,
			Mean:           s.Mean,
			StdDev:         s.StdDev,
		},
	}
}

// AddTable appends the rows of tbl.
func (d *Document) AddTable(tbl extract.Table) {
	d.HasNoise = tbl.HasNoise()
	for i, c := range tbl.Rows() {
		row := Row{Index: i, Frequency: c.Frequency, Amplitude: c.Amplitude, Phase: c.Phase}
		if tbl.HasNoise() {
			row.Noise = finite(c.Noise)
			row.SNR = finite(c.SNR)
		}
		d.Components = append(d.Components, row)
	}
}

// SetResidual summarizes the final residual and its spectrum, which may be
// nil.
func (d *Document) SetResidual(times, residual []float64, spec *spectrum.Spectrum) {
	ts := timestats.Calculate(times, residual)
	r := &ResidualSummary{RMS: ts.RMS, StdDev: ts.StdDev}
	if spec != nil {
		fs := freqstats.Calculate(spec.Freqs, spec.Power)
		r.PeakFreq = fs.PeakFreq
		r.PeakAmp = math.Sqrt(fs.PeakPower)
		r.Flatness = fs.Flatness
		r.SpectrumBins = fs.Bins
	}
	d.Residual = r
}

// SetMonteCarlo records a Monte Carlo result.
func (d *Document) SetMonteCarlo(cfg montecarlo.Config, res *montecarlo.Result) {
	d.MonteCarlo = &MonteCarloRun{
		Mu:     cfg.Mu,
		Sigma:  cfg.Sigma,
		Trials: len(res.Frequencies),
		Seed:   cfg.Seed,
		Median: res.Median,
		Mean:   res.Mean,
		StdDev: res.StdDev,
	}
}

// Write renders d in the given format.
func Write(w io.Writer, format string, d *Document) error {
	switch format {
	case config.FormatText, "":
		return writeText(w, d)
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("failed to encode yaml report: %w", err)
		}
		return enc.Close()
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("failed to encode json report: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
