package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-prewhiten/extract"
)

// FormatLine renders one extracted component as a progress line.
func FormatLine(i int, c extract.Component, hasNoise bool) string {
	line := fmt.Sprintf("%d) Freq: %16.16f, Amp: %16.16f, Phase: %16.16f", i, c.Frequency, c.Amplitude, c.Phase)
	if hasNoise {
		line += fmt.Sprintf(", snr: %16.16f, noise: %16.16f", c.SNR, c.Noise)
	}
	return line
}

// WriteLines writes FormatLine for every row of tbl.
func WriteLines(w io.Writer, tbl extract.Table) error {
	for i, c := range tbl.Rows() {
		if _, err := fmt.Fprintln(w, FormatLine(i, c, tbl.HasNoise())); err != nil {
			return err
		}
	}
	return nil
}

// writeText writes a commented header followed by an aligned column table.
func writeText(w io.Writer, d *Document) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# run %s %s\n", d.RunID, d.CreatedAt.Format("2006-01-02T15:04:05Z"))
	fmt.Fprintf(&b, "# input %s: %d samples, span %s, nyquist %s\n",
		d.Input, d.Series.Samples, num(d.Series.End-d.Series.Start), num(d.Series.Nyquist))
	a := d.Analysis
	fmt.Fprintf(&b, "# band [%s, %s] ofac %s method %s\n", num(a.Numin), num(a.Numax), num(a.Oversampling), a.Method)
	if r := d.Residual; r != nil {
		fmt.Fprintf(&b, "# residual rms %s, spectrum peak %s at %s, flatness %s\n",
			num(r.RMS), num(r.PeakAmp), num(r.PeakFreq), num(r.Flatness))
	}
	if mc := d.MonteCarlo; mc != nil {
		fmt.Fprintf(&b, "# montecarlo %d trials, noise N(%s, %s^2), seed %d\n",
			mc.Trials, num(mc.Mu), num(mc.Sigma), mc.Seed)
		fmt.Fprintf(&b, "median %s\nmean %s\nstddev %s\n", num(mc.Median), num(mc.Mean), num(mc.StdDev))
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}
	if len(d.Components) == 0 {
		return nil
	}

	withNoise := d.HasNoise
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if withNoise {
		fmt.Fprintln(tw, "# idx\tfreq\tamp\tphase\tnoise\tsnr")
	} else {
		fmt.Fprintln(tw, "# idx\tfreq\tamp\tphase")
	}
	for _, r := range d.Components {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s", r.Index, num(r.Frequency), num(r.Amplitude), num(r.Phase))
		if withNoise {
			fmt.Fprintf(tw, "\t%s\t%s", optNum(r.Noise), optNum(r.SNR))
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'g', 16, 64)
}

func optNum(v *float64) string {
	if v == nil {
		return "nan"
	}
	return num(*v)
}
