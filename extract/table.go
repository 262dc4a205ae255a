package extract

// Component is one extracted sinusoid A*sin(2*pi*f*t + phi). Noise and SNR
// are zero when the noise window is disabled.
type Component struct {
	Frequency float64
	Amplitude float64
	Phase     float64
	Noise     float64
	SNR       float64
}

// Table is the ordered list of extracted components. Rows appear in
// extraction order.
type Table struct {
	rows     []Component
	hasNoise bool
}

// NewTable returns a table holding a copy of rows.
func NewTable(rows []Component, hasNoise bool) Table {
	return Table{rows: append([]Component(nil), rows...), hasNoise: hasNoise}
}

func (t Table) Len() int { return len(t.rows) }

// Row returns the i-th component.
func (t Table) Row(i int) Component { return t.rows[i] }

// Rows returns a copy of all components.
func (t Table) Rows() []Component { return append([]Component(nil), t.rows...) }

// HasNoise reports whether the noise and SNR columns are populated.
func (t Table) HasNoise() bool { return t.hasNoise }

// Fields names the populated columns.
func (t Table) Fields() []string {
	if t.hasNoise {
		return []string{"freq", "amp", "phase", "noise", "snr"}
	}
	return []string{"freq", "amp", "phase"}
}

func (t Table) Frequencies() []float64 {
	return t.column(func(c Component) float64 { return c.Frequency })
}

func (t Table) Amplitudes() []float64 {
	return t.column(func(c Component) float64 { return c.Amplitude })
}

func (t Table) Phases() []float64 {
	return t.column(func(c Component) float64 { return c.Phase })
}

func (t Table) column(get func(Component) float64) []float64 {
	out := make([]float64, len(t.rows))
	for i, c := range t.rows {
		out[i] = get(c)
	}
	return out
}

func (t Table) clone() Table {
	return NewTable(t.rows, t.hasNoise)
}
