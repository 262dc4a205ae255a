package report

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-prewhiten/extract"
)

// ErrMalformedTable is returned when a text table row cannot be parsed.
var ErrMalformedTable = errors.New("report: malformed table row")

// ReadTable parses the component table of a text report, as written by
// Write with FormatText. Comment lines are skipped. Rows hold the index
// followed by frequency, amplitude and phase, optionally noise and SNR;
// "nan" marks a missing value.
func ReadTable(r io.Reader) ([]extract.Component, error) {
	var rows []extract.Component
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != 4 && len(fields) != 6 {
			return nil, fmt.Errorf("%w %d: want 4 or 6 columns, got %d", ErrMalformedTable, line, len(fields))
		}
		vals := make([]float64, len(fields)-1)
		for i, f := range fields[1:] {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("%w %d: %v", ErrMalformedTable, line, err)
			}
			vals[i] = v
		}
		if math.IsNaN(vals[0]) || math.IsNaN(vals[1]) || math.IsNaN(vals[2]) {
			return nil, fmt.Errorf("%w %d: missing parameter", ErrMalformedTable, line)
		}
		c := extract.Component{Frequency: vals[0], Amplitude: vals[1], Phase: vals[2]}
		if len(vals) == 5 {
			c.Noise, c.SNR = vals[3], vals[4]
		}
		rows = append(rows, c)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("report: read: %w", err)
	}
	return rows, nil
}

// ReadTableFile loads the component table of the text report at path.
func ReadTableFile(path string) ([]extract.Component, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("report: open: %w", err)
	}
	defer f.Close()

	rows, err := ReadTable(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}
