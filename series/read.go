package series

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Read parses a whitespace-delimited text stream with time in column 0 and
// amplitude in column 1. Blank lines and lines starting with '#' are
// skipped; columns beyond the second are ignored.
func Read(r io.Reader) (*TimeSeries, error) {
	var times, values []float64

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) < 2 {
			return nil, fmt.Errorf("%w %d: want at least 2 columns, got %d", ErrMalformedLine, line, len(fields))
		}
		t, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("%w %d: time column: %v", ErrMalformedLine, line, err)
		}
		v, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%w %d: amplitude column: %v", ErrMalformedLine, line, err)
		}
		times = append(times, t)
		values = append(values, v)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("series: read: %w", err)
	}

	return New(times, values)
}

// ReadFile loads a two-column time series from path.
func ReadFile(path string) (*TimeSeries, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("series: open: %w", err)
	}
	defer f.Close()

	ts, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ts, nil
}
