// Package report writes the CSV summary of a night's frames.
package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rickbassham/fitsreport/extract"
	"github.com/rickbassham/fitsreport/schema"
)

var (
	// ErrNoFrames is returned when there is nothing to report.
	ErrNoFrames = errors.New("no light frames found")
	// ErrNoTimestamp is returned when no reported frame had a timestamp to
	// name the report after.
	ErrNoTimestamp = errors.New("no frame has an observation timestamp")
)

// DatePolicy picks which timestamp names the report.
type DatePolicy string

const (
	// Last uses the last accepted frame in processing order.
	Last     DatePolicy = "last"
	Earliest DatePolicy = "earliest"
	Latest   DatePolicy = "latest"
)

// ParseDatePolicy accepts last, earliest or latest.
func ParseDatePolicy(s string) (DatePolicy, error) {
	switch p := DatePolicy(s); p {
	case Last, Earliest, Latest:
		return p, nil
	}

	return "", fmt.Errorf("unknown date policy %q", s)
}

// Date returns the timestamp p selects from res.
func (p DatePolicy) Date(res extract.Result) (time.Time, error) {
	var t time.Time

	switch p {
	case Last, "":
		t = res.Last
	case Earliest:
		t = res.Earliest
	case Latest:
		t = res.Latest
	default:
		return time.Time{}, fmt.Errorf("unknown date policy %q", string(p))
	}

	if t.IsZero() {
		return time.Time{}, ErrNoTimestamp
	}

	return t, nil
}

// FileName returns fits_report_YYYY-MM-DD.csv for the date of t.
func FileName(t time.Time) string {
	return "fits_report_" + t.Format("2006-01-02") + ".csv"
}

// Write emits the schema's column names followed by rows.
func Write(w io.Writer, s schema.Schema, rows []extract.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(s.Columns()); err != nil {
		return err
	}

	for i, r := range rows {
		if len(r) != len(s) {
			return fmt.Errorf("row %d has %d cells, want %d", i, len(r), len(s))
		}

		if err := cw.Write(r); err != nil {
			return err
		}
	}

	cw.Flush()

	return cw.Error()
}

// Path returns where WriteFile would write the report for res.
func Path(root string, res extract.Result, p DatePolicy) (string, error) {
	if len(res.Rows) == 0 {
		return "", ErrNoFrames
	}

	t, err := p.Date(res)
	if err != nil {
		return "", err
	}

	return filepath.Join(root, FileName(t)), nil
}

// WriteFile writes the report for res into root, replacing any report of
// the same name, and returns its path.
func WriteFile(root string, s schema.Schema, res extract.Result, p DatePolicy) (string, error) {
	path, err := Path(root, res, p)
	if err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}

	if err := Write(f, s, res.Rows); err != nil {
		f.Close()
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return "", err
	}

	return path, nil
}

// Read parses a report produced by Write into its header row and data rows.
func Read(r io.Reader) (header []string, rows [][]string, err error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, nil, err
	}

	if len(records) == 0 {
		return nil, nil, errors.New("empty report")
	}

	return records[0], records[1:], nil
}
