// Package schema defines the ordered column list shared by the row
// extractor and the report writer.
package schema

import (
	"errors"
	"fmt"
)

// Kind selects how a column value is produced.
type Kind int

const (
	// Keyword copies the header value verbatim.
	Keyword Kind = iota
	// FileName is the base name of the file; it has no header key.
	FileName
	// Timestamp parses the header value as an observation time.
	Timestamp
)

func (k Kind) String() string {
	switch k {
	case Keyword:
		return "keyword"
	case FileName:
		return "file_name"
	case Timestamp:
		return "timestamp"
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

const (
	FileNameColumn = "file_name"
	DateObsKey     = "DATE-OBS"
)

// DefaultKeywords is the column list of a nightly report.
var DefaultKeywords = []string{
	FileNameColumn,
	DateObsKey,
	"IMAGETYP",
	"FILTER",
	"FOCTEMP",
	"FOCPOS",
	"EXPOSURE",
	"CCD-TEMP",
	"XBINNING",
	"GAIN",
	"EGAIN",
	"FOCALLEN",
	"XPIXSZ",
	"PIXSCALE",
	"ANGLE",
	"AOCSKYQU",
}

type Field struct {
	// Column is the name written to the report header row.
	Column string
	// Key is the header keyword read for the column; empty for FileName.
	Key  string
	Kind Kind
}

type Schema []Field

// New builds a schema from a column list. The column named file_name
// becomes the synthetic file name column and the column equal to
// timestampKey is parsed as a timestamp; every other column reads the
// keyword of the same name.
func New(columns []string, timestampKey string) (Schema, error) {
	if len(columns) == 0 {
		return nil, errors.New("schema: no columns")
	}

	seen := map[string]bool{}
	s := make(Schema, 0, len(columns))

	for _, c := range columns {
		if c == "" {
			return nil, errors.New("schema: empty column name")
		}

		if seen[c] {
			return nil, fmt.Errorf("schema: duplicate column %s", c)
		}
		seen[c] = true

		switch c {
		case FileNameColumn:
			s = append(s, Field{Column: c, Kind: FileName})
		case timestampKey:
			s = append(s, Field{Column: c, Key: c, Kind: Timestamp})
		default:
			s = append(s, Field{Column: c, Key: c, Kind: Keyword})
		}
	}

	return s, nil
}

// Default returns the schema built from DefaultKeywords.
func Default() Schema {
	s, err := New(DefaultKeywords, DateObsKey)
	if err != nil {
		panic(err)
	}

	return s
}

// Columns returns the header row.
func (s Schema) Columns() []string {
	cols := make([]string, len(s))
	for i, f := range s {
		cols[i] = f.Column
	}

	return cols
}
