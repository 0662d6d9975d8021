// Package extract turns FITS headers into report rows.
package extract

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/rickbassham/fitsreport/common"
	"github.com/rickbassham/fitsreport/schema"
)

const (
	DefaultImageTypeKey = "IMAGETYP"
	DefaultImageType    = "LIGHT"
)

// Row holds one report cell per schema field, in schema order.
type Row []string

// Skip records a file that could not be read or converted.
type Skip struct {
	Path string
	Err  error
}

// ReadFunc returns the primary header of the file at path.
type ReadFunc func(path string) (common.Header, error)

// Result is the outcome of a Run. Last is the timestamp of the last
// accepted row that had one, in processing order; Earliest and Latest are
// the extremes. All three are zero when no accepted row had a timestamp.
type Result struct {
	Rows     []Row
	Last     time.Time
	Earliest time.Time
	Latest   time.Time
	Scanned  int
	Skipped  []Skip
}

type Extractor struct {
	schema       schema.Schema
	imageTypeKey string
	imageType    string
	strict       bool
	log          *zap.Logger
}

type Option func(*Extractor)

// WithImageType sets the keyword and the exact value a frame must carry to
// be reported.
func WithImageType(key, value string) Option {
	return func(e *Extractor) {
		e.imageTypeKey = key
		e.imageType = value
	}
}

// WithStrict makes Run stop at the first file that fails instead of
// skipping it.
func WithStrict(strict bool) Option {
	return func(e *Extractor) {
		e.strict = strict
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(e *Extractor) {
		e.log = l
	}
}

func New(s schema.Schema, opts ...Option) *Extractor {
	e := &Extractor{
		schema:       s,
		imageTypeKey: DefaultImageTypeKey,
		imageType:    DefaultImageType,
		log:          zap.NewNop(),
	}

	for _, o := range opts {
		o(e)
	}

	return e
}

// Accepts reports whether hdr carries the wanted image type. The comparison
// is exact and case-sensitive; only FITS trailing blanks are ignored.
func (e *Extractor) Accepts(hdr common.Header) bool {
	t, ok := hdr.String(e.imageTypeKey)
	return ok && t == e.imageType
}

// Row converts hdr into a report row for the file named name. ok is false
// when the frame is not of the wanted image type. Missing keywords produce
// empty cells. ts is the parsed value of the last timestamp field, or zero
// if the header did not have one.
func (e *Extractor) Row(name string, hdr common.Header) (row Row, ts time.Time, ok bool, err error) {
	if !e.Accepts(hdr) {
		return nil, time.Time{}, false, nil
	}

	row = make(Row, len(e.schema))

	for i, f := range e.schema {
		switch f.Kind {
		case schema.FileName:
			row[i] = name

		case schema.Timestamp:
			v, found := hdr.Lookup(f.Key)
			if !found {
				continue
			}

			s, isString := v.(string)
			if !isString {
				return nil, time.Time{}, false, fmt.Errorf("%s is %T, not a string", f.Key, v)
			}

			parsed, err := ParseTimestamp(s)
			if err != nil {
				return nil, time.Time{}, false, fmt.Errorf("%s: %w", f.Key, err)
			}

			ts = parsed
			row[i] = FormatTimestamp(parsed)

		default:
			v, found := hdr.Lookup(f.Key)
			if !found {
				continue
			}

			row[i], err = common.Format(v)
			if err != nil {
				return nil, time.Time{}, false, fmt.Errorf("fits header %s: %w", f.Key, err)
			}
		}
	}

	return row, ts, true, nil
}

// Run reads every path in order, one file at a time, and collects the rows
// of accepted frames. A file that fails to read or convert is logged and
// recorded in Result.Skipped, or returned as an error in strict mode.
func (e *Extractor) Run(ctx context.Context, paths []string, read ReadFunc) (Result, error) {
	var res Result

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		res.Scanned++

		e.log.Debug("processing file", zap.String("file", path))

		row, ts, ok, err := e.process(path, read)
		if err != nil {
			if e.strict {
				return res, err
			}

			e.log.Warn("skipping file", zap.String("file", path), zap.Error(err))
			res.Skipped = append(res.Skipped, Skip{Path: path, Err: err})

			continue
		}

		if !ok {
			continue
		}

		res.Rows = append(res.Rows, row)

		if ts.IsZero() {
			continue
		}

		res.Last = ts

		if res.Earliest.IsZero() || ts.Before(res.Earliest) {
			res.Earliest = ts
		}

		if res.Latest.IsZero() || ts.After(res.Latest) {
			res.Latest = ts
		}
	}

	return res, nil
}

func (e *Extractor) process(path string, read ReadFunc) (Row, time.Time, bool, error) {
	hdr, err := read(path)
	if err != nil {
		return nil, time.Time{}, false, err
	}

	if ce := e.log.Check(zap.DebugLevel, "header"); ce != nil {
		fields := make([]zap.Field, 0, len(hdr)+1)
		fields = append(fields, zap.String("file", path))

		for _, k := range hdr.Keys() {
			fields = append(fields, zap.Any(k, hdr[k]))
		}

		ce.Write(fields...)
	}

	row, ts, ok, err := e.Row(filepath.Base(path), hdr)
	if err != nil {
		return nil, time.Time{}, false, fmt.Errorf("%s: %w", path, err)
	}

	if !ok {
		t, _ := hdr.String(e.imageTypeKey)
		e.log.Debug("skipping frame", zap.String("file", path), zap.String(e.imageTypeKey, t))
	}

	return row, ts, ok, nil
}
