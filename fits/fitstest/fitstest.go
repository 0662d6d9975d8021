// Package fitstest writes small header-only FITS files for tests.
package fitstest

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/astrogo/fitsio"
)

// Encode returns a FITS file whose primary HDU carries the given keywords
// and no data. Keywords are written in sorted order.
func Encode(t testing.TB, keywords map[string]interface{}) []byte {
	t.Helper()

	names := make([]string, 0, len(keywords))
	for k := range keywords {
		names = append(names, k)
	}
	sort.Strings(names)

	cards := make([]fitsio.Card, 0, len(names))
	for _, n := range names {
		cards = append(cards, fitsio.Card{Name: n, Value: keywords[n]})
	}

	var buf bytes.Buffer

	f, err := fitsio.Create(&buf)
	if err != nil {
		t.Fatal(err)
	}

	phdu, err := fitsio.NewPrimaryHDU(fitsio.NewHeader(cards, fitsio.IMAGE_HDU, 8, []int{}))
	if err != nil {
		t.Fatal(err)
	}

	if err := f.Write(phdu); err != nil {
		t.Fatal(err)
	}

	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	return buf.Bytes()
}

// WriteFile encodes keywords into a FITS file at path, creating parent
// directories as needed.
func WriteFile(t testing.TB, path string, keywords map[string]interface{}) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(path, Encode(t, keywords), 0o644); err != nil {
		t.Fatal(err)
	}
}

// Light returns the keywords of a typical light frame.
func Light(dateObs string) map[string]interface{} {
	return map[string]interface{}{
		"DATE-OBS": dateObs,
		"IMAGETYP": "LIGHT",
		"FILTER":   "Ha",
		"FOCTEMP":  12.25,
		"FOCPOS":   8123,
		"EXPOSURE": 300.5,
		"CCD-TEMP": -10.25,
		"XBINNING": 1,
		"GAIN":     100,
		"EGAIN":    0.25,
		"FOCALLEN": 530,
		"XPIXSZ":   3.75,
		"PIXSCALE": 1.46,
		"ANGLE":    182.5,
		"AOCSKYQU": "Clear",
	}
}
