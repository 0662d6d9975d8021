package fits_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rickbassham/fitsreport/common"
	"github.com/rickbassham/fitsreport/fits"
	"github.com/rickbassham/fitsreport/fits/fitstest"
)

func TestDecoder(t *testing.T) {
	raw := fitstest.Encode(t, fitstest.Light("2022-04-02T01:00:00"))

	hdr, err := fits.NewDecoder(bytes.NewReader(raw)).ReadHeader()
	require.NoError(t, err)

	imgType, ok := hdr.String("IMAGETYP")
	require.True(t, ok)
	assert.Equal(t, "LIGHT", imgType)

	dateObs, ok := hdr.String("DATE-OBS")
	require.True(t, ok)
	assert.Equal(t, "2022-04-02T01:00:00", dateObs)

	for key, want := range map[string]string{
		"FOCPOS":   "8123",
		"CCD-TEMP": "-10.25",
		"XPIXSZ":   "3.75",
		"AOCSKYQU": "Clear",
	} {
		v, ok := hdr.Lookup(key)
		require.True(t, ok, key)

		got, err := common.Format(v)
		require.NoError(t, err)
		assert.Equal(t, want, got, key)
	}
}

func TestDecoderInvalid(t *testing.T) {
	for name, input := range map[string]string{
		"empty":   "",
		"garbage": strings.Repeat("not a fits file ", 10),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := fits.NewDecoder(strings.NewReader(input)).ReadHeader()
			require.Error(t, err)
			assert.ErrorIs(t, err, fits.ErrFormat)
		})
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "light_001.fit")
	fitstest.WriteFile(t, path, fitstest.Light("2022-04-02T03:30:00"))

	hdr, err := fits.ReadFile(path)
	require.NoError(t, err)

	filter, ok := hdr.String("FILTER")
	assert.True(t, ok)
	assert.Equal(t, "Ha", filter)

	bad := filepath.Join(dir, "bad.fit")
	require.NoError(t, os.WriteFile(bad, []byte("SIMPLE"), 0o644))

	_, err = fits.ReadFile(bad)
	assert.ErrorIs(t, err, fits.ErrFormat)
	assert.Contains(t, err.Error(), "bad.fit")

	_, err = fits.ReadFile(filepath.Join(dir, "missing.fit"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
