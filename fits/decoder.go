package fits

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/astrogo/fitsio"
	"github.com/rickbassham/fitsreport/common"
)

// ErrFormat is returned when the input cannot be decoded as a FITS file.
var ErrFormat = errors.New("fits: invalid format")

type Decoder struct {
	rdr io.Reader
}

func NewDecoder(rdr io.Reader) *Decoder {
	return &Decoder{rdr: rdr}
}

// ReadHeader decodes the header of the first HDU.
func (d *Decoder) ReadHeader() (h common.Header, err error) {
	// fitsio panics on some truncated inputs.
	defer func() {
		if r := recover(); r != nil {
			h, err = nil, fmt.Errorf("%w: %v", ErrFormat, r)
		}
	}()

	fit, err := fitsio.Open(d.rdr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	defer fit.Close()

	if len(fit.HDUs()) == 0 {
		return nil, fmt.Errorf("%w: no HDU", ErrFormat)
	}

	hdr := fit.HDU(0).Header()

	h = common.Header{}

	for _, key := range hdr.Keys() {
		h[key] = hdr.Get(key).Value
	}

	return h, nil
}

// ReadFile opens path, decodes its primary header and closes the file.
func ReadFile(path string) (common.Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	hdr, err := NewDecoder(f).ReadHeader()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return hdr, nil
}
