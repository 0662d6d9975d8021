package common

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Header maps a FITS keyword to its decoded value. Values are string, bool,
// one of the integer kinds, float32/float64, or nil for an undefined value.
type Header map[string]interface{}

// Lookup returns the value stored under key. A key that is present with an
// undefined (nil) value reports false, the same as a missing key.
func (h Header) Lookup(key string) (interface{}, bool) {
	v, ok := h[key]
	if !ok || v == nil {
		return nil, false
	}

	return v, true
}

// String returns the value under key without its trailing blanks, which
// FITS does not count as part of a string. Leading blanks are kept. ok is
// false when the key is missing or not a string.
func (h Header) String(key string) (s string, ok bool) {
	v, found := h.Lookup(key)
	if !found {
		return "", false
	}

	s, ok = v.(string)
	if !ok {
		return "", false
	}

	return strings.TrimRight(s, " "), true
}

// Keys returns the header keywords in sorted order.
func (h Header) Keys() []string {
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

func convertInt(n interface{}) (int64, bool) {
	switch n := n.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	}

	return 0, false
}

func convertUInt(n interface{}) (uint64, bool) {
	switch n := n.(type) {
	case uint:
		return uint64(n), true
	case uint8:
		return uint64(n), true
	case uint16:
		return uint64(n), true
	case uint32:
		return uint64(n), true
	case uint64:
		return n, true
	}

	return 0, false
}

// Format renders a header value as report text. Strings lose the trailing
// blanks FITS pads them with and bools render as True/False. Floats use the
// shortest form that parses back to the same value, always with a decimal
// point (300.0, 1500000.0), switching to an exponent below 1e-4 and from
// 1e16 on.
func Format(v interface{}) (string, error) {
	if v == nil {
		return "", nil
	}

	if i, ok := convertInt(v); ok {
		return strconv.FormatInt(i, 10), nil
	}

	if u, ok := convertUInt(v); ok {
		return strconv.FormatUint(u, 10), nil
	}

	switch val := v.(type) {
	case string:
		return strings.TrimRight(val, " "), nil
	case bool:
		if val {
			return "True", nil
		}
		return "False", nil
	case float32:
		return formatFloat(float64(val), 32), nil
	case float64:
		return formatFloat(val, 64), nil
	}

	return "", fmt.Errorf("unknown type %T", v)
}

func formatFloat(f float64, bitSize int) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'g', -1, bitSize)
	}

	if abs := math.Abs(f); f != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'g', -1, bitSize)
	}

	s := strconv.FormatFloat(f, 'f', -1, bitSize)
	if !strings.Contains(s, ".") {
		s += ".0"
	}

	return s
}
