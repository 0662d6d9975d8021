package extract_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rickbassham/fitsreport/extract"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{in: "2022-04-02T01:00:00", want: time.Date(2022, 4, 2, 1, 0, 0, 0, time.UTC)},
		{in: "2022-04-02T03:30:00.125", want: time.Date(2022, 4, 2, 3, 30, 0, 125000000, time.UTC)},
		{in: "2022-04-02T03:30:00Z", want: time.Date(2022, 4, 2, 3, 30, 0, 0, time.UTC)},
		{in: "2022-04-02T03:30:00.5Z  ", want: time.Date(2022, 4, 2, 3, 30, 0, 500000000, time.UTC)},
		{in: "2022-04-02", want: time.Date(2022, 4, 2, 0, 0, 0, 0, time.UTC)},
		{in: "2022-04-02 03:30:00", want: time.Date(2022, 4, 2, 3, 30, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := extract.ParseTimestamp(tt.in)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}

	_, err := extract.ParseTimestamp("")
	assert.Error(t, err)
}

func TestFormatTimestamp(t *testing.T) {
	assert.Equal(t, "2022-04-02 01:00:00",
		extract.FormatTimestamp(time.Date(2022, 4, 2, 1, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2022-04-02 03:30:00.125000",
		extract.FormatTimestamp(time.Date(2022, 4, 2, 3, 30, 0, 125000000, time.UTC)))
}
