package schema_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rickbassham/fitsreport/schema"
)

func TestDefault(t *testing.T) {
	s := schema.Default()
	require.Len(t, s, 16)

	assert.Equal(t,
		"file_name,DATE-OBS,IMAGETYP,FILTER,FOCTEMP,FOCPOS,EXPOSURE,CCD-TEMP,XBINNING,GAIN,EGAIN,FOCALLEN,XPIXSZ,PIXSCALE,ANGLE,AOCSKYQU",
		strings.Join(s.Columns(), ","))

	assert.Equal(t, schema.FileName, s[0].Kind)
	assert.Empty(t, s[0].Key)
	assert.Equal(t, schema.Timestamp, s[1].Kind)
	assert.Equal(t, "DATE-OBS", s[1].Key)

	for _, f := range s[2:] {
		assert.Equal(t, schema.Keyword, f.Kind, f.Column)
		assert.Equal(t, f.Column, f.Key)
	}
}

func TestNew(t *testing.T) {
	s, err := schema.New([]string{"OBJECT", "DATE-LOC", "file_name"}, "DATE-LOC")
	require.NoError(t, err)

	assert.Equal(t, []schema.Field{
		{Column: "OBJECT", Key: "OBJECT", Kind: schema.Keyword},
		{Column: "DATE-LOC", Key: "DATE-LOC", Kind: schema.Timestamp},
		{Column: "file_name", Kind: schema.FileName},
	}, []schema.Field(s))
}

func TestNewErrors(t *testing.T) {
	_, err := schema.New(nil, schema.DateObsKey)
	assert.Error(t, err)

	_, err = schema.New([]string{"FILTER", ""}, schema.DateObsKey)
	assert.Error(t, err)

	_, err = schema.New([]string{"FILTER", "FILTER"}, schema.DateObsKey)
	assert.Error(t, err)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "timestamp", schema.Timestamp.String())
	assert.Equal(t, "Kind(9)", schema.Kind(9).String())
}
