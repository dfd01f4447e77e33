package layout

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robcaulk/columnar/endian"
)

func TestColumnFooter_RoundTrip(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	f := NewColumnFooter(1234)

	b := f.Bytes(engine)
	require.Len(t, b, ColumnFooterSize)

	got, err := ParseColumnFooter(b, engine)
	require.NoError(t, err)
	require.Equal(t, f, got)
}

func TestColumnFooter_ParseRejectsShortInput(t *testing.T) {
	_, err := ParseColumnFooter(make([]byte, 1), endian.GetLittleEndianEngine())
	require.Error(t, err)
}
