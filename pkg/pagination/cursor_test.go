package pagination

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	c := Cursor{Did: "ds-1", F: "category", Val: "food", Off: 20, Ps: 10}
	tok, err := EncodeCursor(c)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	got, err := DecodeCursor(tok)
	require.NoError(t, err)
	require.Equal(t, "ds-1", got.Did)
	require.Equal(t, "category", got.F)
	require.Equal(t, "food", got.Val)
	require.Equal(t, 20, got.Off)
	require.Equal(t, 10, got.Ps)
	require.Equal(t, 1, got.V)
	require.NotZero(t, got.Iat)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	for _, tok := range []string{"", "   ", "!!!not-base64!!!", "bm90IGpzb24"} {
		_, err := DecodeCursor(tok)
		require.Error(t, err, "token %q", tok)
	}
}

func TestValidateRejectsMissingFields(t *testing.T) {
	_, err := EncodeCursor(Cursor{F: "x", Off: 0, Ps: 5})
	require.Error(t, err)

	_, err = EncodeCursor(Cursor{Did: "ds-1", F: "x", Off: -1, Ps: 5})
	require.Error(t, err)

	_, err = EncodeCursor(Cursor{Did: "ds-1", F: "x", Off: 0, Ps: 0})
	require.Error(t, err)
}

func TestNextOffset(t *testing.T) {
	require.Equal(t, 30, NextOffset(20, 10))
	require.Equal(t, 20, NextOffset(20, 0))
	require.Equal(t, 0, NextOffset(-5, 0))
}
