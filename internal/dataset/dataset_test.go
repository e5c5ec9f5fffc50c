package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadRoundTrip(t *testing.T) {
	path := writeFixture(t, "amount,category\n10,x\n20,y\n")

	ds, header, err := LoadWithHeader(path)
	require.NoError(t, err)
	require.Equal(t, Header{"amount", "category"}, header)
	require.Len(t, ds, 2)
	require.Equal(t, Record{"amount": "10", "category": "x"}, ds[0])
	require.Equal(t, Record{"amount": "20", "category": "y"}, ds[1])
}

func TestLoadTrimsTokensAndSkipsBlankLines(t *testing.T) {
	path := writeFixture(t, " amount , category \n 10 , x \n\n   \n20,y\n")

	ds, header, err := LoadWithHeader(path)
	require.NoError(t, err)
	require.Equal(t, Header{"amount", "category"}, header)
	require.Len(t, ds, 2)
	require.Equal(t, "10", ds[0]["amount"])
	require.Equal(t, "x", ds[0]["category"])
}

func TestLoadZipsToShorterSide(t *testing.T) {
	// Row 1 is short (missing trailing field), row 2 carries an excess value.
	path := writeFixture(t, "a,b,c\n1,2\n4,5,6,7\n")

	ds, err := Load(path)
	require.NoError(t, err)
	require.Len(t, ds, 2)
	require.Equal(t, Record{"a": "1", "b": "2"}, ds[0])
	require.Equal(t, Record{"a": "4", "b": "5", "c": "6"}, ds[1])
}

func TestLoadEmptyFile(t *testing.T) {
	path := writeFixture(t, "")

	ds, err := Load(path)
	require.NoError(t, err)
	require.Empty(t, ds)
}

func TestLoadHeaderOnly(t *testing.T) {
	path := writeFixture(t, "amount,category\n")

	ds, header, err := LoadWithHeader(path)
	require.NoError(t, err)
	require.Empty(t, ds)
	require.Equal(t, Header{"amount", "category"}, header)
}

func TestLoadMissingFile(t *testing.T) {
	ds, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	require.ErrorIs(t, err, ErrNotFound)
	require.NotNil(t, ds)
	require.Empty(t, ds)
}

func TestLoadNaiveCommaSplit(t *testing.T) {
	// A quoted value containing a comma is still split; this is the accepted
	// behavior, not a defect.
	path := writeFixture(t, "name,note\nwidget,\"a,b\"\n")

	ds, err := Load(path)
	require.NoError(t, err)
	require.Len(t, ds, 1)
	require.Equal(t, "widget", ds[0]["name"])
	require.Equal(t, `"a`, ds[0]["note"])
}

func TestLoadLinesLargerThanBufferedScannerDefault(t *testing.T) {
	// A single value well past 64 KiB must load intact; line length carries
	// no limit.
	big := strings.Repeat("x", 100*1024)
	path := writeFixture(t, "amount,category\n10,"+big+"\n20,books\n")

	ds, err := Load(path)
	require.NoError(t, err)
	require.Len(t, ds, 2)
	require.Equal(t, big, ds[0]["category"])
	require.Equal(t, "books", ds[1]["category"])
}

func TestRecordGetDefault(t *testing.T) {
	rec := Record{"category": ""}
	v, ok := rec.Get("category")
	require.True(t, ok)
	require.Equal(t, "", v)

	_, ok = rec.Get("amount")
	require.False(t, ok)
	require.Equal(t, "n/a", rec.GetDefault("amount", "n/a"))
}
