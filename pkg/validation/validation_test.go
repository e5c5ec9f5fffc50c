package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vinodismyname/mcpcsv/pkg/pagination"
)

type openInput struct {
	Path string `validate:"required,datafile_ext"`
}

type statsInput struct {
	DatasetID string `validate:"required"`
	Field     string `validate:"required,fieldname"`
}

type filterInput struct {
	Cursor string `validate:"omitempty,cursor"`
}

func TestDatafileExt(t *testing.T) {
	require.Empty(t, ValidateStruct(openInput{Path: "/data/sales.csv"}))
	require.Empty(t, ValidateStruct(openInput{Path: "/data/sales.TXT"}))

	msg := ValidateStruct(openInput{Path: "/data/book.xlsx"})
	require.Contains(t, msg, "VALIDATION")
	require.Contains(t, msg, ".csv")
}

func TestRequiredAndFieldname(t *testing.T) {
	msg := ValidateStruct(statsInput{Field: "amount"})
	require.True(t, strings.HasPrefix(msg, "VALIDATION"))

	msg = ValidateStruct(statsInput{DatasetID: "ds-1", Field: "   "})
	require.Contains(t, msg, "non-blank field name")

	require.Empty(t, ValidateStruct(statsInput{DatasetID: "ds-1", Field: "amount"}))
}

func TestCursorRule(t *testing.T) {
	require.Empty(t, ValidateStruct(filterInput{}))

	tok, err := pagination.EncodeCursor(pagination.Cursor{Did: "ds-1", F: "cat", Off: 0, Ps: 10})
	require.NoError(t, err)
	require.Empty(t, ValidateStruct(filterInput{Cursor: tok}))

	msg := ValidateStruct(filterInput{Cursor: "not a cursor"})
	require.Contains(t, msg, "CURSOR_INVALID")
}
