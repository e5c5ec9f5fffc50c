package registry

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/vinodismyname/mcpcsv/internal/dataset"
)

func TestRegistryRegisterAndSortedListing(t *testing.T) {
	reg := New()
	reg.Register(mcp.NewTool("filter_records"))
	reg.Register(mcp.NewTool("open_dataset"))
	reg.Register(mcp.NewTool("close_dataset"))

	got, err := reg.Tools(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, "close_dataset", got[0].Name)
	require.Equal(t, "filter_records", got[1].Name)
	require.Equal(t, "open_dataset", got[2].Name)

	_, ok := reg.Get("open_dataset")
	require.True(t, ok)
	_, ok = reg.Get("unknown")
	require.False(t, ok)
}

func TestWriteToolFilterHidesWriteTools(t *testing.T) {
	tools := []mcp.Tool{
		mcp.NewTool("open_dataset"),
		mcp.NewTool("write_dataset_xlsx"),
		mcp.NewTool("field_statistics"),
	}

	f := &WriteToolFilter{allowWrites: false}
	filtered := f.FilterTools(context.Background(), tools)
	require.Len(t, filtered, 2)
	for _, tool := range filtered {
		require.NotEqual(t, "write_dataset_xlsx", tool.Name)
	}

	f = &WriteToolFilter{allowWrites: true}
	require.Len(t, f.FilterTools(context.Background(), tools), 3)
}

func TestWriteXLSXRoundTrip(t *testing.T) {
	header := dataset.Header{"amount", "category"}
	ds := dataset.Dataset{
		{"amount": "10", "category": "x"},
		{"amount": "20"}, // missing field exports as empty cell
	}

	path := filepath.Join(t.TempDir(), "export.xlsx")
	n, err := writeXLSX(path, header, ds)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Data")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, []string{"amount", "category"}, rows[0])
	require.Equal(t, []string{"10", "x"}, rows[1])
	require.Equal(t, "20", rows[2][0])
}
