package registry

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/xuri/excelize/v2"

	"github.com/vinodismyname/mcpcsv/internal/dataset"
	"github.com/vinodismyname/mcpcsv/pkg/mcperr"
	"github.com/vinodismyname/mcpcsv/pkg/validation"
)

// WritePathValidator checks that an export target sits inside the allow-list.
type WritePathValidator interface {
	ValidateWritePath(path string) (string, error)
}

// WriteDatasetXLSXInput configures an xlsx export of an optionally filtered dataset.
type WriteDatasetXLSXInput struct {
	DatasetID     string `json:"dataset_id" validate:"required" jsonschema_description:"Dataset handle ID"`
	Path          string `json:"path" validate:"required" jsonschema_description:"Target .xlsx path inside an allowed directory"`
	CategoryField string `json:"category_field,omitempty" validate:"omitempty,fieldname" jsonschema_description:"Optional field to filter on before exporting"`
	CategoryValue string `json:"category_value,omitempty" jsonschema_description:"Exact value to match when category_field is set"`
}

// WriteDatasetXLSXOutput reports the written workbook.
type WriteDatasetXLSXOutput struct {
	DatasetID string `json:"dataset_id"`
	Path      string `json:"path"`
	Rows      int    `json:"rows" jsonschema_description:"Data rows written, excluding the header"`
}

// RegisterExportTools wires the xlsx export tool. The tool name carries the
// write_ prefix so the WriteToolFilter hides it unless writes are enabled.
func RegisterExportTools(s *server.MCPServer, reg *Registry, mgr *dataset.Manager, wv WritePathValidator) {
	tool := mcp.NewTool(
		"write_dataset_xlsx",
		mcp.WithDescription("Export a dataset (optionally filtered by an exact category match) as an .xlsx workbook. The target path must sit inside an allowed directory. Hidden unless MCPCSV_ENABLE_WRITES is set."),
		mcp.WithInputSchema[WriteDatasetXLSXInput](),
		mcp.WithOutputSchema[WriteDatasetXLSXOutput](),
	)
	s.AddTool(tool, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in WriteDatasetXLSXInput) (*mcp.CallToolResult, error) {
		if msg := validation.ValidateStruct(in); msg != "" {
			return mcp.NewToolResultError(msg), nil
		}
		if !strings.HasSuffix(strings.ToLower(in.Path), ".xlsx") {
			return mcperr.New(mcperr.Validation, "path must end in .xlsx"), nil
		}
		target := in.Path
		if wv != nil {
			canonical, err := wv.ValidateWritePath(in.Path)
			if err != nil {
				return mcperr.New(mcperr.PermissionDenied, ""), nil
			}
			target = canonical
		}

		var out WriteDatasetXLSXOutput
		err := mgr.WithDataset(in.DatasetID, func(h dataset.Header, ds dataset.Dataset) error {
			if in.CategoryField != "" {
				ds = dataset.FilterByCategory(ds, in.CategoryField, in.CategoryValue)
			}
			n, werr := writeXLSX(target, h, ds)
			if werr != nil {
				return werr
			}
			out = WriteDatasetXLSXOutput{DatasetID: in.DatasetID, Path: target, Rows: n}
			return nil
		})
		if err != nil {
			if err == dataset.ErrHandleNotFound {
				return mcperr.New(mcperr.InvalidHandle, ""), nil
			}
			return mcperr.Wrapf(mcperr.WriteFailed, "%v", err), nil
		}
		return mcp.NewToolResultStructured(out, summaryf("rows=%d path=%s", out.Rows, out.Path)), nil
	}))
	reg.Register(tool)
}

// writeXLSX materializes header + records into a single-sheet workbook.
func writeXLSX(path string, header dataset.Header, ds dataset.Dataset) (int, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Data"
	f.SetSheetName("Sheet1", sheet)

	headerRow := make([]any, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return 0, err
	}
	for i, rec := range ds {
		row := make([]any, len(header))
		for j, field := range header {
			row[j] = rec.GetDefault(field, "")
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return 0, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return 0, err
		}
	}
	if err := f.SaveAs(path); err != nil {
		return 0, err
	}
	return len(ds), nil
}
