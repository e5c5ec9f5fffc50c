package registry

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/vinodismyname/mcpcsv/internal/dataset"
	"github.com/vinodismyname/mcpcsv/internal/runtime"
	"github.com/vinodismyname/mcpcsv/internal/security"
	"github.com/vinodismyname/mcpcsv/pkg/mcperr"
	"github.com/vinodismyname/mcpcsv/pkg/validation"
)

// --- Input / Output Schemas (typed for discovery) ---

// OpenDatasetInput defines parameters for opening a dataset.
type OpenDatasetInput struct {
	Path string `json:"path" validate:"required,datafile_ext" jsonschema_description:"Absolute or allowed path to a comma-delimited text file (.csv, .txt)"`
}

// OpenDatasetOutput documents the response fields for open_dataset.
type OpenDatasetOutput struct {
	DatasetID       string   `json:"dataset_id" jsonschema_description:"Server-assigned dataset handle ID"`
	Path            string   `json:"path" jsonschema_description:"Canonical path that was loaded"`
	RecordCount     int      `json:"record_count" jsonschema_description:"Number of records loaded"`
	Headers         []string `json:"headers" jsonschema_description:"Field names from the header line, in order"`
	PreviewRowLimit int      `json:"previewRowLimit" jsonschema_description:"Default row limit for previews"`
}

// CloseDatasetInput defines parameters for closing a dataset handle.
type CloseDatasetInput struct {
	DatasetID string `json:"dataset_id" validate:"required" jsonschema_description:"Dataset handle ID to close"`
}

// CloseDatasetOutput acknowledges a closed handle.
type CloseDatasetOutput struct {
	Success bool `json:"success" jsonschema_description:"True when the handle was closed"`
}

// DescribeDatasetInput defines parameters for dataset discovery.
type DescribeDatasetInput struct {
	DatasetID string `json:"dataset_id" validate:"required" jsonschema_description:"Dataset handle ID"`
	Rows      int    `json:"rows,omitempty" validate:"omitempty,gte=1,lte=1000" jsonschema_description:"Max preview rows to return (bounded)"`
}

// DescribeDatasetOutput summarizes a dataset and includes a bounded preview.
type DescribeDatasetOutput struct {
	DatasetID   string           `json:"dataset_id"`
	Headers     []string         `json:"headers"`
	RecordCount int              `json:"record_count"`
	Preview     []dataset.Record `json:"preview"`
	Truncated   bool             `json:"truncated"`
}

// RegisterDatasetTools wires the dataset lifecycle tools against the manager.
func RegisterDatasetTools(s *server.MCPServer, reg *Registry, limits runtime.Limits, mgr *dataset.Manager) {
	// open_dataset
	openTool := mcp.NewTool(
		"open_dataset",
		mcp.WithDescription("Load a comma-delimited text file and return a dataset handle ID with record count and header fields. The first line names the fields; blank lines are skipped; values are trimmed. Paths are restricted to the configured allow-list directories."),
		mcp.WithInputSchema[OpenDatasetInput](),
		mcp.WithOutputSchema[OpenDatasetOutput](),
	)
	s.AddTool(openTool, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in OpenDatasetInput) (*mcp.CallToolResult, error) {
		if msg := validation.ValidateStruct(in); msg != "" {
			return mcp.NewToolResultError(msg), nil
		}
		id, err := mgr.Open(ctx, in.Path)
		if err != nil {
			return openErrResult(err), nil
		}
		h, ok := mgr.Get(id)
		if !ok {
			return mcperr.New(mcperr.InvalidHandle, ""), nil
		}
		out := OpenDatasetOutput{
			DatasetID:       id,
			Path:            h.Path,
			RecordCount:     len(h.Data),
			Headers:         h.Header,
			PreviewRowLimit: limits.PreviewRowLimit,
		}
		res := mcp.NewToolResultStructured(out, summaryf("dataset_id=%s records=%d fields=%d", id, out.RecordCount, len(out.Headers)))
		return res, nil
	}))
	reg.Register(openTool)

	// close_dataset
	closeTool := mcp.NewTool(
		"close_dataset",
		mcp.WithDescription("Close a previously opened dataset handle and release its capacity slot"),
		mcp.WithInputSchema[CloseDatasetInput](),
		mcp.WithOutputSchema[CloseDatasetOutput](),
	)
	s.AddTool(closeTool, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in CloseDatasetInput) (*mcp.CallToolResult, error) {
		if msg := validation.ValidateStruct(in); msg != "" {
			return mcp.NewToolResultError(msg), nil
		}
		if err := mgr.CloseHandle(in.DatasetID); err != nil {
			return mcperr.New(mcperr.InvalidHandle, ""), nil
		}
		return mcp.NewToolResultStructured(CloseDatasetOutput{Success: true}, "closed"), nil
	}))
	reg.Register(closeTool)

	// describe_dataset
	describeTool := mcp.NewTool(
		"describe_dataset",
		mcp.WithDescription("Return dataset structure: header fields, record count, and a bounded preview of the first rows (no full data dump)"),
		mcp.WithInputSchema[DescribeDatasetInput](),
		mcp.WithOutputSchema[DescribeDatasetOutput](),
	)
	s.AddTool(describeTool, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in DescribeDatasetInput) (*mcp.CallToolResult, error) {
		if msg := validation.ValidateStruct(in); msg != "" {
			return mcp.NewToolResultError(msg), nil
		}
		rows := in.Rows
		if rows <= 0 {
			rows = limits.PreviewRowLimit
		}
		var out DescribeDatasetOutput
		err := mgr.WithDataset(in.DatasetID, func(h dataset.Header, ds dataset.Dataset) error {
			preview := ds
			truncated := false
			if len(preview) > rows {
				preview = preview[:rows]
				truncated = true
			}
			out = DescribeDatasetOutput{
				DatasetID:   in.DatasetID,
				Headers:     h,
				RecordCount: len(ds),
				Preview:     preview,
				Truncated:   truncated,
			}
			return nil
		})
		if err != nil {
			return mcperr.New(mcperr.InvalidHandle, ""), nil
		}
		res := mcp.NewToolResultStructured(out, summaryf("records=%d preview=%d truncated=%v", out.RecordCount, len(out.Preview), out.Truncated))
		return res, nil
	}))
	reg.Register(describeTool)
}

// openErrResult maps loader and security failures onto canonical tool errors.
func openErrResult(err error) *mcp.CallToolResult {
	switch {
	case errors.Is(err, security.ErrNotAllowed):
		return mcperr.New(mcperr.PermissionDenied, "")
	case errors.Is(err, security.ErrUnsupportedExtension):
		return mcperr.New(mcperr.UnsupportedFormat, "")
	case errors.Is(err, security.ErrNotFound), errors.Is(err, dataset.ErrNotFound):
		return mcperr.New(mcperr.NotFound, "")
	case errors.Is(err, dataset.ErrReadFailure):
		return mcperr.Wrapf(mcperr.LoadFailed, "%v", err)
	default:
		return mcperr.Wrapf(mcperr.LoadFailed, "%v", err)
	}
}
