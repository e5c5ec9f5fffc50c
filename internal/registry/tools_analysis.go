package registry

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/vinodismyname/mcpcsv/internal/charts"
	"github.com/vinodismyname/mcpcsv/internal/dataset"
	"github.com/vinodismyname/mcpcsv/internal/runtime"
	"github.com/vinodismyname/mcpcsv/pkg/mcperr"
	"github.com/vinodismyname/mcpcsv/pkg/pagination"
	"github.com/vinodismyname/mcpcsv/pkg/validation"
)

// FieldStatisticsInput selects the numeric field to aggregate.
type FieldStatisticsInput struct {
	DatasetID string `json:"dataset_id" validate:"required" jsonschema_description:"Dataset handle ID"`
	Field     string `json:"field" validate:"required,fieldname" jsonschema_description:"Field name to aggregate"`
}

// FieldStatisticsOutput reports min/max/avg over the coercible values.
type FieldStatisticsOutput struct {
	DatasetID string  `json:"dataset_id"`
	Field     string  `json:"field"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	Avg       float64 `json:"avg"`
	Count     int     `json:"count" jsonschema_description:"Number of values that coerced to a number"`
}

// FilterRecordsInput selects records by exact categorical match, with cursor pagination.
type FilterRecordsInput struct {
	DatasetID string `json:"dataset_id" validate:"required_without=Cursor" jsonschema_description:"Dataset handle ID (or supply cursor)"`
	Field     string `json:"field" validate:"required_without=Cursor,omitempty,fieldname" jsonschema_description:"Category field name (or supply cursor)"`
	Value     string `json:"value,omitempty" jsonschema_description:"Exact value to match (case-sensitive; empty matches only literal empty fields)"`
	Cursor    string `json:"cursor,omitempty" validate:"omitempty,cursor" jsonschema_description:"Opaque cursor from a previous page"`
	PageSize  int    `json:"page_size,omitempty" validate:"omitempty,gte=1" jsonschema_description:"Rows per page (bounded by server limits)"`
}

// PageMeta captures paging/truncation metadata.
type PageMeta struct {
	Total      int    `json:"total"`
	Returned   int    `json:"returned"`
	Truncated  bool   `json:"truncated"`
	NextCursor string `json:"nextCursor,omitempty"`
}

// FilterRecordsOutput carries one page of matching records.
type FilterRecordsOutput struct {
	DatasetID string           `json:"dataset_id"`
	Field     string           `json:"field"`
	Value     string           `json:"value"`
	Records   []dataset.Record `json:"records"`
	Meta      PageMeta         `json:"meta"`
}

// DistinctValuesInput selects the field to enumerate.
type DistinctValuesInput struct {
	DatasetID string `json:"dataset_id" validate:"required" jsonschema_description:"Dataset handle ID"`
	Field     string `json:"field" validate:"required,fieldname" jsonschema_description:"Field whose distinct values to list"`
}

// DistinctValuesOutput lists the sorted distinct values of a field.
type DistinctValuesOutput struct {
	DatasetID string   `json:"dataset_id"`
	Field     string   `json:"field"`
	Values    []string `json:"values"`
	Count     int      `json:"count"`
}

// CategoryChartInput configures a per-category aggregation chart.
type CategoryChartInput struct {
	DatasetID     string `json:"dataset_id" validate:"required" jsonschema_description:"Dataset handle ID"`
	CategoryField string `json:"category_field" validate:"required,fieldname" jsonschema_description:"Grouping field"`
	ValueField    string `json:"value_field" validate:"required,fieldname" jsonschema_description:"Numeric field summed per group"`
	Kind          string `json:"kind,omitempty" validate:"omitempty,oneof=bar pie" jsonschema_description:"Chart kind: bar (default) or pie"`
	Title         string `json:"title,omitempty" jsonschema_description:"Chart title"`
}

// CategoryChartOutput wraps a Chart.js configuration document.
type CategoryChartOutput struct {
	DatasetID string         `json:"dataset_id"`
	Kind      string         `json:"kind"`
	Groups    int            `json:"groups"`
	Config    map[string]any `json:"config" jsonschema_description:"Chart.js configuration object"`
}

// RegisterAnalysisTools wires the aggregation, filtering, and chart tools.
func RegisterAnalysisTools(s *server.MCPServer, reg *Registry, limits runtime.Limits, mgr *dataset.Manager) {
	// field_statistics
	statsTool := mcp.NewTool(
		"field_statistics",
		mcp.WithDescription("Compute minimum, maximum, and arithmetic mean of a numeric field. Records where the field is absent or not numeric are skipped; when nothing coerces, all statistics are 0 with count=0."),
		mcp.WithInputSchema[FieldStatisticsInput](),
		mcp.WithOutputSchema[FieldStatisticsOutput](),
	)
	s.AddTool(statsTool, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in FieldStatisticsInput) (*mcp.CallToolResult, error) {
		if msg := validation.ValidateStruct(in); msg != "" {
			return mcp.NewToolResultError(msg), nil
		}
		var out FieldStatisticsOutput
		err := mgr.WithDataset(in.DatasetID, func(_ dataset.Header, ds dataset.Dataset) error {
			min, max, avg := dataset.Statistics(ds, in.Field)
			out = FieldStatisticsOutput{
				DatasetID: in.DatasetID,
				Field:     in.Field,
				Min:       min,
				Max:       max,
				Avg:       avg,
				Count:     len(dataset.NumericValues(ds, in.Field)),
			}
			return nil
		})
		if err != nil {
			return mcperr.New(mcperr.InvalidHandle, ""), nil
		}
		res := mcp.NewToolResultStructured(out, summaryf("field=%s count=%d min=%.2f max=%.2f avg=%.2f", out.Field, out.Count, out.Min, out.Max, out.Avg))
		return res, nil
	}))
	reg.Register(statsTool)

	// filter_records
	filterTool := mcp.NewTool(
		"filter_records",
		mcp.WithDescription("Return records whose field exactly equals the given value, preserving source order, with cursor pagination. Matching is case-sensitive string equality; records missing the field never match. An empty result page is valid."),
		mcp.WithInputSchema[FilterRecordsInput](),
		mcp.WithOutputSchema[FilterRecordsOutput](),
	)
	s.AddTool(filterTool, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in FilterRecordsInput) (*mcp.CallToolResult, error) {
		if msg := validation.ValidateStruct(in); msg != "" {
			return mcp.NewToolResultError(msg), nil
		}

		id, field, value := in.DatasetID, in.Field, in.Value
		offset := 0
		pageSize := in.PageSize
		if in.Cursor != "" {
			c, err := pagination.DecodeCursor(in.Cursor)
			if err != nil {
				return mcperr.New(mcperr.CursorInvalid, ""), nil
			}
			id, field, value, offset = c.Did, c.F, c.Val, c.Off
			if pageSize <= 0 {
				pageSize = c.Ps
			}
		}
		if pageSize <= 0 || pageSize > limits.MaxRowsPerOp {
			pageSize = limits.MaxRowsPerOp
		}

		var out FilterRecordsOutput
		err := mgr.WithDataset(id, func(_ dataset.Header, ds dataset.Dataset) error {
			matches := dataset.FilterByCategory(ds, field, value)
			total := len(matches)
			if offset > total {
				offset = total
			}
			page := matches[offset:]
			truncated := false
			if len(page) > pageSize {
				page = page[:pageSize]
				truncated = true
			}
			out = FilterRecordsOutput{
				DatasetID: id,
				Field:     field,
				Value:     value,
				Records:   page,
				Meta: PageMeta{
					Total:     total,
					Returned:  len(page),
					Truncated: truncated,
				},
			}
			if truncated {
				tok, cerr := pagination.EncodeCursor(pagination.Cursor{
					Did: id,
					F:   field,
					Val: value,
					Off: pagination.NextOffset(offset, len(page)),
					Ps:  pageSize,
				})
				if cerr != nil {
					return cerr
				}
				out.Meta.NextCursor = tok
			}
			return nil
		})
		if err != nil {
			if err == dataset.ErrHandleNotFound {
				return mcperr.New(mcperr.InvalidHandle, ""), nil
			}
			return mcperr.Wrapf(mcperr.AnalysisFailed, "%v", err), nil
		}
		res := mcp.NewToolResultStructured(out, summaryf("matches=%d returned=%d truncated=%v", out.Meta.Total, out.Meta.Returned, out.Meta.Truncated))
		return res, nil
	}))
	reg.Register(filterTool)

	// distinct_values
	distinctTool := mcp.NewTool(
		"distinct_values",
		mcp.WithDescription("Return the sorted set of distinct values for a field. Records missing the field contribute the empty string."),
		mcp.WithInputSchema[DistinctValuesInput](),
		mcp.WithOutputSchema[DistinctValuesOutput](),
	)
	s.AddTool(distinctTool, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in DistinctValuesInput) (*mcp.CallToolResult, error) {
		if msg := validation.ValidateStruct(in); msg != "" {
			return mcp.NewToolResultError(msg), nil
		}
		var out DistinctValuesOutput
		err := mgr.WithDataset(in.DatasetID, func(_ dataset.Header, ds dataset.Dataset) error {
			values := dataset.DistinctValues(ds, in.Field)
			out = DistinctValuesOutput{
				DatasetID: in.DatasetID,
				Field:     in.Field,
				Values:    values,
				Count:     len(values),
			}
			return nil
		})
		if err != nil {
			return mcperr.New(mcperr.InvalidHandle, ""), nil
		}
		res := mcp.NewToolResultStructured(out, summaryf("field=%s distinct=%d", out.Field, out.Count))
		return res, nil
	}))
	reg.Register(distinctTool)

	// category_chart
	chartTool := mcp.NewTool(
		"category_chart",
		mcp.WithDescription("Aggregate a numeric field per category and return a Chart.js configuration (bar or pie) ready for client-side rendering. Rows whose measure is not numeric are skipped."),
		mcp.WithInputSchema[CategoryChartInput](),
		mcp.WithOutputSchema[CategoryChartOutput](),
	)
	s.AddTool(chartTool, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in CategoryChartInput) (*mcp.CallToolResult, error) {
		if msg := validation.ValidateStruct(in); msg != "" {
			return mcp.NewToolResultError(msg), nil
		}
		kind := in.Kind
		if kind == "" {
			kind = "bar"
		}
		var out CategoryChartOutput
		err := mgr.WithDataset(in.DatasetID, func(_ dataset.Header, ds dataset.Dataset) error {
			points := charts.FromTotals(dataset.TotalsByCategory(ds, in.CategoryField, in.ValueField))
			var cfg map[string]any
			if kind == "pie" {
				cfg = charts.PieConfig(in.Title, in.ValueField, points)
			} else {
				cfg = charts.BarConfig(in.Title, in.ValueField, points)
			}
			out = CategoryChartOutput{
				DatasetID: in.DatasetID,
				Kind:      kind,
				Groups:    len(points),
				Config:    cfg,
			}
			return nil
		})
		if err != nil {
			return mcperr.New(mcperr.InvalidHandle, ""), nil
		}
		res := mcp.NewToolResultStructured(out, summaryf("kind=%s groups=%d", out.Kind, out.Groups))
		return res, nil
	}))
	reg.Register(chartTool)
}

// summaryf builds the concise text summary attached to structured results.
func summaryf(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}
