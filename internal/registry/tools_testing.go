package registry

import (
	"context"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/vinodismyname/mcpcsv/internal/sniff"
	"github.com/vinodismyname/mcpcsv/pkg/fib"
	"github.com/vinodismyname/mcpcsv/pkg/validation"
)

// ValidateFormatInput names the content and format to sniff.
type ValidateFormatInput struct {
	Content    string `json:"content" jsonschema_description:"The content string to validate"`
	FormatType string `json:"format_type" validate:"required" jsonschema_description:"Format to validate against: json, markdown, python, csharp"`
}

// GetTestDataInput selects a canned fixture payload.
type GetTestDataInput struct {
	Key string `json:"key" validate:"required" jsonschema_description:"Fixture key: sample, config, or metadata"`
}

// FibonacciInput selects which Fibonacci number to compute.
type FibonacciInput struct {
	N int `json:"n" validate:"gte=0,lte=93" jsonschema_description:"Index of the Fibonacci number (0-93)"`
}

// FibonacciOutput carries the computed value.
type FibonacciOutput struct {
	N     int    `json:"n"`
	Value uint64 `json:"value"`
}

// testData mirrors the canned payloads served by the integration-test tool.
var testData = map[string]map[string]any{
	"sample": {
		"type":    "sample",
		"content": "This is sample test data",
		"id":      1,
		"active":  true,
	},
	"config": {
		"type": "config",
		"settings": map[string]any{
			"timeout": 30,
			"retries": 3,
			"verbose": true,
		},
		"version": "1.0.0",
	},
	"metadata": {
		"type":        "metadata",
		"description": "Test metadata for validation",
		"tags":        []string{"test", "mcp", "integration"},
		"timestamp":   "2024-01-01T00:00:00Z",
	},
}

// RegisterTestingTools wires the integration-test helper tools: canned data,
// format sniffing, and the Fibonacci generator.
func RegisterTestingTools(s *server.MCPServer, reg *Registry) {
	// validate_format
	vf := mcp.NewTool(
		"validate_format",
		mcp.WithDescription("Check whether content looks like the specified format (json, markdown, python, csharp). Returns valid, format, and details. Checks are heuristic, not a full parser."),
		mcp.WithInputSchema[ValidateFormatInput](),
		mcp.WithOutputSchema[sniff.Result](),
	)
	s.AddTool(vf, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in ValidateFormatInput) (*mcp.CallToolResult, error) {
		if msg := validation.ValidateStruct(in); msg != "" {
			return mcp.NewToolResultError(msg), nil
		}
		out := sniff.Validate(in.Content, in.FormatType)
		return mcp.NewToolResultStructured(out, summaryf("format=%s valid=%v", out.Format, out.Valid)), nil
	}))
	reg.Register(vf)

	// get_test_data
	gt := mcp.NewTool(
		"get_test_data",
		mcp.WithDescription("Return a canned test payload by key. Valid keys: sample, config, metadata."),
		mcp.WithInputSchema[GetTestDataInput](),
	)
	s.AddTool(gt, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in GetTestDataInput) (*mcp.CallToolResult, error) {
		if msg := validation.ValidateStruct(in); msg != "" {
			return mcp.NewToolResultError(msg), nil
		}
		payload, ok := testData[in.Key]
		if !ok {
			keys := make([]string, 0, len(testData))
			for k := range testData {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			return mcp.NewToolResultError(summaryf("VALIDATION: key %q not found. Available keys: %s", in.Key, strings.Join(keys, ", "))), nil
		}
		return mcp.NewToolResultStructured(payload, summaryf("key=%s", in.Key)), nil
	}))
	reg.Register(gt)

	// fibonacci
	ft := mcp.NewTool(
		"fibonacci",
		mcp.WithDescription("Compute the nth Fibonacci number using iteration. n=0 yields 0."),
		mcp.WithInputSchema[FibonacciInput](),
		mcp.WithOutputSchema[FibonacciOutput](),
	)
	s.AddTool(ft, mcp.NewTypedToolHandler(func(ctx context.Context, req mcp.CallToolRequest, in FibonacciInput) (*mcp.CallToolResult, error) {
		if msg := validation.ValidateStruct(in); msg != "" {
			return mcp.NewToolResultError(msg), nil
		}
		out := FibonacciOutput{N: in.N, Value: fib.N(in.N)}
		return mcp.NewToolResultStructured(out, summaryf("fib(%d)=%d", out.N, out.Value)), nil
	}))
	reg.Register(ft)
}
