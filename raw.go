package main

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type RawChartArgs struct {
	Config     map[string]any `json:"config" jsonschema:"description=Complete Chart.js configuration object passed to the renderer as-is"`
	Download   bool           `json:"download,omitempty" jsonschema:"description=Download the rendered image and return the saved file path instead of the URL"`
	OutputPath string         `json:"output_path,omitempty" jsonschema:"description=Where to save the image when download=true; defaults to <type>_<timestamp>.png in the configured output directory"`
}

// The raw tool deliberately checks only that the config is a non-empty
// object. Malformed configurations are passed through unrepaired; the
// rendering service is the final arbiter.
func registerRawChartTool(srv *server.MCPServer, qc *quickChart) {
	tool := mcp.NewTool(
		"generate-chart-raw",
		mcp.WithDescription(`Generates a chart from a complete Chart.js configuration object compatible with QuickChart.
		                     See https://quickchart.io/documentation/ for the format. The config should have a 'type' field
		                     (one of: bar, line, pie, doughnut, radar, polarArea, scatter, bubble, radialGauge, speedometer)
		                     and a 'data' field with a 'datasets' list; no normalization or validation is applied beyond
		                     checking the object is non-empty. Use this when you already know the exact target schema.
		                     Returns the chart URL, or a saved file path when download=true.`),
		mcp.WithInputSchema[RawChartArgs](),
	)

	srv.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args RawChartArgs
		if err := req.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("bind arguments: %v", err)), nil
		}

		if len(args.Config) == 0 {
			return mcp.NewToolResultError("config cannot be empty"), nil
		}

		chartURL, err := qc.RawURL(args.Config)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		if !args.Download {
			return mcp.NewToolResultText(chartURL), nil
		}

		chartType, _ := args.Config["type"].(string)
		if chartType == "" {
			chartType = "chart"
		}
		path, err := qc.Download(ctx, chartURL, args.OutputPath, chartType, "")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(path), nil
	})
}
