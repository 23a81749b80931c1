package main

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type GenerateChartArgs struct {
	ChartInput ChartInput `json:"chart_input" jsonschema:"description=Chart description: type, datasets, labels, optional title and free-form options"`
	Download   bool       `json:"download,omitempty" jsonschema:"description=Download the rendered image and return the saved file path instead of the URL"`
	OutputPath string     `json:"output_path,omitempty" jsonschema:"description=Where to save the image when download=true; defaults to <type>_<title>_<timestamp>.png in the configured output directory"`
}

func registerGenerateChartTool(srv *server.MCPServer, qc *quickChart) {
	tool := mcp.NewTool(
		"generate-chart",
		mcp.WithDescription(`Generates a chart using the QuickChart rendering service.
		                     Takes a simplified chart description (type, datasets, labels, optional title and options),
		                     validates it against the rules for the chosen chart type and returns a URL to the rendered image.
		                     Supported types: bar, line, pie, doughnut, radar, polarArea, scatter, bubble, radialGauge, speedometer.
		                     Standard types take plain numbers as data; scatter takes [x,y] pairs, bubble [x,y,r] triples,
		                     and the gauge types exactly one value. Set download=true to save the image and get back a file path.`),
		mcp.WithInputSchema[GenerateChartArgs](),
	)

	srv.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args GenerateChartArgs
		if err := req.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("bind arguments: %v", err)), nil
		}

		config, err := BuildChartConfig(args.ChartInput)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		chartURL, err := qc.ChartURL(config)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		if !args.Download {
			return mcp.NewToolResultText(chartURL), nil
		}

		path, err := qc.Download(ctx, chartURL, args.OutputPath, string(args.ChartInput.Type), args.ChartInput.Title)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(path), nil
	})
}
