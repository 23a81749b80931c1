package main

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/server"
)

func New(cfg *appConfig, log *slog.Logger) *server.MCPServer {
	srv := server.NewMCPServer(
		"quickchart-server",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	qc := newQuickChart(cfg, log)
	registerGenerateChartTool(srv, qc)
	registerRawChartTool(srv, qc)

	return srv
}
