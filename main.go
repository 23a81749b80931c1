package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/viper"
)

const defaultBaseURL = "https://quickchart.io/chart"

type appConfig struct {
	BaseURL     string
	Transport   string
	SSEAddress  string
	OutputDir   string
	HTTPTimeout time.Duration
}

func loadConfig() *appConfig {
	v := viper.New()
	v.SetDefault("quickchart_base_url", defaultBaseURL)
	v.SetDefault("transport", "stdio")
	v.SetDefault("sse_address", ":8000")
	v.SetDefault("quickchart_output_dir", ".")
	v.SetDefault("http_timeout", "45s")
	v.AutomaticEnv()

	return &appConfig{
		BaseURL:     v.GetString("quickchart_base_url"),
		Transport:   v.GetString("transport"),
		SSEAddress:  v.GetString("sse_address"),
		OutputDir:   v.GetString("quickchart_output_dir"),
		HTTPTimeout: v.GetDuration("http_timeout"),
	}
}

func main() {
	cfg := loadConfig()

	// stdout belongs to the stdio transport, so logs go to stderr.
	log := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: time.RFC3339,
	}))

	srv := New(cfg, log)

	switch cfg.Transport {
	case "sse":
		log.Info("serving over SSE",
			slog.String("address", cfg.SSEAddress),
			slog.String("base_url", cfg.BaseURL))
		if err := server.NewSSEServer(srv).Start(cfg.SSEAddress); err != nil {
			fmt.Fprintf(os.Stderr, "server error: %v\n", err)
			os.Exit(1)
		}
	default:
		if err := server.ServeStdio(srv); err != nil {
			fmt.Fprintf(os.Stderr, "server error: %v\n", err)
			os.Exit(1)
		}
	}
}
