package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"
)

const (
	chartWidth      = 600
	chartHeight     = 300
	chartPixelRatio = 2
)

// quickChart talks to the remote rendering service: it builds request URLs
// and retrieves rendered images. All state is read-only after construction,
// so one instance is shared by concurrent tool invocations.
type quickChart struct {
	baseURL   string
	outputDir string
	client    *http.Client
	log       *slog.Logger
	now       func() time.Time
}

func newQuickChart(cfg *appConfig, log *slog.Logger) *quickChart {
	return &quickChart{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		outputDir: cfg.OutputDir,
		client:    &http.Client{Timeout: cfg.HTTPTimeout},
		log:       log,
		now:       time.Now,
	}
}

// ChartURL builds the rendering URL for a normalized configuration,
// rendering at 600x300 with a 2x pixel ratio.
func (q *quickChart) ChartURL(config any) (string, error) {
	return q.buildURL(config, true)
}

// RawURL builds the rendering URL for a caller-assembled configuration.
// Only the config itself goes on the query string; sizing is left to the
// renderer's defaults.
func (q *quickChart) RawURL(config any) (string, error) {
	return q.buildURL(config, false)
}

func (q *quickChart) buildURL(config any, withSize bool) (string, error) {
	b, err := json.Marshal(config)
	if err != nil {
		return "", fmt.Errorf("encode chart config: %w", err)
	}

	params := url.Values{}
	params.Set("c", string(b))
	if withSize {
		params.Set("w", strconv.Itoa(chartWidth))
		params.Set("h", strconv.Itoa(chartHeight))
		params.Set("devicePixelRatio", strconv.Itoa(chartPixelRatio))
	}
	// Values.Encode sorts keys, so "c" always comes first.
	return q.baseURL + "?" + params.Encode(), nil
}

// FetchImage retrieves the rendered image bytes. No retries: any transport
// error or non-2xx response surfaces immediately as a RemoteFetchError.
func (q *quickChart) FetchImage(ctx context.Context, chartURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, chartURL, nil)
	if err != nil {
		return nil, &RemoteFetchError{URL: chartURL, Err: err}
	}

	resp, err := q.client.Do(req)
	if err != nil {
		return nil, &RemoteFetchError{URL: chartURL, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RemoteFetchError{URL: chartURL, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &RemoteFetchError{URL: chartURL, StatusCode: resp.StatusCode}
	}
	return body, nil
}

// Download fetches the rendered image and writes it to outputPath, deriving
// a default path from the chart type, title and current time when none is
// given. The target directory is checked before the network call.
func (q *quickChart) Download(ctx context.Context, chartURL, outputPath, chartType, title string) (string, error) {
	if outputPath == "" {
		outputPath = q.defaultOutputPath(chartType, title)
		q.log.Info("no output path provided", slog.String("path", outputPath))
	}

	dir := filepath.Dir(outputPath)
	if err := checkWritableDir(dir); err != nil {
		return "", err
	}

	img, err := q.FetchImage(ctx, chartURL)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(outputPath, img, 0o644); err != nil {
		return "", &OutputPathError{Dir: dir, Reason: err.Error()}
	}
	return outputPath, nil
}

func (q *quickChart) defaultOutputPath(chartType, title string) string {
	parts := []string{chartType}
	if safe := sanitizeTitle(title); safe != "" {
		parts = append(parts, safe)
	}
	parts = append(parts, q.now().Format("2006-01-02_15-04-05"))
	return filepath.Join(q.outputDir, strings.Join(parts, "_")+".png")
}

// sanitizeTitle makes a chart title safe for filesystem use: anything that
// is not a letter, digit, space, dash or underscore becomes an underscore,
// and spaces turn into underscores after trimming.
func sanitizeTitle(title string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			return r
		case r == ' ' || r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, title)
	return strings.ReplaceAll(strings.TrimSpace(safe), " ", "_")
}

// checkWritableDir verifies the directory exists and accepts writes, via a
// temp-file probe since there is no portable access(2) in Go.
func checkWritableDir(dir string) error {
	info, err := os.Stat(dir)
	if errors.Is(err, os.ErrNotExist) {
		return &OutputPathError{Dir: dir, Reason: "does not exist"}
	}
	if err != nil {
		return &OutputPathError{Dir: dir, Reason: err.Error()}
	}
	if !info.IsDir() {
		return &OutputPathError{Dir: dir, Reason: "is not a directory"}
	}

	probe, err := os.CreateTemp(dir, ".quickchart-probe-*")
	if err != nil {
		return &OutputPathError{Dir: dir, Reason: "is not writable"}
	}
	probe.Close()
	os.Remove(probe.Name())
	return nil
}
