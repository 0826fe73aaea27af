package bench

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
)

// Reporter renders a bench summary for the terminal.
type Reporter struct {
	writer  io.Writer
	noColor bool

	green *color.Color
	red   *color.Color
	cyan  *color.Color
	bold  *color.Color
}

type ReporterOption func(*Reporter)

func NewReporter(opts ...ReporterOption) *Reporter {
	r := &Reporter{
		writer: os.Stdout,
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.noColor {
		color.NoColor = true
	}
	r.green = color.New(color.FgGreen)
	r.red = color.New(color.FgRed)
	r.cyan = color.New(color.FgCyan)
	r.bold = color.New(color.Bold)

	return r
}

func WithReporterWriter(w io.Writer) ReporterOption {
	return func(r *Reporter) {
		r.writer = w
	}
}

func WithReporterNoColor(nc bool) ReporterOption {
	return func(r *Reporter) {
		r.noColor = nc
	}
}

// Header prints what is about to run.
func (r *Reporter) Header(method, url string, config *Config) {
	fmt.Fprintln(r.writer)
	r.cyan.Fprintf(r.writer, "Benchmarking: %s %s\n", method, url)

	details := []string{
		fmt.Sprintf("Requests: %d", config.Count),
		fmt.Sprintf("Concurrency: %d", config.Concurrency),
	}
	if config.Rate > 0 {
		details = append(details, fmt.Sprintf("Rate: %.0f req/s", config.Rate))
	}
	fmt.Fprintf(r.writer, "%s\n\n", strings.Join(details, " | "))
}

// Summary prints the final numbers.
func (r *Reporter) Summary(summary *Summary) {
	r.bold.Fprintln(r.writer, "BENCH SUMMARY")
	fmt.Fprintln(r.writer, strings.Repeat("─", 40))

	fmt.Fprintf(r.writer, "Duration:   %s\n", formatDuration(summary.Duration))
	fmt.Fprintf(r.writer, "Total:      ")
	r.bold.Fprintf(r.writer, "%d", summary.Total)
	fmt.Fprintf(r.writer, " requests (%.1f req/s)\n", summary.RPS)

	fmt.Fprintf(r.writer, "Success:    ")
	r.green.Fprintf(r.writer, "%d\n", summary.Success)

	fmt.Fprintf(r.writer, "Failed:     ")
	if summary.Failed > 0 {
		r.red.Fprintf(r.writer, "%d", summary.Failed)
	} else {
		fmt.Fprintf(r.writer, "%d", summary.Failed)
	}
	fmt.Fprintf(r.writer, " (%.1f%%)\n", summary.ErrorRate*100)

	fmt.Fprintln(r.writer)
	r.bold.Fprintln(r.writer, "LATENCY (ms)")
	fmt.Fprintf(r.writer, "  p50: %-6s | p95: %-6s | p99: %-6s | max: %s\n",
		formatLatencyMs(summary.P50),
		formatLatencyMs(summary.P95),
		formatLatencyMs(summary.P99),
		formatLatencyMs(summary.Max))
	fmt.Fprintf(r.writer, "  min: %-6s | mean: %-5s | stddev: %s\n",
		formatLatencyMs(summary.Min),
		formatLatencyMs(summary.Mean),
		formatLatencyMs(summary.StdDev))
	fmt.Fprintln(r.writer)
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	if seconds == 0 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dm %02ds", minutes, seconds)
}

func formatLatencyMs(d time.Duration) string {
	ms := float64(d.Microseconds()) / 1000
	if ms < 1 {
		return fmt.Sprintf("%.2f", ms)
	}
	if ms < 10 {
		return fmt.Sprintf("%.1f", ms)
	}
	return fmt.Sprintf("%.0f", ms)
}
