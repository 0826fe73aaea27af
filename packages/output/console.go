// Package output renders responses, history and status messages for
// the terminal.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/abdul-hamid-achik/reqvault/packages/core/json"
	"github.com/abdul-hamid-achik/reqvault/packages/core/request"
	"github.com/abdul-hamid-achik/reqvault/packages/history"
)

type Printer struct {
	writer  io.Writer
	errOut  io.Writer
	verbose bool
	noColor bool
}

type PrinterOption func(*Printer)

func NewPrinter(opts ...PrinterOption) *Printer {
	p := &Printer{
		writer: os.Stdout,
		errOut: os.Stderr,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.noColor {
		color.NoColor = true
	}
	return p
}

func WithWriter(w io.Writer) PrinterOption {
	return func(p *Printer) {
		p.writer = w
	}
}

func WithErrWriter(w io.Writer) PrinterOption {
	return func(p *Printer) {
		p.errOut = w
	}
}

func WithVerbose(v bool) PrinterOption {
	return func(p *Printer) {
		p.verbose = v
	}
}

func WithNoColor(nc bool) PrinterOption {
	return func(p *Printer) {
		p.noColor = nc
	}
}

// PrintResponse writes the status line, headers when verbose, and the
// body. JSON bodies are pretty-printed with per-kind coloring; anything
// that fails to parse is shown verbatim.
func (p *Printer) PrintResponse(resp *request.Response) {
	bold := color.New(color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	dim := color.New(color.FgHiBlack).SprintFunc()

	fmt.Fprintf(p.writer, "\n%s %s %s\n", bold("Status:"), p.statusColor(resp.Status)(fmt.Sprintf("%d", resp.Status)), resp.StatusText)
	fmt.Fprintf(p.writer, "%s %dms\n", bold("Time:"), resp.DurationMs())

	if p.verbose {
		fmt.Fprintf(p.writer, "\n%s:\n", cyan("Headers"))
		for _, h := range resp.Headers {
			fmt.Fprintf(p.writer, "  %s: %s\n", dim(h.Key), h.Value)
		}
	}

	fmt.Fprintf(p.writer, "\n%s:\n", cyan("Body"))
	p.printBody(resp)
	fmt.Fprintln(p.writer)
}

func (p *Printer) printBody(resp *request.Response) {
	if len(resp.Body) == 0 {
		fmt.Fprintln(p.writer, color.New(color.FgHiBlack).Sprint("<empty>"))
		return
	}

	if resp.IsJSON() {
		if v, err := json.Parse(resp.BodyString()); err == nil {
			fmt.Fprintln(p.writer, FormatJSON(v))
			return
		}
	}

	// Binary and oversized payloads fall back to the preview form.
	preview := resp.BodyPreview()
	if preview != resp.BodyString() {
		fmt.Fprintln(p.writer, color.New(color.FgHiBlack).Sprint(preview))
		return
	}
	fmt.Fprintln(p.writer, resp.BodyString())
}

func (p *Printer) statusColor(status int) func(...any) string {
	switch {
	case status >= 200 && status < 300:
		return color.New(color.FgGreen).SprintFunc()
	case status >= 300 && status < 400:
		return color.New(color.FgYellow).SprintFunc()
	case status >= 400 && status < 500:
		return color.New(color.FgRed).SprintFunc()
	case status >= 500:
		return color.New(color.FgHiRed).SprintFunc()
	default:
		return fmt.Sprint
	}
}

// PrintHistoryEntry writes one history line: index, method, URL,
// status and duration.
func (p *Printer) PrintHistoryEntry(index int, e *history.Entry) {
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.FgHiBlack).SprintFunc()

	fmt.Fprintf(p.writer, "%3d  %s %s  %s  %s\n",
		index,
		bold(e.Request.Method),
		e.Request.URL,
		p.statusColor(e.Response.Status)(fmt.Sprintf("%d", e.Response.Status)),
		dim(fmt.Sprintf("%dms  %s", e.DurationMs, e.Time().Format("2006-01-02 15:04:05"))),
	)
}

func (p *Printer) PrintError(err error) {
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	fmt.Fprintf(p.errOut, "%s %v\n", red("Error:"), err)
}

func (p *Printer) PrintSuccess(format string, args ...any) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	fmt.Fprintf(p.writer, "%s %s\n", green("✓"), fmt.Sprintf(format, args...))
}

func (p *Printer) PrintInfo(format string, args ...any) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	fmt.Fprintf(p.writer, "%s %s\n", cyan("ℹ"), fmt.Sprintf(format, args...))
}

func (p *Printer) Printf(format string, args ...any) {
	fmt.Fprintf(p.writer, format, args...)
}
