package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/devbush/ytbatch/internal/adapters/cli/tui"
	"github.com/devbush/ytbatch/internal/application"
)

// Console implements ports.Console with lipgloss styles
type Console struct {
	out   io.Writer
	quiet bool

	heading lipgloss.Style
	warn    lipgloss.Style
	err     lipgloss.Style
	success lipgloss.Style
	step    lipgloss.Style
}

// NewConsole creates a console writing to out. Quiet suppresses per-entry step lines.
func NewConsole(out io.Writer, quiet bool) *Console {
	r := lipgloss.NewRenderer(out)
	return &Console{
		out:     out,
		quiet:   quiet,
		heading: r.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		warn:    r.NewStyle().Foreground(lipgloss.Color("214")),
		err:     r.NewStyle().Foreground(lipgloss.Color("196")),
		success: r.NewStyle().Foreground(lipgloss.Color("42")),
		step:    r.NewStyle().Faint(true),
	}
}

func (c *Console) Heading(format string, args ...any) {
	fmt.Fprintln(c.out, c.heading.Render(fmt.Sprintf(format, args...)))
}

func (c *Console) Info(format string, args ...any) {
	fmt.Fprintf(c.out, format+"\n", args...)
}

func (c *Console) Warn(format string, args ...any) {
	fmt.Fprintln(c.out, c.warn.Render(fmt.Sprintf(format, args...)))
}

func (c *Console) Error(format string, args ...any) {
	fmt.Fprintln(c.out, c.err.Render("✗ "+fmt.Sprintf(format, args...)))
}

func (c *Console) Success(format string, args ...any) {
	fmt.Fprintln(c.out, c.success.Render("✓ "+fmt.Sprintf(format, args...)))
}

func (c *Console) Step(current, total int, title string) {
	if c.quiet {
		return
	}
	fmt.Fprintln(c.out, c.step.Render(tui.StepLine(current, total, title)))
}

// Summary prints the end-of-run overview of a batch
func (c *Console) Summary(report *application.Report) {
	if report == nil || report.Empty {
		return
	}
	summary := tui.BatchSummary{
		Selected:   report.Selected,
		Downloaded: len(report.Downloaded),
		Skipped:    report.Skipped,
	}
	if report.Retried {
		summary.Retried = retriedDownloads(report)
	}
	for _, f := range report.Failed {
		summary.Failures = append(summary.Failures, tui.BatchFailure{URL: f.URL, ErrMsg: f.Err.Error()})
	}
	summary.Render(c.out)
}

func retriedDownloads(report *application.Report) int {
	downloaded := make(map[string]bool, len(report.Downloaded))
	for _, url := range report.Downloaded {
		downloaded[url] = true
	}
	n := 0
	for _, url := range report.NotFound {
		if downloaded[url] {
			n++
		}
	}
	return n
}
