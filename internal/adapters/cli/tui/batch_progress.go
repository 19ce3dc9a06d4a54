package tui

import (
	"fmt"
	"io"
	"math"
	"strings"
)

// renderProgressBar draws a fixed-width bar such as [=====>    ].
// The head sits just before the rounded fill point below halfway and just after it from halfway on.
func renderProgressBar(current, total, width int) string {
	switch {
	case total <= 0 || current <= 0:
		return "[" + strings.Repeat(" ", width) + "]"
	case current >= total:
		return "[" + strings.Repeat("=", width) + "]"
	}

	ratio := float64(current) / float64(total)
	filled := int(math.Round(ratio * float64(width)))
	if ratio < 0.5 {
		filled--
	}
	filled = min(max(filled, 0), width-1)

	return "[" + strings.Repeat("=", filled) + ">" + strings.Repeat(" ", width-filled-1) + "]"
}

// StepLine renders the batch position of the entry being processed
// Example: [3/10] [==>       ] Some video title
func StepLine(current, total int, title string) string {
	return fmt.Sprintf("[%d/%d] %s %s", current, total, renderProgressBar(current, total, 10), Truncate(title, 60))
}

// BatchFailure is a download the gateway could not complete
type BatchFailure struct {
	URL    string
	ErrMsg string
}

// BatchSummary is the end-of-run overview of a batch
type BatchSummary struct {
	Selected   int
	Downloaded int
	Retried    int
	Skipped    []string
	Failures   []BatchFailure
}

// Render writes the summary to w
func (s BatchSummary) Render(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Batch complete: %d/%d downloaded\n", s.Downloaded, s.Selected)
	if s.Retried > 0 {
		fmt.Fprintf(w, "  %d downloaded with a second quality\n", s.Retried)
	}

	if len(s.Skipped) > 0 {
		fmt.Fprintln(w, "\nSkipped:")
		for _, url := range s.Skipped {
			fmt.Fprintf(w, "  - %s\n", url)
		}
	}

	if len(s.Failures) > 0 {
		fmt.Fprintln(w, "\nFailures:")
		for _, f := range s.Failures {
			fmt.Fprintf(w, "  ✗ %s: %s\n", f.URL, f.ErrMsg)
		}
	}
}
