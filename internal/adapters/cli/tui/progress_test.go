package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/devbush/ytbatch/internal/domain"
)

func TestProgressReporter_FinishedMovesToTotal(t *testing.T) {
	var out bytes.Buffer
	r := NewProgressReporter(&out)

	r.OnProgress(domain.ProgressEvent{Status: domain.StatusDownloading, DownloadedBytes: 200, TotalBytes: 1000})
	if !r.Started() {
		t.Fatal("reporter should start on the first event with a total")
	}
	if r.Position() != 200 {
		t.Errorf("Position() = %d, want 200", r.Position())
	}

	r.OnProgress(domain.ProgressEvent{Status: domain.StatusDownloading, DownloadedBytes: 900, TotalBytes: 1000})
	r.OnProgress(domain.ProgressEvent{Status: domain.StatusFinished})

	if r.Position() != 1000 {
		t.Errorf("Position() = %d, want 1000", r.Position())
	}
	if !strings.HasSuffix(out.String(), "\n") {
		t.Errorf("output should end with a newline, got %q", out.String())
	}
}

func TestProgressReporter_UsesEstimateWhenTotalUnknown(t *testing.T) {
	var out bytes.Buffer
	r := NewProgressReporter(&out)

	r.OnProgress(domain.ProgressEvent{Status: domain.StatusDownloading, DownloadedBytes: 10, TotalBytesEstimate: 500})
	r.OnProgress(domain.ProgressEvent{Status: domain.StatusDownloading, DownloadedBytes: 50, TotalBytes: 800})
	r.OnProgress(domain.ProgressEvent{Status: domain.StatusFinished})

	// Bound to the first usable total
	if r.Total() != 500 {
		t.Errorf("Total() = %d, want 500", r.Total())
	}
	if r.Position() != 500 {
		t.Errorf("Position() = %d, want 500", r.Position())
	}
}

func TestProgressReporter_NoTotalRendersNothing(t *testing.T) {
	var out bytes.Buffer
	r := NewProgressReporter(&out)

	r.OnProgress(domain.ProgressEvent{Status: domain.StatusDownloading, DownloadedBytes: 100})
	r.OnProgress(domain.ProgressEvent{Status: domain.StatusFinished})

	if r.Started() {
		t.Error("reporter should never start without a total")
	}
	if out.Len() != 0 {
		t.Errorf("expected no output, got %q", out.String())
	}
}

func TestProgressReporter_IgnoresEventsAfterFinish(t *testing.T) {
	var out bytes.Buffer
	r := NewProgressReporter(&out)

	r.OnProgress(domain.ProgressEvent{Status: domain.StatusDownloading, DownloadedBytes: 1, TotalBytes: 10})
	r.OnProgress(domain.ProgressEvent{Status: domain.StatusFinished})
	written := out.Len()

	r.OnProgress(domain.ProgressEvent{Status: domain.StatusFinished})
	r.OnProgress(domain.ProgressEvent{Status: domain.StatusDownloading, DownloadedBytes: 3, TotalBytes: 10})

	if out.Len() != written {
		t.Errorf("reporter wrote after finishing: %q", out.String()[written:])
	}
	if r.Position() != 10 {
		t.Errorf("Position() = %d, want 10", r.Position())
	}
}

func TestProgressSinks_FreshReporterPerCall(t *testing.T) {
	var out bytes.Buffer
	sinks := ProgressSinks(&out, false)

	first, second := sinks(), sinks()
	if first == second {
		t.Error("factory should return a new reporter for each download")
	}

	quiet := ProgressSinks(&out, true)()
	quiet.OnProgress(domain.ProgressEvent{Status: domain.StatusDownloading, DownloadedBytes: 1, TotalBytes: 2})
	if out.Len() != 0 {
		t.Errorf("quiet sink wrote %q", out.String())
	}
}

func TestProgressReporter_EventWithoutTotalKeepsPosition(t *testing.T) {
	var out bytes.Buffer
	r := NewProgressReporter(&out)

	r.OnProgress(domain.ProgressEvent{Status: domain.StatusDownloading, DownloadedBytes: 600, TotalBytes: 1000})
	r.OnProgress(domain.ProgressEvent{Status: domain.StatusDownloading})

	if r.Position() != 600 {
		t.Errorf("Position() = %d, want 600 after an event without counts", r.Position())
	}
}

func TestProgressReporter_ErrorEndsLine(t *testing.T) {
	var out bytes.Buffer
	r := NewProgressReporter(&out)

	r.OnProgress(domain.ProgressEvent{Status: domain.StatusDownloading, DownloadedBytes: 300, TotalBytes: 1000})
	r.OnProgress(domain.ProgressEvent{Status: domain.StatusError})

	if !strings.HasSuffix(out.String(), "\n") {
		t.Errorf("output should end with a newline after an error, got %q", out.String())
	}
	if r.Position() != 300 {
		t.Errorf("Position() = %d, want the partial 300", r.Position())
	}

	written := out.Len()
	r.OnProgress(domain.ProgressEvent{Status: domain.StatusFinished})
	if out.Len() != written {
		t.Errorf("reporter wrote after an error: %q", out.String()[written:])
	}
}

func TestProgressReporter_ErrorBeforeStartWritesNothing(t *testing.T) {
	var out bytes.Buffer
	r := NewProgressReporter(&out)

	r.OnProgress(domain.ProgressEvent{Status: domain.StatusError})

	if out.Len() != 0 {
		t.Errorf("expected no output, got %q", out.String())
	}
}
