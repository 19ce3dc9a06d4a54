package ytdlp

import (
	"strings"
	"testing"

	"github.com/devbush/ytbatch/internal/domain"
	"github.com/devbush/ytbatch/internal/ports"
)

func TestParseProgressLine(t *testing.T) {
	tests := []struct {
		line   string
		want   domain.ProgressEvent
		wantOK bool
	}{
		{
			"[ytbatch] downloading 1024 4096 NA",
			domain.ProgressEvent{Status: domain.StatusDownloading, DownloadedBytes: 1024, TotalBytes: 4096},
			true,
		},
		{
			"[ytbatch] downloading 2048 NA 8192.5",
			domain.ProgressEvent{Status: domain.StatusDownloading, DownloadedBytes: 2048, TotalBytesEstimate: 8192},
			true,
		},
		{
			"[ytbatch] finished 4096 4096 NA",
			domain.ProgressEvent{Status: domain.StatusFinished, DownloadedBytes: 4096, TotalBytes: 4096},
			true,
		},
		{"[youtube] abc: Downloading webpage", domain.ProgressEvent{}, false},
		{"[ytbatch] downloading 1", domain.ProgressEvent{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, ok := parseProgressLine(tt.line)
			if ok != tt.wantOK {
				t.Fatalf("parseProgressLine() ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("parseProgressLine() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestStreamProgress(t *testing.T) {
	output := strings.Join([]string{
		"[youtube] abc: Extracting URL",
		"[ytbatch] downloading 200 1000 NA",
		"[ytbatch] downloading 900 1000 NA",
		"[ytbatch] finished 1000 1000 NA",
	}, "\n")

	var events []domain.ProgressEvent
	finished, err := streamProgress(strings.NewReader(output), ports.ProgressFunc(func(e domain.ProgressEvent) {
		events = append(events, e)
	}))
	if err != nil {
		t.Fatalf("streamProgress() error = %v", err)
	}
	if !finished {
		t.Error("finished = false, want true")
	}
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}
	if events[1].DownloadedBytes != 900 {
		t.Errorf("events[1].DownloadedBytes = %d, want 900", events[1].DownloadedBytes)
	}
}
