package ytdlp

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/devbush/ytbatch/internal/domain"
	"github.com/devbush/ytbatch/internal/ports"
)

const progressPrefix = "[ytbatch]"

// progressTemplate makes yt-dlp print one machine-readable line per progress hook call:
// [ytbatch] <status> <downloaded> <total> <estimate>, with NA for unknown values.
const progressTemplate = "download:" + progressPrefix +
	" %(progress.status)s %(progress.downloaded_bytes)s %(progress.total_bytes)s %(progress.total_bytes_estimate)s"

// parseProgressLine decodes a line printed through progressTemplate
func parseProgressLine(line string) (domain.ProgressEvent, bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, progressPrefix) {
		return domain.ProgressEvent{}, false
	}

	fields := strings.Fields(strings.TrimPrefix(line, progressPrefix))
	if len(fields) != 4 {
		return domain.ProgressEvent{}, false
	}

	return domain.ProgressEvent{
		Status:             domain.ProgressStatus(fields[0]),
		DownloadedBytes:    parseBytes(fields[1]),
		TotalBytes:         parseBytes(fields[2]),
		TotalBytesEstimate: parseBytes(fields[3]),
	}, true
}

// parseBytes reads yt-dlp's byte counts, which may be floats or NA
func parseBytes(s string) int64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || v < 0 {
		return 0
	}
	return int64(v)
}

// streamProgress forwards every progress line of r to sink on the calling goroutine
// and reports whether a finished event was seen.
func streamProgress(r io.Reader, sink ports.ProgressSink) (bool, error) {
	finished := false
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		event, ok := parseProgressLine(scanner.Text())
		if !ok {
			continue
		}
		if event.Status == domain.StatusFinished {
			finished = true
		}
		sink.OnProgress(event)
	}
	return finished, scanner.Err()
}
