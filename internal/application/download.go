package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/devbush/ytbatch/internal/domain"
	"github.com/devbush/ytbatch/internal/ports"
)

const retryPrompt = "Do you want to reselect quality and download them? (y/n):"

// Session carries the settings of one batch run
type Session struct {
	PlaylistURL string
	Sampling    domain.SamplingStrategy
	OutputDir   string
	Template    domain.OutputTemplate
	OnError     domain.FailurePolicy
}

// FailedDownload records a download the gateway could not complete
type FailedDownload struct {
	URL string
	Err error
}

// Report describes what a batch run did
type Report struct {
	Empty         bool // playlist had no entries, nothing was attempted
	Total         int  // entries in the playlist
	Selected      int  // entries in the chosen range, unavailable ones included
	FormatID      string
	RetryFormatID string
	Downloaded    []string
	NotFound      []string // page URLs lacking FormatID in the first pass
	Retried       bool
	Skipped       []string // NotFound URLs left alone because the retry was declined
	Failed        []FailedDownload
}

// DownloadService orchestrates the select-once, apply-with-fallback batch download
type DownloadService struct {
	gateway  ports.Gateway
	prompter ports.Prompter
	console  ports.Console
	ranges   RangePolicy
	sinks    ports.ProgressSinkFactory
	logger   *log.Logger
}

// NewDownloadService creates a new download service
func NewDownloadService(
	gateway ports.Gateway,
	prompter ports.Prompter,
	console ports.Console,
	ranges RangePolicy,
	sinks ports.ProgressSinkFactory,
	logger *log.Logger,
) *DownloadService {
	if ranges == nil {
		ranges = PermissiveRangeParsing{}
	}
	if sinks == nil {
		sinks = func() ports.ProgressSink { return ports.NopSink }
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &DownloadService{
		gateway:  gateway,
		prompter: prompter,
		console:  console,
		ranges:   ranges,
		sinks:    sinks,
		logger:   logger,
	}
}

// Run resolves the playlist, asks for a range and a format, downloads every entry
// offering that format and offers a second format choice for the rest.
func (s *DownloadService) Run(ctx context.Context, session Session) (*Report, error) {
	if session.Template == "" {
		session.Template = domain.DefaultOutputTemplate
	}
	if session.OnError == "" {
		session.OnError = domain.ContinueOnError
	}

	// Resolve
	playlist, err := s.gateway.FetchPlaylist(ctx, session.PlaylistURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch playlist: %w", err)
	}

	total := playlist.Total()
	report := &Report{Total: total}
	if total == 0 {
		s.console.Warn("Playlist contains no videos.")
		report.Empty = true
		return report, nil
	}
	s.logger.Debug("playlist resolved", "id", playlist.ID, "title", playlist.Title, "entries", total)

	s.console.Info("Playlist contains %d videos.", total)
	rng, err := ChooseRange(s.prompter, s.ranges, total)
	if err != nil {
		return report, err
	}
	entries := rng.Apply(playlist.Entries)
	report.Selected = len(entries)
	s.logger.Debug("range selected", "start", rng.Start, "end", rng.End, "entries", len(entries))

	// Select
	sample, err := s.sampleEntry(ctx, session.Sampling, entries)
	if err != nil {
		return report, err
	}
	s.console.Heading("Available qualities from %s:", sample.Title)
	formatID, err := ChooseFormat(s.prompter, sample)
	if err != nil {
		return report, err
	}
	report.FormatID = formatID

	// First pass
	// playlist positions of NotFound, element for element; a video may appear more than once
	var notFoundIndex []int
	for i, entry := range entries {
		if entry == nil {
			continue
		}

		s.console.Step(i+1, len(entries), entry.Title)
		if !entry.HasFormat(formatID) {
			s.console.Warn("Format %s not available for this video.", formatID)
			report.NotFound = append(report.NotFound, entry.PageURL)
			notFoundIndex = append(notFoundIndex, entry.Index)
			continue
		}

		if err := s.download(ctx, session, entry.PageURL, entry.Index, total, formatID, report); err != nil {
			return report, err
		}
	}

	if len(report.NotFound) == 0 {
		return report, nil
	}

	// Retry
	s.console.Warn("Some videos didn't have the selected format.")
	answer, err := s.prompter.PromptText(retryPrompt, "")
	if err != nil {
		return report, err
	}
	if !strings.EqualFold(strings.TrimSpace(answer), "y") {
		s.console.Info("Skipped those videos.")
		report.Skipped = report.NotFound
		return report, nil
	}

	report.Retried = true
	retrySample, err := s.gateway.FetchVideo(ctx, report.NotFound[0])
	if err != nil {
		return report, fmt.Errorf("failed to fetch formats of %s: %w", report.NotFound[0], err)
	}
	s.console.Heading("Available qualities from %s:", retrySample.Title)
	retryFormat, err := ChooseFormat(s.prompter, retrySample)
	if err != nil {
		return report, err
	}
	report.RetryFormatID = retryFormat

	for i, url := range report.NotFound {
		s.console.Step(i+1, len(report.NotFound), url)
		if err := s.download(ctx, session, url, notFoundIndex[i], total, retryFormat, report); err != nil {
			return report, err
		}
	}

	return report, nil
}

func (s *DownloadService) sampleEntry(ctx context.Context, strategy domain.SamplingStrategy, entries []*domain.Entry) (*domain.Entry, error) {
	switch strategy.Kind {
	case domain.SampleExplicitURL:
		entry, err := s.gateway.FetchVideo(ctx, strategy.SampleURL)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch sample video: %w", err)
		}
		return entry, nil
	case domain.SampleFirstEntry, "":
		for _, entry := range entries {
			if entry != nil {
				return entry, nil
			}
		}
		return nil, domain.ErrNoSampleEntry
	}
	return nil, fmt.Errorf("unknown sampling mode: %s", strategy.Kind)
}

func (s *DownloadService) download(ctx context.Context, session Session, url string, index, total int, formatID string, report *Report) error {
	req := ports.DownloadRequest{
		URL:       url,
		FormatID:  formatID,
		OutputDir: session.OutputDir,
		Template:  session.Template.Render(index, total),
	}
	s.logger.Debug("downloading", "url", url, "format", formatID, "template", req.Template)

	err := s.gateway.Download(ctx, req, s.sinks())
	if err == nil {
		report.Downloaded = append(report.Downloaded, url)
		return nil
	}

	if session.OnError == domain.AbortOnError || errors.Is(err, context.Canceled) || ctx.Err() != nil {
		return fmt.Errorf("download of %s failed: %w", url, err)
	}

	s.logger.Warn("download failed", "url", url, "error", err)
	s.console.Error("Download failed: %v", err)
	report.Failed = append(report.Failed, FailedDownload{URL: url, Err: err})
	return nil
}
