package ytdlp

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/devbush/ytbatch/internal/domain"
	"github.com/devbush/ytbatch/internal/ports"
)

// DefaultCacheSize is the number of entries whose metadata is remembered per session
const DefaultCacheSize = 512

// SessionConfig holds the options shared by every yt-dlp invocation of a run
type SessionConfig struct {
	BinPath     string                    // explicit yt-dlp path, looked up when empty
	Credentials *domain.CredentialProfile // browser cookies for authenticated access
	CacheSize   int
	Logger      *log.Logger
}

// Gateway implements ports.Gateway using the yt-dlp binary
type Gateway struct {
	binPath     string
	credentials *domain.CredentialProfile
	entries     *lru.Cache[string, *domain.Entry]
	logger      *log.Logger
}

// NewGateway creates a gateway for one session
func NewGateway(cfg SessionConfig) (*Gateway, error) {
	size := cfg.CacheSize
	if size <= 0 {
		size = DefaultCacheSize
	}
	entries, err := lru.New[string, *domain.Entry](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create metadata cache: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Gateway{
		binPath:     cfg.BinPath,
		credentials: cfg.Credentials,
		entries:     entries,
		logger:      logger,
	}, nil
}

func (g *Gateway) baseArgs() []string {
	args := []string{"--no-warnings"}
	if g.credentials != nil && g.credentials.Browser != "" {
		args = append(args, "--cookies-from-browser", g.credentials.String())
	}
	return args
}

// FetchPlaylist extracts the full playlist, formats included
func (g *Gateway) FetchPlaylist(ctx context.Context, url string) (*domain.Playlist, error) {
	args := append(g.baseArgs(),
		"--dump-single-json",
		"--yes-playlist",
		"--ignore-errors",
		url,
	)

	output, err := g.run(ctx, args)
	// --ignore-errors exits non-zero when some entries failed but still prints the playlist
	if err != nil && len(bytes.TrimSpace(output)) == 0 {
		return nil, err
	}
	if err != nil {
		g.logger.Warn("some playlist entries could not be extracted", "url", url, "error", err)
	}

	info, err := decodeInfo(output)
	if err != nil {
		return nil, err
	}

	playlist := info.toPlaylist(url)
	g.remember(playlist.Entries)
	return playlist, nil
}

// FetchVideo extracts a single video, answering from the session cache when possible
func (g *Gateway) FetchVideo(ctx context.Context, url string) (*domain.Entry, error) {
	if entry, ok := g.entries.Get(url); ok {
		g.logger.Debug("metadata cache hit", "url", url)
		return entry, nil
	}

	args := append(g.baseArgs(), "--dump-single-json", "--no-playlist", url)
	output, err := g.run(ctx, args)
	if err != nil {
		return nil, err
	}

	info, err := decodeInfo(output)
	if err != nil {
		return nil, err
	}

	entry := info.toEntry(0)
	g.remember([]*domain.Entry{entry})
	return entry, nil
}

func (g *Gateway) remember(entries []*domain.Entry) {
	for _, e := range entries {
		if e != nil && e.PageURL != "" {
			g.entries.Add(e.PageURL, e)
		}
	}
}

// Download fetches one video in the requested format, streaming progress to sink
func (g *Gateway) Download(ctx context.Context, req ports.DownloadRequest, sink ports.ProgressSink) error {
	binPath := g.GetBinaryPath()
	if binPath == "" {
		return domain.ErrYtDlpNotFound
	}
	if sink == nil {
		sink = ports.NopSink
	}

	args := append(g.baseArgs(), buildDownloadArgs(req)...)
	g.logger.Debug("running yt-dlp", "args", args)

	cmd := exec.CommandContext(ctx, binPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to create stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start yt-dlp: %w", err)
	}

	finished, scanErr := streamProgress(stdout, sink)
	// keep the pipe drained so yt-dlp never blocks on a full buffer
	_, _ = io.Copy(io.Discard, stdout)

	if err := cmd.Wait(); err != nil {
		sink.OnProgress(domain.ProgressEvent{Status: domain.StatusError})
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return classifyFailure(stderr.String(), err)
	}
	if scanErr != nil {
		g.logger.Warn("failed to read yt-dlp progress", "error", scanErr)
	}
	if !finished {
		sink.OnProgress(domain.ProgressEvent{Status: domain.StatusFinished})
	}
	return nil
}

func buildDownloadArgs(req ports.DownloadRequest) []string {
	template := req.Template
	if template == "" {
		template = domain.DefaultOutputTemplate
	}

	var args []string
	// the directory goes through --paths so a % in it is not read as a template field
	if req.OutputDir != "" {
		args = append(args, "--paths", req.OutputDir)
	}
	return append(args,
		"--format", req.FormatID,
		"--output", template,
		"--no-playlist",
		"--quiet",
		"--progress",
		"--newline",
		"--progress-template", progressTemplate,
		req.URL,
	)
}

func (g *Gateway) run(ctx context.Context, args []string) ([]byte, error) {
	binPath := g.GetBinaryPath()
	if binPath == "" {
		return nil, domain.ErrYtDlpNotFound
	}

	g.logger.Debug("running yt-dlp", "args", args)
	cmd := exec.CommandContext(ctx, binPath, args...)
	output, err := cmd.Output()
	if err != nil {
		if ctx.Err() != nil {
			return output, ctx.Err()
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return output, classifyFailure(string(exitErr.Stderr), err)
		}
		return output, fmt.Errorf("yt-dlp failed: %w", err)
	}
	return output, nil
}

// classifyFailure maps yt-dlp's error output onto domain errors
func classifyFailure(stderr string, err error) error {
	msg := lastErrorLine(stderr)

	switch {
	case strings.Contains(stderr, "Private video") || strings.Contains(stderr, "Video unavailable"):
		return fmt.Errorf("%w: %s", domain.ErrVideoUnavailable, msg)
	case strings.Contains(stderr, "HTTP Error 429") || strings.Contains(stderr, "rate-limit") || strings.Contains(stderr, "Too Many Requests"):
		return fmt.Errorf("%w: %s", domain.ErrRateLimited, msg)
	case strings.Contains(stderr, "Sign in to confirm") || strings.Contains(stderr, "--cookies"):
		return fmt.Errorf("%w: %s", domain.ErrAuthRequired, msg)
	case msg != "":
		return fmt.Errorf("yt-dlp failed: %s", msg)
	}
	return fmt.Errorf("yt-dlp failed: %w", err)
}

func lastErrorLine(stderr string) string {
	scanner := bufio.NewScanner(strings.NewReader(stderr))
	var last string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "ERROR:") {
			last = strings.TrimSpace(strings.TrimPrefix(line, "ERROR:"))
		} else if line != "" && last == "" {
			last = line
		}
	}
	return last
}

// Ensure Gateway implements the port
var _ ports.Gateway = (*Gateway)(nil)
