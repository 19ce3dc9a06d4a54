package ports

import (
	"context"

	"github.com/devbush/ytbatch/internal/domain"
)

// DownloadRequest describes a single download invocation.
type DownloadRequest struct {
	URL       string // canonical page URL of the entry
	FormatID  string // format to fetch, validated against a real entry beforehand
	OutputDir string
	Template  string // yt-dlp output template, playlist index already rendered
}

// Gateway is the extraction-and-download service all platform access goes through.
type Gateway interface {
	// FetchPlaylist retrieves the playlist with every entry's formats.
	// Unavailable entries are returned as nil elements.
	FetchPlaylist(ctx context.Context, url string) (*domain.Playlist, error)

	// FetchVideo retrieves the metadata of a single video.
	FetchVideo(ctx context.Context, url string) (*domain.Entry, error)

	// Download blocks until the download completes, reporting progress to sink
	// synchronously from the calling goroutine.
	Download(ctx context.Context, req DownloadRequest, sink ProgressSink) error
}
