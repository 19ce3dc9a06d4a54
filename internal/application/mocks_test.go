package application

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/devbush/ytbatch/internal/domain"
	"github.com/devbush/ytbatch/internal/ports"
)

// Mock implementations for testing
type mockPrompter struct {
	answers []string
	labels  []string
	menus   [][]string
}

func newMockPrompter(answers ...string) *mockPrompter {
	return &mockPrompter{answers: answers}
}

func (m *mockPrompter) next(label string) (string, error) {
	m.labels = append(m.labels, label)
	if len(m.answers) == 0 {
		return "", io.EOF
	}
	a := m.answers[0]
	m.answers = m.answers[1:]
	return a, nil
}

func (m *mockPrompter) PromptChoice(label string, options []string) (string, error) {
	m.menus = append(m.menus, options)
	a, err := m.next(label)
	if err != nil {
		return "", err
	}
	n, convErr := strconv.Atoi(a)
	if convErr != nil || n < 1 || n > len(options) {
		return "", fmt.Errorf("mock: invalid choice %q", a)
	}
	return options[n-1], nil
}

func (m *mockPrompter) PromptText(label string, def string) (string, error) {
	a, err := m.next(label)
	if err != nil {
		return "", err
	}
	if a == "" {
		return def, nil
	}
	return a, nil
}

type mockConsole struct {
	lines []string
	steps int
}

func (m *mockConsole) add(format string, args ...any) {
	m.lines = append(m.lines, fmt.Sprintf(format, args...))
}

func (m *mockConsole) Heading(format string, args ...any) { m.add(format, args...) }
func (m *mockConsole) Info(format string, args ...any)    { m.add(format, args...) }
func (m *mockConsole) Warn(format string, args ...any)    { m.add(format, args...) }
func (m *mockConsole) Error(format string, args ...any)   { m.add(format, args...) }
func (m *mockConsole) Success(format string, args ...any) { m.add(format, args...) }
func (m *mockConsole) Step(current, total int, title string) {
	m.steps++
}

type mockGateway struct {
	playlist    *domain.Playlist
	playlistErr error
	videos      map[string]*domain.Entry
	failures    map[string]error
	fetched     []string
	downloads   []ports.DownloadRequest
}

func (m *mockGateway) FetchPlaylist(ctx context.Context, url string) (*domain.Playlist, error) {
	if m.playlistErr != nil {
		return nil, m.playlistErr
	}
	return m.playlist, nil
}

func (m *mockGateway) FetchVideo(ctx context.Context, url string) (*domain.Entry, error) {
	m.fetched = append(m.fetched, url)
	if v, ok := m.videos[url]; ok {
		return v, nil
	}
	return nil, domain.ErrVideoUnavailable
}

func (m *mockGateway) Download(ctx context.Context, req ports.DownloadRequest, sink ports.ProgressSink) error {
	m.downloads = append(m.downloads, req)
	if err, ok := m.failures[req.URL]; ok {
		return err
	}
	sink.OnProgress(domain.ProgressEvent{Status: domain.StatusDownloading, DownloadedBytes: 10, TotalBytes: 100})
	sink.OnProgress(domain.ProgressEvent{Status: domain.StatusFinished})
	return nil
}

func (m *mockGateway) downloadedURLs() []string {
	var urls []string
	for _, d := range m.downloads {
		urls = append(urls, d.URL)
	}
	return urls
}

// testEntry builds an entry offering the given video format ids plus one audio-only format
func testEntry(index int, formatIDs ...string) *domain.Entry {
	formats := []domain.FormatDescriptor{{ID: "140", Ext: "m4a", Note: "medium", VCodec: "none"}}
	for _, id := range formatIDs {
		formats = append(formats, domain.FormatDescriptor{ID: id, Resolution: "1280x720", Ext: "mp4", Note: "720p", VCodec: "avc1"})
	}
	return &domain.Entry{
		Index:   index,
		Title:   fmt.Sprintf("Video %d", index),
		PageURL: fmt.Sprintf("https://www.youtube.com/watch?v=vid%d", index),
		Formats: formats,
	}
}
