package ytdlp

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/devbush/ytbatch/internal/config"
	"github.com/devbush/ytbatch/internal/domain"
)

func binaryName() string {
	if runtime.GOOS == "windows" {
		return "yt-dlp.exe"
	}
	return "yt-dlp"
}

func findBinary() string {
	// Check bundled location first
	bundled := filepath.Join(config.BinDir(), binaryName())
	if _, err := os.Stat(bundled); err == nil {
		return bundled
	}

	if path, err := exec.LookPath(binaryName()); err == nil {
		return path
	}

	return ""
}

// GetBinaryPath returns the configured or discovered yt-dlp path, empty when missing
func (g *Gateway) GetBinaryPath() string {
	if g.binPath != "" {
		return g.binPath
	}
	g.binPath = findBinary()
	return g.binPath
}

// IsAvailable reports whether yt-dlp can be run
func (g *Gateway) IsAvailable() bool {
	return g.GetBinaryPath() != ""
}

// Version returns the output of yt-dlp --version
func (g *Gateway) Version(ctx context.Context) (string, error) {
	output, err := g.run(ctx, []string{"--version"})
	if err != nil {
		return "", err
	}
	return string(trimNewline(output)), nil
}

// Install downloads the latest yt-dlp release into the bin directory
func (g *Gateway) Install(ctx context.Context, progress func(downloaded, total int64)) error {
	binDir := config.BinDir()
	if err := os.MkdirAll(binDir, 0755); err != nil {
		return err
	}

	destPath := filepath.Join(binDir, binaryName())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download yt-dlp: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download yt-dlp: HTTP %d", resp.StatusCode)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return err
	}

	// Remove partial downloads on failure
	success := false
	defer func() {
		out.Close()
		if !success {
			os.Remove(destPath)
		}
	}()

	counter := &countingWriter{total: resp.ContentLength, progress: progress}
	if _, err := io.Copy(io.MultiWriter(out, counter), resp.Body); err != nil {
		return err
	}

	if runtime.GOOS != "windows" {
		if err := os.Chmod(destPath, 0755); err != nil {
			return err
		}
	}

	success = true
	g.binPath = destPath
	g.logger.Info("installed yt-dlp", "path", destPath)
	return nil
}

// Update runs yt-dlp's self-updater
func (g *Gateway) Update(ctx context.Context) error {
	binPath := g.GetBinaryPath()
	if binPath == "" {
		return fmt.Errorf("%w: run 'ytbatch deps install' first", domain.ErrYtDlpNotFound)
	}

	cmd := exec.CommandContext(ctx, binPath, "-U")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func downloadURL() string {
	base := "https://github.com/yt-dlp/yt-dlp/releases/latest/download/"

	switch runtime.GOOS {
	case "windows":
		return base + "yt-dlp.exe"
	case "darwin":
		return base + "yt-dlp_macos"
	default:
		return base + "yt-dlp"
	}
}

type countingWriter struct {
	downloaded int64
	total      int64
	progress   func(downloaded, total int64)
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.downloaded += int64(len(p))
	if w.progress != nil {
		w.progress(w.downloaded, w.total)
	}
	return len(p), nil
}

func trimNewline(b []byte) []byte {
	for len(b) > 0 && (b[len(b)-1] == '\n' || b[len(b)-1] == '\r') {
		b = b[:len(b)-1]
	}
	return b
}
