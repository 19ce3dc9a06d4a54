package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/devbush/ytbatch/internal/adapters/cli/tui"
	"github.com/devbush/ytbatch/internal/adapters/ytdlp"
	"github.com/devbush/ytbatch/internal/config"
	"github.com/devbush/ytbatch/internal/domain"
	"github.com/devbush/ytbatch/internal/ports"
)

// App holds the dependencies shared by the commands of one invocation
type App struct {
	Config  *config.Config
	Logger  *log.Logger
	Console *Console
	Out     io.Writer

	fs         afero.Fs
	configPath string
	quiet      bool
}

// NewApp loads the configuration and wires up logging and output
func NewApp(fs afero.Fs, opts *rootOptions, out, errOut io.Writer) (*App, error) {
	if err := config.EnsureDirs(fs); err != nil {
		return nil, err
	}

	path := opts.configPath
	if path == "" {
		path = config.ConfigPath()
	}
	cfg, err := config.Load(fs, path)
	if err != nil {
		return nil, err
	}

	logger := newLogger(errOut, cfg.Log.Level, opts.quiet, opts.verbose)
	logger.Debug("config loaded", "path", path)

	return &App{
		Config:  cfg,
		Logger:  logger,
		Console: NewConsole(out, opts.quiet),
		Out:     out,

		fs:         fs,
		configPath: path,
		quiet:      opts.quiet,
	}, nil
}

// NewGateway creates the yt-dlp gateway of one session
func (a *App) NewGateway(creds *domain.CredentialProfile) (*ytdlp.Gateway, error) {
	gateway, err := ytdlp.NewGateway(ytdlp.SessionConfig{
		BinPath:     a.Config.Paths.YtDlp,
		Credentials: creds,
		CacheSize:   a.Config.Cache.MetadataEntries,
		Logger:      a.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gateway: %w", err)
	}
	return gateway, nil
}

// rememberYtDlpPath stores an installed yt-dlp location in the config file
func (a *App) rememberYtDlpPath(path string) error {
	if path == "" || a.Config.Paths.YtDlp == path {
		return nil
	}
	a.Config.Paths.YtDlp = path
	if err := a.Config.Save(a.fs, a.configPath); err != nil {
		return err
	}
	a.Logger.Debug("saved yt-dlp path", "path", path, "config", a.configPath)
	return nil
}

// ProgressSinks returns the per-download progress sink factory
func (a *App) ProgressSinks() ports.ProgressSinkFactory {
	return tui.ProgressSinks(a.Out, a.quiet)
}

func newLogger(w io.Writer, level string, quiet, verbose bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{Prefix: "ytbatch"})

	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	switch {
	case verbose:
		lvl = log.DebugLevel
	case quiet:
		lvl = log.ErrorLevel
	}
	logger.SetLevel(lvl)
	return logger
}
