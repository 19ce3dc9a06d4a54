package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/devbush/ytbatch/internal/adapters/ytdlp"
	"github.com/devbush/ytbatch/internal/application"
	"github.com/devbush/ytbatch/internal/config"
	"github.com/devbush/ytbatch/internal/domain"
	"github.com/devbush/ytbatch/internal/ports"
)

type rootOptions struct {
	configPath string
	quiet      bool
	verbose    bool
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "ytbatch",
		Short: "Download a playlist range in one quality",
		Long: `ytbatch downloads a range of videos from a playlist.

The quality is picked once from a sample video and applied to every
video of the range. Videos lacking that quality can be downloaded in a
second quality afterwards.

All answers are given interactively.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp(afero.NewOsFs(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return fmt.Errorf("failed to initialize: %w", err)
			}
			return runBatch(cmd.Context(), app, cmd.InOrStdin())
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (default ~/.ytbatch/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Show debug logging")

	rootCmd.AddCommand(NewDepsCmd(opts))

	return rootCmd
}

func runBatch(ctx context.Context, app *App, in io.Reader) error {
	prompter := NewPrompter(in, app.Out)

	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	session, creds, err := gatherSession(prompter, app.Config, cwd)
	if err != nil {
		return err
	}

	gateway, err := app.NewGateway(creds)
	if err != nil {
		return err
	}
	if err := ensureYtDlp(ctx, app, gateway); err != nil {
		return err
	}

	ranges, err := application.ParseRangePolicy(app.Config.Defaults.RangeParsing)
	if err != nil {
		return err
	}

	svc := application.NewDownloadService(gateway, prompter, app.Console, ranges, app.ProgressSinks(), app.Logger)
	report, err := svc.Run(ctx, session)
	app.Console.Summary(report)
	if err != nil {
		return err
	}
	if report.Empty {
		return nil
	}

	if n := len(report.Failed); n > 0 {
		return fmt.Errorf("%d of %d downloads failed", n, n+len(report.Downloaded))
	}
	app.Console.Success("Done")
	return nil
}

// gatherSession asks for the run parameters that precede the playlist lookup
func gatherSession(p ports.Prompter, cfg *config.Config, cwd string) (application.Session, *domain.CredentialProfile, error) {
	session := application.Session{
		Sampling: domain.FirstEntryOfRange(),
		Template: domain.OutputTemplate(cfg.Defaults.OutputTemplate),
		OnError:  cfg.FailurePolicy(),
	}

	url, err := p.PromptText("Enter the playlist URL:", "")
	if err != nil {
		return session, nil, err
	}
	if url == "" {
		return session, nil, errors.New("a playlist URL is required")
	}
	session.PlaylistURL = url

	if cfg.SamplingKind() == domain.SampleExplicitURL {
		sample, err := p.PromptText("Enter a video URL to list the available qualities (default first video of the range):", "")
		if err != nil {
			return session, nil, err
		}
		if sample != "" {
			session.Sampling = domain.ExplicitSampleURL(sample)
		}
	}

	var creds *domain.CredentialProfile
	if browser := cfg.Credentials.Browser; browser != "" {
		profile, err := p.PromptText(fmt.Sprintf("Enter the %s profile to read cookies from (default Default):", browser), "Default")
		if err != nil {
			return session, nil, err
		}
		creds = &domain.CredentialProfile{Browser: browser, Profile: profile}
	}

	dir, err := p.PromptText("Enter the output directory (default current directory):", cwd)
	if err != nil {
		return session, nil, err
	}
	session.OutputDir = dir

	return session, creds, nil
}

// ensureYtDlp installs yt-dlp into the bin directory when it cannot be found
func ensureYtDlp(ctx context.Context, app *App, gateway *ytdlp.Gateway) error {
	if gateway.IsAvailable() {
		return nil
	}

	app.Console.Info("yt-dlp not found, installing...")
	sink := app.ProgressSinks()()
	err := gateway.Install(ctx, func(downloaded, total int64) {
		sink.OnProgress(domain.ProgressEvent{Status: domain.StatusDownloading, DownloadedBytes: downloaded, TotalBytes: total})
	})
	if err != nil {
		sink.OnProgress(domain.ProgressEvent{Status: domain.StatusError})
		return fmt.Errorf("failed to install yt-dlp: %w", err)
	}
	sink.OnProgress(domain.ProgressEvent{Status: domain.StatusFinished})

	if err := app.rememberYtDlpPath(gateway.GetBinaryPath()); err != nil {
		app.Logger.Warn("could not save yt-dlp path", "error", err)
	}
	return nil
}

// Execute runs the CLI
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := NewRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
