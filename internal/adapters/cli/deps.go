package cli

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/devbush/ytbatch/internal/adapters/cli/tui"
	"github.com/devbush/ytbatch/internal/domain"
)

// NewDepsCmd creates the deps subcommand
func NewDepsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deps",
		Short: "Manage dependencies (yt-dlp)",
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show dependency status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDepsStatus(cmd, opts)
		},
	}

	updateCmd := &cobra.Command{
		Use:   "update",
		Short: "Update yt-dlp to latest version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDepsUpdate(cmd, opts)
		},
	}

	installCmd := &cobra.Command{
		Use:   "install",
		Short: "Install yt-dlp",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDepsInstall(cmd, opts)
		},
	}

	cmd.AddCommand(statusCmd, updateCmd, installCmd)
	return cmd
}

func newDepsApp(cmd *cobra.Command, opts *rootOptions) (*App, error) {
	return NewApp(afero.NewOsFs(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

func runDepsStatus(cmd *cobra.Command, opts *rootOptions) error {
	app, err := newDepsApp(cmd, opts)
	if err != nil {
		return err
	}
	gateway, err := app.NewGateway(nil)
	if err != nil {
		return err
	}

	out := app.Out
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Dependency Status:")
	fmt.Fprintln(out)

	if !gateway.IsAvailable() {
		fmt.Fprintln(out, "  yt-dlp:   not found")
		fmt.Fprintln(out)
		return nil
	}

	path := gateway.GetBinaryPath()
	size := ""
	if info, err := os.Stat(path); err == nil {
		size = ", " + tui.FormatBytes(info.Size())
	}
	version, err := gateway.Version(cmd.Context())
	if err != nil {
		app.Logger.Warn("could not read yt-dlp version", "error", err)
		version = "unknown version"
	}
	fmt.Fprintf(out, "  yt-dlp:   %s (%s%s)\n", version, path, size)
	fmt.Fprintln(out)

	return nil
}

func runDepsUpdate(cmd *cobra.Command, opts *rootOptions) error {
	app, err := newDepsApp(cmd, opts)
	if err != nil {
		return err
	}
	gateway, err := app.NewGateway(nil)
	if err != nil {
		return err
	}

	if !gateway.IsAvailable() {
		return fmt.Errorf("%w: run 'ytbatch deps install' first", domain.ErrYtDlpNotFound)
	}

	app.Console.Info("Updating yt-dlp...")
	if err := gateway.Update(cmd.Context()); err != nil {
		return err
	}

	app.Console.Success("yt-dlp updated")
	return nil
}

func runDepsInstall(cmd *cobra.Command, opts *rootOptions) error {
	app, err := newDepsApp(cmd, opts)
	if err != nil {
		return err
	}
	gateway, err := app.NewGateway(nil)
	if err != nil {
		return err
	}

	if gateway.IsAvailable() {
		app.Console.Info("yt-dlp is already installed (%s)", gateway.GetBinaryPath())
		return nil
	}

	if err := ensureYtDlp(cmd.Context(), app, gateway); err != nil {
		return err
	}

	app.Console.Success("yt-dlp installed")
	return nil
}
