// Package cmd holds the shorturl command tree.
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/kernel/shorturl/internal/config"
)

// Metadata is set at build time.
type Metadata struct {
	Version string
	Commit  string
	Date    string
}

var metadata = Metadata{Version: "dev", Commit: "none", Date: "unknown"}

// cfg is loaded before any command runs.
var cfg = config.Default()

var rootCmd = &cobra.Command{
	Use:   "shorturl",
	Short: "Shorten the URL of your active browser tab",
	Long: `Reads the URL of the active browser tab, shortens it with a dwz.cn
compatible service and copies the short link to the clipboard.

Tabs are read from Chrome's remote debugging endpoint by default
(start Chrome with --remote-debugging-port=9222), from a Kernel cloud browser
with --source kernel, or taken from --url with --source static.`,
	Example: `  # Shorten the active tab of a local Chrome
  shorturl

  # Shorten the active tab of a Kernel browser
  shorturl --source kernel --browser abc123

  # Shorten a URL without a browser
  shorturl shorten https://example.com/some/long/path`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	RunE:              runPopup,
}

func init() {
	config.RegisterFlags(rootCmd.PersistentFlags())
	addPopupFlags(rootCmd)

	rootCmd.AddCommand(popupCmd)
	rootCmd.AddCommand(shortenCmd)
	rootCmd.AddCommand(tabsCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(stubCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(upgradeCmd)
}

func loadConfig(cmd *cobra.Command, args []string) error {
	envFile, _ := cmd.Flags().GetString("env-file")
	loaded, err := config.Load(envFile)
	if err != nil {
		return err
	}
	if err := loaded.ApplyFlags(cmd.Flags()); err != nil {
		return err
	}
	if loaded.Debug {
		pterm.EnableDebugMessages()
	}
	pterm.Debug.Printf("config: endpoint=%s source=%s devtools=%s timeout=%s\n",
		loaded.Endpoint, loaded.Source, loaded.DevToolsURL, loaded.Timeout)
	cfg = loaded
	return nil
}

// Execute runs the root command with the given build metadata.
func Execute(m Metadata) {
	metadata = m

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := fang.Execute(ctx, rootCmd,
		fang.WithVersion(m.Version),
		fang.WithCommit(m.Commit),
	); err != nil {
		cancel()
		os.Exit(1)
	}
}
