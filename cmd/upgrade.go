package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/kernel/shorturl/pkg/update"
)

var upgradeCmd = &cobra.Command{
	Use:     "upgrade",
	Aliases: []string{"update"},
	Short:   "Upgrade shorturl to the latest release",
	Long: `Compare this build with the latest GitHub release and upgrade through
the package manager that installed it (Homebrew or go install). Other
installs get download instructions instead.`,
	Args: cobra.NoArgs,
	RunE: runUpgrade,
}

func init() {
	upgradeCmd.Flags().Bool("dry-run", false, "Print the upgrade command instead of running it")
}

// ErrUnknownInstallMethod is returned when the binary was not installed by a
// package manager shorturl knows how to drive.
var ErrUnknownInstallMethod = errors.New("could not detect installation method")

// UpgradeCmd checks for and installs a newer release independent of cobra.
type UpgradeCmd struct {
	current     string
	fetchLatest func(ctx context.Context) (tag string, url string, err error)
	detect      func() (update.InstallMethod, string)
	run         func(ctx context.Context, argv []string) error
}

type UpgradeInput struct {
	DryRun bool
}

func (u UpgradeCmd) Upgrade(ctx context.Context, in UpgradeInput) error {
	pterm.Info.Println("Checking for updates...")

	latest, notesURL, err := u.fetchLatest(ctx)
	if err != nil {
		return fmt.Errorf("failed to check for updates: %w", err)
	}

	current := strings.TrimPrefix(u.current, "v")
	newer, err := update.IsNewerVersion(u.current, latest)
	switch {
	case err != nil:
		// dev builds carry no comparable version
		pterm.Warning.Printf("Could not compare %s with %s: %v\n", u.current, latest, err)
	case !newer:
		pterm.Success.Printf("shorturl %s is the latest release\n", current)
		return nil
	default:
		pterm.Info.Printf("shorturl %s is available (you have %s)\n", strings.TrimPrefix(latest, "v"), current)
		if notesURL != "" {
			pterm.Info.Printf("Release notes: %s\n", notesURL)
		}
	}

	method, binaryPath := u.detect()
	if method == update.InstallMethodUnknown {
		printManualUpgradeInstructions(latest, binaryPath)
		return ErrUnknownInstallMethod
	}

	command := update.SuggestUpgradeCommand(method)
	if in.DryRun {
		pterm.Info.Printf("Would run: %s\n", command)
		return nil
	}
	pterm.Info.Printf("Running: %s\n", command)
	return u.run(ctx, strings.Fields(command))
}

func execCommand(ctx context.Context, argv []string) error {
	c := exec.CommandContext(ctx, argv[0], argv[1:]...)
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	c.Stdin = os.Stdin
	return c.Run()
}

func printManualUpgradeInstructions(tag, binaryPath string) {
	version := strings.TrimPrefix(tag, "v")
	archive := fmt.Sprintf("https://github.com/kernel/shorturl/releases/download/v%s/shorturl_%s_%s_%s.tar.gz",
		version, version, runtime.GOOS, runtime.GOARCH)
	if binaryPath == "" {
		binaryPath = "/usr/local/bin/shorturl"
	}

	pterm.Warning.Println("shorturl was not installed with Homebrew or go install.")
	pterm.Info.Println("Replace the binary by hand:")
	pterm.Println()
	pterm.Printf("  curl -fsSL %s | tar -xz -C /tmp shorturl\n", archive)
	pterm.Printf("  sudo install /tmp/shorturl %s\n", binaryPath)
	pterm.Println()
}

func runUpgrade(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Minute)
	defer cancel()

	u := UpgradeCmd{
		current:     metadata.Version,
		fetchLatest: update.FetchLatest,
		detect:      update.DetectInstallMethod,
		run:         execCommand,
	}
	return u.Upgrade(ctx, UpgradeInput{DryRun: dryRun})
}
