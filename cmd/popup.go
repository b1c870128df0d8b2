package cmd

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/pkg/browser"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/kernel/shorturl/internal/config"
	"github.com/kernel/shorturl/internal/popup"
	"github.com/kernel/shorturl/internal/shortener"
	"github.com/kernel/shorturl/internal/tab"
	"github.com/kernel/shorturl/pkg/util"
)

var popupCmd = &cobra.Command{
	Use:   "popup",
	Short: "Shorten the active tab's URL and copy it",
	Long: `Resolve the active browser tab, submit its URL to the shortening service,
show the result and copy "《title》" plus the short link to the clipboard.

This is what running shorturl without a subcommand does.`,
	Example: `  shorturl popup
  shorturl popup --source static --url https://example.com --title Example
  shorturl popup --no-copy -o json`,
	Args: cobra.NoArgs,
	RunE: runPopup,
}

func init() {
	addPopupFlags(popupCmd)
}

func addPopupFlags(c *cobra.Command) {
	c.Flags().String("source", config.SourceDevTools, "Where to read the active tab from: devtools, kernel or static (env: SHORTURL_SOURCE)")
	c.Flags().String("url", "", "Tab URL for --source static")
	c.Flags().String("title", "", "Tab title for --source static")
	c.Flags().Bool("no-copy", false, "Do not copy the result to the clipboard (env: SHORTURL_COPY=false)")
	c.Flags().Bool("open", false, "Open the short URL in the default browser")
	c.Flags().StringP("output", "o", "", "Output format: json for raw response")
}

// PopupCmd runs one popup invocation independent of cobra.
type PopupCmd struct {
	tabs      tab.Resolver
	shortener popup.Shortener
	view      popup.View
	openURL   func(url string) error
}

type PopupInput struct {
	Output string
	Open   bool
}

func (p PopupCmd) Run(ctx context.Context, in PopupInput) error {
	if in.Output != "" && in.Output != "json" {
		return fmt.Errorf("unsupported --output value: use 'json'")
	}

	res, err := popup.New(p.tabs, p.shortener, p.view).Run(ctx)
	if ctx.Err() != nil {
		return ctx.Err()
	}

	if in.Output == "json" {
		if printErr := util.PrintPrettyJSON(res); printErr != nil {
			return printErr
		}
		return err
	}
	if err != nil {
		return err
	}

	if in.Open && p.openURL != nil {
		if err := p.openURL(res.ShortURL); err != nil {
			pterm.Warning.Printf("Could not open browser: %v\n", err)
		}
	}
	return nil
}

func runPopup(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	open, _ := cmd.Flags().GetBool("open")
	tabURL, _ := cmd.Flags().GetString("url")
	title, _ := cmd.Flags().GetString("title")

	if tabURL != "" && !cmd.Flags().Changed("source") {
		cfg.Source = config.SourceStatic
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	resolver, err := newResolver(cfg, tab.Info{URL: tabURL, Title: title})
	if err != nil {
		return err
	}

	pterm.Debug.Printf("Reading active tab from %s\n", cfg.Source)
	view := newPopupView(output, cfg.CopyToClipboard)

	p := PopupCmd{
		tabs:      resolver,
		shortener: newShortener(cfg),
		view:      view,
		openURL:   browser.OpenURL,
	}
	return p.Run(cmd.Context(), PopupInput{Output: output, Open: open})
}

// newPopupView draws to the terminal unless output is json. Without
// copyEnabled the view has no clipboard and the popup reports the copy as
// skipped.
func newPopupView(output string, copyEnabled bool) popup.View {
	if output != "json" {
		return popup.NewTerminal(copyEnabled)
	}
	h := &popup.Headless{}
	if copyEnabled {
		h.CopyFn = clipboard.WriteAll
	}
	return h
}

func newShortener(c *config.Config) *shortener.Client {
	return shortener.NewClient(c.Endpoint,
		shortener.WithService(c.Service),
		shortener.WithTimeout(c.Timeout),
	)
}

func newResolver(c *config.Config, static tab.Info) (tab.Resolver, error) {
	switch c.Source {
	case config.SourceStatic:
		return tab.Static{Tab: static}, nil
	case config.SourceKernel:
		client, err := getKernelClient(c)
		if err != nil {
			return nil, err
		}
		pw := client.Browsers.Playwright
		return tab.NewKernel(&pw, c.KernelBrowserID), nil
	default:
		return tab.NewDevTools(c.DevToolsURL, c.Timeout), nil
	}
}
