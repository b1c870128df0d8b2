package cmd

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/kernel/shorturl/internal/tab"
	"github.com/kernel/shorturl/pkg/table"
	"github.com/kernel/shorturl/pkg/util"
)

var tabsCmd = &cobra.Command{
	Use:   "tabs",
	Short: "List the tabs Chrome reports over remote debugging",
	Long: `List the page targets of the Chrome instance at --devtools. The first
page is the one shorturl treats as active. Use --all to include workers,
extension pages and DevTools windows.`,
	Args: cobra.NoArgs,
	RunE: runTabs,
}

func init() {
	tabsCmd.Flags().Bool("all", false, "Include non-page and internal targets")
	tabsCmd.Flags().StringP("output", "o", "", "Output format: json for raw response")
}

// TargetLister defines the subset of the DevTools resolver that we use.
type TargetLister interface {
	Targets(ctx context.Context) ([]tab.Target, error)
}

// TabsCmd lists browser targets independent of cobra.
type TabsCmd struct {
	targets TargetLister
}

type TabsInput struct {
	All    bool
	Output string
}

func (c TabsCmd) List(ctx context.Context, in TabsInput) error {
	if in.Output != "" && in.Output != "json" {
		return fmt.Errorf("unsupported --output value: use 'json'")
	}

	targets, err := c.targets.Targets(ctx)
	if err != nil {
		return err
	}
	if !in.All {
		targets = lo.Filter(targets, func(t tab.Target, _ int) bool { return tab.IsUserPage(t) })
	}

	if in.Output == "json" {
		return util.PrintPrettyJSONSlice(targets)
	}

	if len(targets) == 0 {
		pterm.Info.Println("No tabs found")
		return nil
	}

	_, activeIdx, found := lo.FindIndexOf(targets, func(t tab.Target) bool { return tab.IsUserPage(t) })
	rows := pterm.TableData{{"", "ID", "Type", "Title", "URL"}}
	for i, t := range targets {
		marker := ""
		if found && i == activeIdx {
			marker = "*"
		}
		rows = append(rows, []string{marker, t.ID, t.Type, util.Truncate(util.OrDash(t.Title), 40), util.Truncate(t.URL, 80)})
	}
	table.PrintTableNoPad(rows, true)
	if found {
		pterm.Println()
		pterm.Info.Println("* marks the tab shorturl would shorten")
	}
	return nil
}

func runTabs(cmd *cobra.Command, args []string) error {
	all, _ := cmd.Flags().GetBool("all")
	output, _ := cmd.Flags().GetString("output")

	c := TabsCmd{targets: tab.NewDevTools(cfg.DevToolsURL, cfg.Timeout)}
	return c.List(cmd.Context(), TabsInput{All: all, Output: output})
}
