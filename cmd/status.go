package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/kernel/shorturl/internal/config"
	"github.com/kernel/shorturl/internal/popup"
	"github.com/kernel/shorturl/internal/shortener"
	"github.com/kernel/shorturl/internal/tab"
	"github.com/kernel/shorturl/pkg/util"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check that the shortening service and the browser can be reached",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().StringP("output", "o", "", "Output format (json)")
}

type statusComponent struct {
	Name   string `json:"name"`
	Target string `json:"target"`
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type statusResponse struct {
	Status     string            `json:"status"`
	Components []statusComponent `json:"components"`
}

// StatusCmd probes the collaborators a popup run depends on.
type StatusCmd struct {
	shortener popup.Shortener
	endpoint  string
	targets   TargetLister
	devtools  string
}

type StatusInput struct {
	Output string
}

func (c StatusCmd) Check(ctx context.Context, in StatusInput) error {
	if in.Output != "" && in.Output != "json" {
		return fmt.Errorf("unsupported --output value: use 'json'")
	}

	components := []statusComponent{c.checkShortener(ctx)}
	if c.targets != nil {
		components = append(components, c.checkDevTools(ctx))
	}

	resp := statusResponse{Status: "operational", Components: components}
	if lo.SomeBy(components, func(s statusComponent) bool { return s.Status != "operational" }) {
		resp.Status = "degraded"
	}
	if lo.EveryBy(components, func(s statusComponent) bool { return s.Status == "unreachable" }) {
		resp.Status = "unreachable"
	}

	if in.Output == "json" {
		return util.PrintPrettyJSON(resp)
	}
	printStatus(resp)
	return nil
}

// An empty URL makes the service answer with an error message without
// creating a link, which is enough to prove it is up.
func (c StatusCmd) checkShortener(ctx context.Context) statusComponent {
	comp := statusComponent{Name: "Shortening service", Target: c.endpoint}
	_, err := c.shortener.Shorten(ctx, "")

	var netErr *shortener.NetworkError
	var svcErr *shortener.ServiceError
	switch {
	case err == nil || errors.As(err, &svcErr):
		comp.Status = "operational"
	case errors.As(err, &netErr):
		comp.Status = "unreachable"
		if netErr.Err != nil {
			comp.Detail = netErr.Err.Error()
		}
	default:
		comp.Status = "degraded"
		comp.Detail = err.Error()
	}
	return comp
}

func (c StatusCmd) checkDevTools(ctx context.Context) statusComponent {
	comp := statusComponent{Name: "Chrome DevTools", Target: c.devtools}
	targets, err := c.targets.Targets(ctx)
	if err != nil {
		comp.Status = "unreachable"
		comp.Detail = err.Error()
		return comp
	}
	pages := lo.CountBy(targets, func(t tab.Target) bool { return tab.IsUserPage(t) })
	comp.Status = "operational"
	comp.Detail = fmt.Sprintf("%d open tab(s)", pages)
	if pages == 0 {
		comp.Status = "degraded"
	}
	return comp
}

var statusDisplay = map[string]struct {
	label string
	rgb   pterm.RGB
}{
	"operational": {label: "Operational", rgb: pterm.NewRGB(31, 163, 130)},
	"degraded":    {label: "Degraded", rgb: pterm.NewRGB(245, 158, 11)},
	"unreachable": {label: "Unreachable", rgb: pterm.NewRGB(239, 68, 68)},
}

func getStatusDisplay(status string) (string, pterm.RGB) {
	if d, ok := statusDisplay[status]; ok {
		return d.label, d.rgb
	}
	return "Unknown", pterm.NewRGB(128, 128, 128)
}

func coloredDot(rgb pterm.RGB) string {
	return rgb.Sprint("●")
}

func printStatus(resp statusResponse) {
	label, rgb := getStatusDisplay(resp.Status)
	pterm.Println()
	pterm.Println("  " + fmt.Sprintf("shorturl status: %s", rgb.Sprint(label)))
	pterm.Println()
	for _, comp := range resp.Components {
		compLabel, compColor := getStatusDisplay(comp.Status)
		pterm.Printf("    %s %-20s %-12s %s\n", coloredDot(compColor), comp.Name, compLabel, comp.Target)
		if comp.Detail != "" {
			pterm.Printf("      %s\n", comp.Detail)
		}
	}
	pterm.Println()
}

func runStatus(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")

	c := StatusCmd{
		shortener: newShortener(cfg),
		endpoint:  cfg.Endpoint,
	}
	if cfg.Source == config.SourceDevTools {
		c.targets = tab.NewDevTools(cfg.DevToolsURL, cfg.Timeout)
		c.devtools = cfg.DevToolsURL
	}
	return c.Check(cmd.Context(), StatusInput{Output: output})
}
