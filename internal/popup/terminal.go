package popup

import (
	"os"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/pterm/pterm"
	"golang.org/x/term"
)

var (
	plainFieldStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
	fieldStyle = plainFieldStyle.BorderForeground(lipgloss.Color("63"))
)

// Terminal draws the popup with pterm and copies through the system clipboard.
type Terminal struct {
	Headless
	// Color enables the colored field border. pterm.DisableStyling overrides it.
	Color bool
}

// NewTerminal returns a terminal view. With copyEnabled false the clipboard
// is left untouched.
func NewTerminal(copyEnabled bool) *Terminal {
	t := &Terminal{Color: term.IsTerminal(int(os.Stdout.Fd()))}
	if copyEnabled {
		t.CopyFn = clipboard.WriteAll
	}
	return t
}

func (t *Terminal) RenderStatus(level Level, text string) {
	t.Headless.RenderStatus(level, text)
	switch level {
	case LevelSuccess:
		pterm.Success.Println(text)
	case LevelError:
		pterm.Error.Println(text)
	default:
		pterm.Info.Println(text)
	}
}

func (t *Terminal) RenderShortURL(content string) {
	t.Headless.RenderShortURL(content)
	style := plainFieldStyle
	if t.Color && !pterm.RawOutput {
		style = fieldStyle
	}
	pterm.Println(style.Render(content))
}
