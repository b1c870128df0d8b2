// Package popup runs the shorten-the-current-tab workflow: resolve the active
// tab, shorten its URL, then show and copy the result.
package popup

import (
	"context"
	"errors"
	"fmt"

	"github.com/kernel/shorturl/internal/tab"
)

// Status lines shown by the popup.
const (
	StatusShortening = "Shortening URL ..."
	StatusCopied     = "Copied!"
	StatusNotCopied  = "Copy skipped"
)

// State is the popup's position in its lifecycle.
type State int

const (
	StateIdle State = iota
	StateResolvingTab
	StateShortening
	StateDoneSuccess
	StateDoneFailure
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateResolvingTab:
		return "resolving-tab"
	case StateShortening:
		return "shortening"
	case StateDoneSuccess:
		return "done-success"
	case StateDoneFailure:
		return "done-failure"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Shortener turns a long URL into a short one.
type Shortener interface {
	Shorten(ctx context.Context, fullURL string) (string, error)
}

// Result summarises one popup run.
type Result struct {
	Tab      tab.Info `json:"tab"`
	ShortURL string   `json:"short_url,omitempty"`
	Field    string   `json:"field,omitempty"`
	Status   string   `json:"status"`
	State    string   `json:"state"`
	Error    string   `json:"error,omitempty"`
}

// Popup is a single invocation. It is not reusable.
type Popup struct {
	tabs      tab.Resolver
	shortener Shortener
	view      View
	state     State
}

// New returns an idle popup.
func New(tabs tab.Resolver, shortener Shortener, view View) *Popup {
	return &Popup{tabs: tabs, shortener: shortener, view: view}
}

// State returns the current lifecycle state.
func (p *Popup) State() State { return p.state }

// FormatField builds the short URL field content: the title in guillemets,
// a newline, then the short URL.
func FormatField(title, shortURL string) string {
	return "《" + title + "》\n" + shortURL
}

// Run resolves the active tab, then shortens its URL. The two steps never
// overlap. If ctx is cancelled while a step is in flight the popup is treated
// as closed: nothing more is rendered and ctx.Err() is returned.
func (p *Popup) Run(ctx context.Context) (Result, error) {
	var res Result
	if p.state != StateIdle {
		return res, fmt.Errorf("popup already ran (%s)", p.state)
	}

	p.state = StateResolvingTab
	info, err := tab.Active(ctx, p.tabs)
	if ctx.Err() != nil {
		return res, ctx.Err()
	}
	if err != nil {
		return p.fail(res, "Get active tab error: "+err.Error(), err)
	}
	res.Tab = info

	p.state = StateShortening
	p.view.RenderStatus(LevelInfo, StatusShortening)
	shortURL, err := p.shortener.Shorten(ctx, info.URL)
	if ctx.Err() != nil {
		return res, ctx.Err()
	}
	if err != nil {
		return p.fail(res, "Get short URL error: "+err.Error(), err)
	}

	res.ShortURL = shortURL
	res.Field = FormatField(info.Title, shortURL)
	p.view.RenderShortURL(res.Field)

	// The short URL is already on screen; a clipboard failure only changes the status.
	status, level := StatusCopied, LevelSuccess
	if err := p.view.Copy(); errors.Is(err, ErrCopyDisabled) {
		status, level = StatusNotCopied, LevelInfo
	} else if err != nil {
		status, level = "Copy to clipboard failed: "+err.Error(), LevelError
	}
	p.view.RenderStatus(level, status)

	p.state = StateDoneSuccess
	res.Status = status
	res.State = p.state.String()
	return res, nil
}

func (p *Popup) fail(res Result, status string, err error) (Result, error) {
	p.view.RenderStatus(LevelError, status)
	p.state = StateDoneFailure
	res.Status = status
	res.State = p.state.String()
	res.Error = err.Error()
	return res, err
}
