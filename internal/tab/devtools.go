package tab

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/samber/lo"
)

// DefaultDevToolsURL is where Chrome listens when started with
// --remote-debugging-port=9222.
const DefaultDevToolsURL = "http://127.0.0.1:9222"

// Target is one entry of the DevTools /json/list endpoint.
type Target struct {
	ID                   string `json:"id"`
	Type                 string `json:"type"`
	Title                string `json:"title"`
	URL                  string `json:"url"`
	WebSocketDebuggerURL string `json:"webSocketDebuggerUrl,omitempty"`
}

// internal pages are never the tab a user wants to share
var internalSchemes = []string{"devtools://", "chrome-extension://", "chrome://"}

// DevTools reads tabs from a Chrome remote debugging endpoint. Chrome lists
// page targets most recently focused first, so the head of the list is the
// active tab. DevTools has no notion of windows; CurrentWindow is ignored.
type DevTools struct {
	http    *resty.Client
	baseURL string
}

// NewDevTools returns a resolver for the endpoint at baseURL.
func NewDevTools(baseURL string, timeout time.Duration) *DevTools {
	if baseURL == "" {
		baseURL = DefaultDevToolsURL
	}
	c := resty.New()
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	return &DevTools{http: c, baseURL: strings.TrimRight(baseURL, "/")}
}

// BaseURL returns the DevTools endpoint address.
func (d *DevTools) BaseURL() string { return d.baseURL }

// Targets returns every target the browser reports, including workers and
// extension pages.
func (d *DevTools) Targets(ctx context.Context) ([]Target, error) {
	resp, err := d.http.R().SetContext(ctx).Get(d.baseURL + "/json/list")
	if err != nil {
		return nil, fmt.Errorf("failed to reach devtools at %s: %w", d.baseURL, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("devtools request failed: %s", resp.Status())
	}
	var targets []Target
	if err := json.Unmarshal(resp.Body(), &targets); err != nil {
		return nil, fmt.Errorf("invalid devtools response: %w", err)
	}
	return targets, nil
}

func (d *DevTools) Query(ctx context.Context, q Query) ([]Info, error) {
	targets, err := d.Targets(ctx)
	if err != nil {
		return nil, err
	}
	tabs := lo.FilterMap(targets, func(t Target, _ int) (Info, bool) {
		return Info{ID: t.ID, URL: t.URL, Title: t.Title}, IsUserPage(t)
	})
	if q.Active && len(tabs) > 1 {
		tabs = tabs[:1]
	}
	return tabs, nil
}

// IsUserPage reports whether t is a regular page rather than browser chrome.
func IsUserPage(t Target) bool {
	if t.Type != "page" {
		return false
	}
	return !lo.SomeBy(internalSchemes, func(scheme string) bool {
		return strings.HasPrefix(t.URL, scheme)
	})
}
