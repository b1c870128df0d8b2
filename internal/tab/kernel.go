package tab

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/kernel/kernel-go-sdk"
	"github.com/kernel/kernel-go-sdk/option"
)

// Executed via Kernel's Playwright execution API; returns {tabs: [{url, title}]}.
//
//go:embed scripts/active_tabs.js
var activeTabsScript string

// PlaywrightService defines the subset of the Kernel SDK browser Playwright client that we use.
type PlaywrightService interface {
	Execute(ctx context.Context, id string, body kernel.BrowserPlaywrightExecuteParams, opts ...option.RequestOption) (res *kernel.BrowserPlaywrightExecuteResponse, err error)
}

// Kernel reads tabs from a Kernel cloud browser.
type Kernel struct {
	svc        PlaywrightService
	browserID  string
	timeoutSec int64
}

// NewKernel returns a resolver for the browser session browserID.
func NewKernel(svc PlaywrightService, browserID string) *Kernel {
	return &Kernel{svc: svc, browserID: browserID, timeoutSec: 30}
}

type kernelTabsResult struct {
	Tabs []Info `json:"tabs"`
}

func (k *Kernel) Query(ctx context.Context, q Query) ([]Info, error) {
	if k.browserID == "" {
		return nil, fmt.Errorf("kernel browser id is required")
	}

	result, err := k.svc.Execute(ctx, k.browserID, kernel.BrowserPlaywrightExecuteParams{
		Code:       activeTabsScript,
		TimeoutSec: kernel.Opt(k.timeoutSec),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query tabs: %w", err)
	}
	if !result.Success {
		if result.Error != "" {
			return nil, fmt.Errorf("tab query failed: %s", result.Error)
		}
		return nil, fmt.Errorf("tab query failed")
	}

	var parsed kernelTabsResult
	if result.Result != nil {
		resultBytes, err := json.Marshal(result.Result)
		if err != nil {
			return nil, fmt.Errorf("failed to parse result: %w", err)
		}
		if err := json.Unmarshal(resultBytes, &parsed); err != nil {
			return nil, fmt.Errorf("failed to parse tabs: %w", err)
		}
	}

	tabs := make([]Info, 0, len(parsed.Tabs))
	for _, t := range parsed.Tabs {
		if t.URL != "" {
			tabs = append(tabs, t)
		}
	}
	if q.Active && len(tabs) > 1 {
		tabs = tabs[:1]
	}
	return tabs, nil
}
