// Package tab resolves the browser tab the user is looking at.
package tab

import (
	"context"
	"errors"
)

// ErrNoActiveTab is returned when a query matches no tab.
var ErrNoActiveTab = errors.New("no active tab")

// Info describes a browser tab. Only URL and Title are consumed downstream.
type Info struct {
	ID    string `json:"id,omitempty"`
	URL   string `json:"url"`
	Title string `json:"title"`
}

// Query filters tabs the way a browser tab query does.
type Query struct {
	Active        bool
	CurrentWindow bool
}

// ActiveQuery matches the focused tab of the focused window.
func ActiveQuery() Query {
	return Query{Active: true, CurrentWindow: true}
}

// Resolver lists the tabs matching a query, most recently focused first.
type Resolver interface {
	Query(ctx context.Context, q Query) ([]Info, error)
}

// Active returns the single active tab known to r.
func Active(ctx context.Context, r Resolver) (Info, error) {
	tabs, err := r.Query(ctx, ActiveQuery())
	if err != nil {
		return Info{}, err
	}
	if len(tabs) == 0 {
		return Info{}, ErrNoActiveTab
	}
	return tabs[0], nil
}
