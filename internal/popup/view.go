package popup

import "errors"

// Level tells a view how to style a status line.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

// ErrNothingSelected is returned by Copy when the short URL field has no selection.
var ErrNothingSelected = errors.New("nothing selected")

// ErrCopyDisabled is returned by Copy when the view has no clipboard.
var ErrCopyDisabled = errors.New("copy disabled")

// View is the surface a popup renders to: a status line and a short URL field.
type View interface {
	// RenderStatus replaces the status line.
	RenderStatus(level Level, text string)
	// RenderShortURL fills the short URL field, shows it and selects its content.
	RenderShortURL(content string)
	// Copy puts the current selection on the clipboard.
	Copy() error
}

// DisplayState is what a view currently shows.
type DisplayState struct {
	Status      string `json:"status"`
	StatusLevel Level  `json:"-"`
	ShortURL    string `json:"short_url,omitempty"`
	Visible     bool   `json:"visible"`
	Selected    bool   `json:"selected"`
}

// CopyFunc writes text to a clipboard.
type CopyFunc func(text string) error

// Headless keeps display state without drawing anything.
type Headless struct {
	State DisplayState
	// CopyFn receives the selection on Copy. Nil disables copying.
	CopyFn CopyFunc
	// Copied holds the last text handed to CopyFn.
	Copied string
}

func (h *Headless) RenderStatus(level Level, text string) {
	h.State.Status = text
	h.State.StatusLevel = level
}

func (h *Headless) RenderShortURL(content string) {
	h.State.ShortURL = content
	h.State.Visible = true
	h.State.Selected = true
}

func (h *Headless) Copy() error {
	if !h.State.Selected {
		return ErrNothingSelected
	}
	if h.CopyFn == nil {
		return ErrCopyDisabled
	}
	if err := h.CopyFn(h.State.ShortURL); err != nil {
		return err
	}
	h.Copied = h.State.ShortURL
	return nil
}
