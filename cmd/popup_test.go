package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/kernel/shorturl/internal/config"
	"github.com/kernel/shorturl/internal/popup"
	"github.com/kernel/shorturl/internal/shortener"
	"github.com/kernel/shorturl/internal/tab"
)

type FakeShortener struct {
	ShortenFunc func(ctx context.Context, fullURL string) (string, error)
}

func (f *FakeShortener) Shorten(ctx context.Context, fullURL string) (string, error) {
	if f.ShortenFunc != nil {
		return f.ShortenFunc(ctx, fullURL)
	}
	return "", errors.New("not implemented")
}

func shortensTo(short string) *FakeShortener {
	return &FakeShortener{
		ShortenFunc: func(ctx context.Context, fullURL string) (string, error) {
			return short, nil
		},
	}
}

func exampleResolver() tab.Static {
	return tab.Static{Tab: tab.Info{URL: "http://example.com", Title: "Example Domain"}}
}

func TestPopupRun_RendersAndCopies(t *testing.T) {
	setupStdoutCapture(t)

	var copied string
	view := popup.NewTerminal(false)
	view.CopyFn = func(s string) error { copied = s; return nil }

	p := PopupCmd{tabs: exampleResolver(), shortener: shortensTo("http://dwz.cn/abcde"), view: view}
	err := p.Run(context.Background(), PopupInput{})
	require.NoError(t, err)

	assert.Equal(t, "《Example Domain》\nhttp://dwz.cn/abcde", copied)
	out := outBuf.String()
	assert.Contains(t, out, "http://dwz.cn/abcde")
	assert.Contains(t, out, "Copied!")
}

func TestPopupRun_ServiceErrorStatus(t *testing.T) {
	setupStdoutCapture(t)

	fake := &FakeShortener{
		ShortenFunc: func(ctx context.Context, fullURL string) (string, error) {
			return "", &shortener.ServiceError{Status: -1, Message: "网址不能为空"}
		},
	}
	view := &popup.Headless{}
	p := PopupCmd{tabs: exampleResolver(), shortener: fake, view: view}

	err := p.Run(context.Background(), PopupInput{})
	require.Error(t, err)
	assert.Equal(t, "Get short URL error: 网址不能为空", view.State.Status)
	assert.False(t, view.State.Visible)
}

func TestPopupRun_JSONOutput(t *testing.T) {
	setupStdoutCapture(t)
	stdout := captureStdout(t)

	p := PopupCmd{tabs: exampleResolver(), shortener: shortensTo("http://dwz.cn/abcde"), view: &popup.Headless{}}
	err := p.Run(context.Background(), PopupInput{Output: "json"})
	require.NoError(t, err)

	var res popup.Result
	require.NoError(t, json.Unmarshal([]byte(stdout()), &res))
	assert.Equal(t, "http://dwz.cn/abcde", res.ShortURL)
	assert.Equal(t, "http://example.com", res.Tab.URL)
	assert.Equal(t, popup.StatusNotCopied, res.Status)
	assert.Equal(t, "done-success", res.State)
}

func TestPopupRun_NoCopy(t *testing.T) {
	for _, output := range []string{"", "json"} {
		t.Run("output="+output, func(t *testing.T) {
			setupStdoutCapture(t)
			stdout := captureStdout(t)

			p := PopupCmd{tabs: exampleResolver(), shortener: shortensTo("http://dwz.cn/abcde"), view: newPopupView(output, false)}
			require.NoError(t, p.Run(context.Background(), PopupInput{Output: output}))

			out := outBuf.String() + stdout()
			assert.Contains(t, out, "http://dwz.cn/abcde")
			assert.Contains(t, out, popup.StatusNotCopied)
			assert.NotContains(t, out, popup.StatusCopied)
		})
	}
}

func TestPopupRun_JSONOutputOnFailureStillPrints(t *testing.T) {
	setupStdoutCapture(t)
	stdout := captureStdout(t)

	p := PopupCmd{tabs: tab.Static{}, shortener: shortensTo("unused"), view: &popup.Headless{}}
	err := p.Run(context.Background(), PopupInput{Output: "json"})
	assert.ErrorIs(t, err, tab.ErrNoActiveTab)

	out := stdout()
	assert.Contains(t, out, "\"error\": \"no active tab\"")
	assert.Contains(t, out, "done-failure")
}

func TestPopupRun_OpensShortURL(t *testing.T) {
	setupStdoutCapture(t)

	var opened string
	p := PopupCmd{
		tabs:      exampleResolver(),
		shortener: shortensTo("http://dwz.cn/abcde"),
		view:      &popup.Headless{},
		openURL:   func(u string) error { opened = u; return nil },
	}
	require.NoError(t, p.Run(context.Background(), PopupInput{Open: true}))
	assert.Equal(t, "http://dwz.cn/abcde", opened)
}

func TestPopupRun_RejectsUnknownOutput(t *testing.T) {
	p := PopupCmd{tabs: exampleResolver(), shortener: shortensTo("x"), view: &popup.Headless{}}
	err := p.Run(context.Background(), PopupInput{Output: "yaml"})
	assert.Error(t, err)
}

func TestNewResolver(t *testing.T) {
	keyring.MockInit()

	c := config.Default()
	r, err := newResolver(c, tab.Info{})
	require.NoError(t, err)
	assert.IsType(t, &tab.DevTools{}, r)

	c.Source = config.SourceStatic
	r, err = newResolver(c, tab.Info{URL: "http://example.com"})
	require.NoError(t, err)
	assert.Equal(t, tab.Static{Tab: tab.Info{URL: "http://example.com"}}, r)

	c.Source = config.SourceKernel
	_, err = newResolver(c, tab.Info{})
	require.Error(t, err)

	c.KernelAPIKey = "sk_test"
	c.KernelBrowserID = "abc123"
	r, err = newResolver(c, tab.Info{})
	require.NoError(t, err)
	assert.IsType(t, &tab.Kernel{}, r)
}
