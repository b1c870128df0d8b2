package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kernel/shorturl/internal/shortener"
)

func TestShorten_PrintsAndCopiesWithTitle(t *testing.T) {
	setupStdoutCapture(t)

	var gotURL, copied string
	fake := &FakeShortener{
		ShortenFunc: func(ctx context.Context, fullURL string) (string, error) {
			gotURL = fullURL
			return "http://dwz.cn/abcde", nil
		},
	}
	s := ShortenCmd{shortener: fake, copyFn: func(text string) error { copied = text; return nil }}

	err := s.Shorten(context.Background(), ShortenInput{URL: " http://example.com ", Title: "Example Domain", Copy: true})
	require.NoError(t, err)

	assert.Equal(t, "http://example.com", gotURL)
	assert.Equal(t, "《Example Domain》\nhttp://dwz.cn/abcde", copied)
	assert.Contains(t, outBuf.String(), "http://dwz.cn/abcde")
	assert.Contains(t, outBuf.String(), "Copied!")
}

func TestShorten_NoCopyByDefault(t *testing.T) {
	setupStdoutCapture(t)

	called := false
	s := ShortenCmd{shortener: shortensTo("http://dwz.cn/abcde"), copyFn: func(string) error { called = true; return nil }}
	require.NoError(t, s.Shorten(context.Background(), ShortenInput{URL: "http://example.com"}))
	assert.False(t, called)
}

func TestShorten_ErrorMessage(t *testing.T) {
	setupStdoutCapture(t)

	fake := &FakeShortener{
		ShortenFunc: func(ctx context.Context, fullURL string) (string, error) {
			return "", &shortener.NetworkError{Err: errors.New("dial tcp: connection refused")}
		},
	}
	err := ShortenCmd{shortener: fake}.Shorten(context.Background(), ShortenInput{URL: "http://example.com"})
	require.Error(t, err)
	assert.Contains(t, outBuf.String(), "Get short URL error: Network error.")
}

func TestShorten_JSONOutput(t *testing.T) {
	setupStdoutCapture(t)
	stdout := captureStdout(t)

	fake := &FakeShortener{
		ShortenFunc: func(ctx context.Context, fullURL string) (string, error) {
			return "", shortener.ErrEmptyShortURL
		},
	}
	err := ShortenCmd{shortener: fake}.Shorten(context.Background(), ShortenInput{URL: "http://example.com", Output: "json"})
	assert.ErrorIs(t, err, shortener.ErrEmptyShortURL)

	var out ShortenOutput
	require.NoError(t, json.Unmarshal([]byte(stdout()), &out))
	assert.Equal(t, "http://example.com", out.LongURL)
	assert.Equal(t, "empty tinyurl", out.Error)
	assert.Empty(t, out.ShortURL)
}
