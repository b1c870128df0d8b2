// Package config loads shorturl settings from the environment, an optional
// .env file, command line flags and the OS keyring.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/zalando/go-keyring"

	"github.com/kernel/shorturl/internal/shortener"
	"github.com/kernel/shorturl/internal/tab"
)

// Tab sources.
const (
	SourceDevTools = "devtools"
	SourceKernel   = "kernel"
	SourceStatic   = "static"
)

// Keyring coordinates of the stored Kernel API key.
const (
	KeyringService = "shorturl"
	KeyringUser    = "kernel-api-key"
)

// Config holds every setting a command may need.
type Config struct {
	// Endpoint is the shortening service create URL.
	Endpoint string `env:"SHORTURL_ENDPOINT" env-default:"http://dwz.cn/create.php"`
	// Service names the shortening service in messages. Empty means the endpoint host.
	Service string `env:"SHORTURL_SERVICE"`
	// Source selects where the active tab comes from.
	Source string `env:"SHORTURL_SOURCE" env-default:"devtools"`
	// DevToolsURL is Chrome's remote debugging address.
	DevToolsURL string `env:"SHORTURL_DEVTOOLS_URL" env-default:"http://127.0.0.1:9222"`
	// KernelAPIKey authenticates against Kernel. Falls back to the keyring.
	KernelAPIKey  string `env:"KERNEL_API_KEY"`
	KernelBaseURL string `env:"KERNEL_BASE_URL"`
	// KernelBrowserID is the Kernel browser session to read tabs from.
	KernelBrowserID string `env:"KERNEL_BROWSER_ID"`
	// Timeout bounds each network request. Zero means none.
	Timeout time.Duration `env:"SHORTURL_TIMEOUT" env-default:"0s"`
	// CopyToClipboard enables the clipboard write after a successful run.
	CopyToClipboard bool `env:"SHORTURL_COPY" env-default:"true"`
	// Debug enables pterm debug messages.
	Debug bool `env:"SHORTURL_DEBUG" env-default:"false"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Endpoint:        shortener.DefaultEndpoint,
		Source:          SourceDevTools,
		DevToolsURL:     tab.DefaultDevToolsURL,
		CopyToClipboard: true,
	}
}

// Load reads envFile (if it exists) into the process environment without
// overriding variables already set, then parses the environment.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	return &cfg, nil
}

// RegisterFlags adds the flags that override environment settings.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.String("env-file", ".env", "Load environment variables from this file if it exists")
	fs.String("endpoint", d.Endpoint, "Shortening service endpoint (env: SHORTURL_ENDPOINT)")
	fs.String("service", "", "Service name shown in error messages (env: SHORTURL_SERVICE)")
	fs.String("devtools", d.DevToolsURL, "Chrome remote debugging address (env: SHORTURL_DEVTOOLS_URL)")
	fs.String("browser", "", "Kernel browser session id (env: KERNEL_BROWSER_ID)")
	fs.Duration("timeout", 0, "Request timeout, 0 for none (env: SHORTURL_TIMEOUT)")
	fs.Bool("debug", false, "Print debug messages (env: SHORTURL_DEBUG)")
}

// ApplyFlags copies every flag the user set explicitly onto c.
func (c *Config) ApplyFlags(fs *pflag.FlagSet) error {
	stringFlags := map[string]*string{
		"endpoint": &c.Endpoint,
		"service":  &c.Service,
		"devtools": &c.DevToolsURL,
		"browser":  &c.KernelBrowserID,
		"source":   &c.Source,
	}
	for name, dst := range stringFlags {
		if f := fs.Lookup(name); f != nil && f.Changed {
			v, err := fs.GetString(name)
			if err != nil {
				return err
			}
			*dst = v
		}
	}
	if f := fs.Lookup("timeout"); f != nil && f.Changed {
		v, err := fs.GetDuration("timeout")
		if err != nil {
			return err
		}
		c.Timeout = v
	}
	if f := fs.Lookup("debug"); f != nil && f.Changed {
		v, err := fs.GetBool("debug")
		if err != nil {
			return err
		}
		c.Debug = v
	}
	if f := fs.Lookup("no-copy"); f != nil && f.Changed {
		v, err := fs.GetBool("no-copy")
		if err != nil {
			return err
		}
		c.CopyToClipboard = !v
	}
	return nil
}

// Validate rejects settings no command can work with.
func (c *Config) Validate() error {
	switch c.Source {
	case SourceDevTools, SourceKernel, SourceStatic:
	default:
		return fmt.Errorf("unsupported source %q: use devtools, kernel or static", c.Source)
	}
	if err := requireAbsoluteURL("endpoint", c.Endpoint); err != nil {
		return err
	}
	if c.Source == SourceDevTools {
		if err := requireAbsoluteURL("devtools", c.DevToolsURL); err != nil {
			return err
		}
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	return nil
}

// KernelKey returns the Kernel API key from the environment, else from the keyring.
func (c *Config) KernelKey() (string, error) {
	if c.KernelAPIKey != "" {
		return c.KernelAPIKey, nil
	}
	key, err := keyring.Get(KeyringService, KeyringUser)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", fmt.Errorf("no Kernel API key: set KERNEL_API_KEY or run 'shorturl login'")
	}
	if err != nil {
		return "", fmt.Errorf("failed to read keyring: %w", err)
	}
	return key, nil
}

// SaveKernelKey stores key in the OS keyring.
func SaveKernelKey(key string) error {
	return keyring.Set(KeyringService, KeyringUser, key)
}

// DeleteKernelKey removes the stored key. A missing key is not an error.
func DeleteKernelKey() error {
	err := keyring.Delete(KeyringService, KeyringUser)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}

func requireAbsoluteURL(name, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid %s URL: %w", name, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid %s URL %q: scheme and host are required", name, raw)
	}
	return nil
}
