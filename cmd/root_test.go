package cmd

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kernel/shorturl/internal/config"
)

func newConfigTestCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "test"}
	config.RegisterFlags(c.Flags())
	addPopupFlags(c)
	require.NoError(t, c.ParseFlags(args))
	return c
}

func TestLoadConfig_FlagsOverrideEnv(t *testing.T) {
	prev := cfg
	t.Cleanup(func() { cfg = prev })

	t.Setenv("SHORTURL_ENDPOINT", "http://env.example/create.php")
	t.Setenv("SHORTURL_TIMEOUT", "3s")

	envFile := filepath.Join(t.TempDir(), "missing.env")
	c := newConfigTestCmd(t, "--env-file", envFile, "--timeout", "5s", "--source", "static", "--no-copy")
	require.NoError(t, loadConfig(c, nil))

	assert.Equal(t, "http://env.example/create.php", cfg.Endpoint)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, config.SourceStatic, cfg.Source)
	assert.False(t, cfg.CopyToClipboard)
}

func TestCompletion(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"completion", "bash"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "shorturl")
}
