package cmd

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kernel/shorturl/pkg/update"
)

func newUpgradeCmd(current, latest string, method update.InstallMethod, ran *[]string) UpgradeCmd {
	return UpgradeCmd{
		current: current,
		fetchLatest: func(ctx context.Context) (string, string, error) {
			return latest, "https://github.com/kernel/shorturl/releases/tag/" + latest, nil
		},
		detect: func() (update.InstallMethod, string) { return method, "/usr/local/bin/shorturl" },
		run: func(ctx context.Context, argv []string) error {
			*ran = argv
			return nil
		},
	}
}

func TestUpgrade_AlreadyLatest(t *testing.T) {
	setupStdoutCapture(t)
	var ran []string

	err := newUpgradeCmd("v1.2.0", "v1.2.0", update.InstallMethodBrew, &ran).Upgrade(context.Background(), UpgradeInput{})
	require.NoError(t, err)
	assert.Nil(t, ran)
	assert.Contains(t, outBuf.String(), "shorturl 1.2.0 is the latest release")
}

func TestUpgrade_RunsPackageManager(t *testing.T) {
	setupStdoutCapture(t)
	var ran []string

	err := newUpgradeCmd("v1.2.0", "v1.3.0", update.InstallMethodGo, &ran).Upgrade(context.Background(), UpgradeInput{})
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "install", "github.com/kernel/shorturl@latest"}, ran)
	assert.Contains(t, outBuf.String(), "shorturl 1.3.0 is available (you have 1.2.0)")
}

func TestUpgrade_DryRun(t *testing.T) {
	setupStdoutCapture(t)
	var ran []string

	err := newUpgradeCmd("dev", "v1.3.0", update.InstallMethodBrew, &ran).Upgrade(context.Background(), UpgradeInput{DryRun: true})
	require.NoError(t, err)
	assert.Nil(t, ran)
	assert.Contains(t, outBuf.String(), "Would run: brew upgrade kernel/tap/shorturl")
}

func TestUpgrade_UnknownInstallMethod(t *testing.T) {
	setupStdoutCapture(t)
	var ran []string

	err := newUpgradeCmd("v1.2.0", "v1.3.0", update.InstallMethodUnknown, &ran).Upgrade(context.Background(), UpgradeInput{})
	assert.ErrorIs(t, err, ErrUnknownInstallMethod)
	assert.Contains(t, outBuf.String(), "shorturl_1.3.0_")
}

func TestUpgrade_FetchError(t *testing.T) {
	setupStdoutCapture(t)
	u := UpgradeCmd{
		fetchLatest: func(ctx context.Context) (string, string, error) {
			return "", "", errors.New("rate limited")
		},
	}
	err := u.Upgrade(context.Background(), UpgradeInput{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}
