// Package update finds newer shorturl releases and works out how the running
// binary was installed.
package update

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/go-resty/resty/v2"
)

// LatestReleaseURL is the GitHub API endpoint for the newest release.
var LatestReleaseURL = "https://api.github.com/repos/kernel/shorturl/releases/latest"

// InstallMethod is how the binary got onto the machine.
type InstallMethod string

const (
	InstallMethodBrew    InstallMethod = "brew"
	InstallMethodGo      InstallMethod = "go"
	InstallMethodUnknown InstallMethod = "unknown"
)

type release struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// FetchLatest returns the newest release tag and its release page.
func FetchLatest(ctx context.Context) (tag string, url string, err error) {
	resp, err := resty.New().R().
		SetContext(ctx).
		SetHeader("Accept", "application/vnd.github+json").
		Get(LatestReleaseURL)
	if err != nil {
		return "", "", fmt.Errorf("request failed: %w", err)
	}
	if resp.IsError() {
		return "", "", fmt.Errorf("release lookup failed: %s", resp.Status())
	}
	var r release
	if err := json.Unmarshal(resp.Body(), &r); err != nil {
		return "", "", fmt.Errorf("invalid release response: %w", err)
	}
	if r.TagName == "" {
		return "", "", fmt.Errorf("release has no tag")
	}
	return r.TagName, r.HTMLURL, nil
}

// IsNewerVersion reports whether latest is a higher semver than current.
func IsNewerVersion(current, latest string) (bool, error) {
	cur, err := semver.NewVersion(strings.TrimPrefix(current, "v"))
	if err != nil {
		return false, fmt.Errorf("invalid current version %q: %w", current, err)
	}
	lat, err := semver.NewVersion(strings.TrimPrefix(latest, "v"))
	if err != nil {
		return false, fmt.Errorf("invalid latest version %q: %w", latest, err)
	}
	return lat.GreaterThan(cur), nil
}

type installMethodRule struct {
	method InstallMethod
	check  func(path string) bool
}

func installMethodRules() []installMethodRule {
	return []installMethodRule{
		{InstallMethodBrew, pathMatchesHomebrew},
		{InstallMethodGo, pathMatchesGoBin},
	}
}

// DetectInstallMethod inspects the executable path.
func DetectInstallMethod() (InstallMethod, string) {
	exe, err := os.Executable()
	if err != nil {
		return InstallMethodUnknown, ""
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	for _, r := range installMethodRules() {
		if r.check(exe) {
			return r.method, exe
		}
	}
	return InstallMethodUnknown, exe
}

// SuggestUpgradeCommand returns the shell command that upgrades a binary
// installed with method.
func SuggestUpgradeCommand(method InstallMethod) string {
	return suggestUpgradeCommandForMethod(method)
}

func suggestUpgradeCommandForMethod(method InstallMethod) string {
	switch method {
	case InstallMethodGo:
		return "go install github.com/kernel/shorturl@latest"
	default:
		return "brew upgrade kernel/tap/shorturl"
	}
}

func pathMatchesHomebrew(path string) bool {
	return strings.Contains(path, "/Cellar/") ||
		strings.HasPrefix(path, "/opt/homebrew/") ||
		strings.Contains(path, "/.linuxbrew/")
}

func pathMatchesGoBin(path string) bool {
	if gobin := os.Getenv("GOBIN"); gobin != "" && filepath.Dir(path) == filepath.Clean(gobin) {
		return true
	}
	return strings.Contains(filepath.ToSlash(path), "/go/bin/")
}
