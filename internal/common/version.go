package common

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Build metadata, set with
// -ldflags "-X github.com/bobmcallan/vire-analytics/internal/common.Version=..."
var (
	Version   = "dev"
	Build     = "unknown"
	GitCommit = "unknown"
)

// versionFileName sits next to the binary and fills in metadata ldflags left unset
const versionFileName = ".version"

// GetVersion returns the semantic version string
func GetVersion() string {
	return Version
}

// GetBuild returns the build timestamp
func GetBuild() string {
	return Build
}

// GetGitCommit returns the short git commit hash
func GetGitCommit() string {
	return GitCommit
}

// GetFullVersion returns the line printed by vire-analytics -version
func GetFullVersion() string {
	return fmt.Sprintf("vire-analytics %s (build: %s, commit: %s)", Version, Build, GitCommit)
}

// LoadVersionFromFile reads .version from the binary's directory.
// A missing file is not an error.
func LoadVersionFromFile() {
	exe, err := os.Executable()
	if err != nil {
		return
	}

	f, err := os.Open(filepath.Join(filepath.Dir(exe), versionFileName))
	if err != nil {
		return
	}
	defer f.Close()

	applyVersionFile(f)
}

// applyVersionFile reads "key: value" lines (version, build, commit) and sets
// only the fields still at their defaults. Blank lines and # comments are skipped.
func applyVersionFile(r io.Reader) {
	fields := map[string]struct {
		target *string
		unset  string
	}{
		"version": {&Version, "dev"},
		"build":   {&Build, "unknown"},
		"commit":  {&GitCommit, "unknown"},
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, val, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		field, known := fields[strings.ToLower(strings.TrimSpace(key))]
		if !known || *field.target != field.unset {
			continue
		}
		*field.target = strings.TrimSpace(val)
	}
}
