// Package filex holds small filesystem helpers.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// AppDirName is the directory created under the user config dir.
const AppDirName = "attendance"

// EnsureDir creates dir (and parents) with owner-only permissions and
// returns its absolute path. A relative dir is resolved against the
// working directory.
func EnsureDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("abs %s: %w", dir, err)
	}

	if err := os.MkdirAll(abs, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", abs, err)
	}

	return abs, nil
}

// DefaultDataDir is where the session database lives unless configured:
// $XDG_CONFIG_HOME/attendance (or the platform equivalent), falling back
// to ./.attendance when no user config dir is known.
func DefaultDataDir() string {
	base, err := os.UserConfigDir()
	if err != nil || base == "" {
		return "." + AppDirName
	}
	return filepath.Join(base, AppDirName)
}
