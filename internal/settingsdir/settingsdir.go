// Package settingsdir locates the emulator's global settings directory.
package settingsdir

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Leaf is the directory, relative to the per-user data root, that holds
// global settings.
var Leaf = filepath.Join("Goldberg SteamEmu Saves", "settings")

// DetectError reports that no usable settings directory was found.
type DetectError struct {
	Path   string // empty when no candidate could be derived
	Reason string
	Err    error
}

func (e *DetectError) Error() string {
	if e.Path == "" {
		return "failed to detect folder: " + e.Reason
	}
	return fmt.Sprintf("failed to detect folder %q: %s", e.Path, e.Reason)
}

func (e *DetectError) Unwrap() error {
	return e.Err
}

// Default derives the global settings directory for goos from the
// environment. On windows the root is APPDATA; elsewhere XDG_DATA_HOME, then
// HOME. It reports false when none of them is set.
func Default(goos string, getenv func(string) string) (string, bool) {
	var roots []string
	if goos == "windows" {
		roots = []string{"APPDATA"}
	} else {
		roots = []string{"XDG_DATA_HOME", "HOME"}
	}
	for _, name := range roots {
		if root := getenv(name); root != "" {
			return filepath.Join(root, Leaf), true
		}
	}
	return "", false
}

// Resolve returns arg when it is set, otherwise the default directory, and
// checks that the result is an existing directory.
func Resolve(arg, goos string, getenv func(string) string) (string, error) {
	dir := arg
	if dir == "" {
		var ok bool
		dir, ok = Default(goos, getenv)
		if !ok {
			return "", &DetectError{Reason: "no settings folder given and no user data directory in the environment"}
		}
	}

	fi, err := os.Stat(dir)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return "", &DetectError{Path: dir, Reason: "does not exist", Err: err}
	case err != nil:
		return "", &DetectError{Path: dir, Reason: "cannot be accessed", Err: err}
	case !fi.IsDir():
		return "", &DetectError{Path: dir, Reason: "not a directory"}
	}
	return dir, nil
}
