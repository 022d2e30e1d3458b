// Package resolver implements the library resolver (LR): given a
// possibly-relative library path and the file that referenced it, find
// the absolute path on disk per spec's fixed search order.
package resolver

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pkg/errors"
)

// ErrNotFound is the sentinel wrapped by NotFoundError; match against it
// with errors.Is when the caller doesn't need the search inputs.
var ErrNotFound = errors.New("library file not found")

// NotFoundError reports a failed search, naming both inputs so the
// caller (scadparse.FindLibraryFile) can build a precise diagnostic.
type NotFoundError struct {
	CurrentFile string
	LibFile     string
}

func (e *NotFoundError) Error() string {
	msg := "resolver: library not found: " + e.LibFile
	if e.CurrentFile != "" {
		msg += " (from " + e.CurrentFile + ")"
	}
	return msg
}
func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// Resolve searches for libfile using currentFile's directory, the
// OPENSCADPATH environment variable, and platform-default library
// directories, in that exact order, returning the first regular file
// found. currentFile may be empty (string input with no origin file).
func Resolve(currentFile, libfile string) (string, error) {
	if filepath.IsAbs(libfile) {
		if fileExists(libfile) {
			return libfile, nil
		}
		return "", wrapNotFound(currentFile, libfile)
	}

	for _, dir := range searchDirs(currentFile) {
		candidate := filepath.Join(dir, libfile)
		if fileExists(candidate) {
			return candidate, nil
		}
	}
	return "", wrapNotFound(currentFile, libfile)
}

func searchDirs(currentFile string) []string {
	var dirs []string
	if currentFile != "" {
		dirs = append(dirs, filepath.Dir(currentFile))
	}
	dirs = append(dirs, openscadPathDirs()...)
	dirs = append(dirs, platformDefaultDirs()...)
	return dirs
}

func openscadPathDirs() []string {
	raw := os.Getenv("OPENSCADPATH")
	if raw == "" {
		return nil
	}
	var dirs []string
	for _, d := range strings.Split(raw, string(os.PathListSeparator)) {
		if d != "" {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

func platformDefaultDirs() []string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return nil
	}
	switch runtime.GOOS {
	case "windows", "darwin":
		return []string{filepath.Join(home, "Documents", "OpenSCAD", "libraries")}
	default:
		return []string{filepath.Join(home, ".local", "share", "OpenSCAD", "libraries")}
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func wrapNotFound(currentFile, libfile string) error {
	return errors.WithStack(&NotFoundError{CurrentFile: currentFile, LibFile: libfile})
}
