// Package paths resolves comparison roots and computes root-anchored report keys.
package paths

import (
	"os"
	"path/filepath"
)

// RelativeKey converts a path under root into a root-relative key
// - Does not resolve symlinks: the key follows the path as walked
// - Converts the OS separator to forward slashes
func RelativeKey(root string, path string) (string, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// Resolve returns p unchanged when it is absolute, otherwise p joined onto base.
func Resolve(base string, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

// ToolDir returns the directory containing the running executable,
// with symlinks resolved.
func ToolDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(exe)
	if err != nil {
		resolved = exe
	}
	return filepath.Dir(resolved), nil
}

// RealPath resolves symlinks in p. If p cannot be resolved, the cleaned
// absolute form of p is returned instead.
func RealPath(p string) string {
	resolved, err := filepath.EvalSymlinks(p)
	if err == nil {
		return resolved
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return filepath.Clean(p)
	}
	return abs
}

// Exists reports whether anything exists at p. Symlinks are followed, so a
// dangling link does not exist.
func Exists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

// IsDir reports whether p is a directory, following symlinks.
func IsDir(p string) (bool, error) {
	info, err := os.Stat(p)
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}
