package report

import (
	"os"
	"path/filepath"

	"deploydiff/internal/errors"
)

// Write serializes r and replaces the file at path with it. The data goes
// to a temporary file in the same directory first, so a failed write
// leaves any previous report untouched.
func Write(r *Report, path string, format Format) error {
	data, err := Encode(r, format)
	if err != nil {
		return errors.New(errors.WriteFailed, "failed to encode report", err).WithPath(path)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".deploydiff-*.tmp")
	if err != nil {
		return errors.New(errors.WriteFailed, "failed to create temporary report file", err).WithPath(path)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return errors.New(errors.WriteFailed, "failed to write report", err).WithPath(path)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return errors.New(errors.WriteFailed, "failed to write report", err).WithPath(path)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		_ = os.Remove(tmpName)
		return errors.New(errors.WriteFailed, "failed to set report permissions", err).WithPath(path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return errors.New(errors.WriteFailed, "failed to replace report", err).WithPath(path)
	}
	return nil
}
