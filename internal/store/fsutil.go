package store

import (
	"errors"
	"os"
	"path/filepath"
)

// writeFileAtomic writes data to a temp file beside dest and renames it over dest.
func writeFileAtomic(dest string, data []byte) error {
	dest = filepath.Clean(dest)
	if dest == "" || dest == "." {
		return errors.New("write file: missing dest")
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(dest), "."+filepath.Base(dest)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpPath, dest)
}
