// Package atomicfile writes emitter output so a build directory never ends
// up holding a half-written file, grounded on internal/build.Builder.Build's
// write-to-temp-then-os.Rename-on-success publishing step.
package atomicfile

import (
	"os"
	"path/filepath"

	"github.com/catapult-build/catapult/catapulterr"
)

// Write creates path's parent directory if needed, writes data to a
// sibling temp file, and renames it into place. On any error the temp file
// is removed and path is left untouched.
func Write(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return catapulterr.Wrap(catapulterr.IOError, err, "create "+dir)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return catapulterr.Wrap(catapulterr.IOError, err, "create temp file for "+path)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return catapulterr.Wrap(catapulterr.IOError, err, "write "+tmpPath)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return catapulterr.Wrap(catapulterr.IOError, err, "close "+tmpPath)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		os.Remove(tmpPath)
		return catapulterr.Wrap(catapulterr.IOError, err, "chmod "+tmpPath)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return catapulterr.Wrap(catapulterr.IOError, err, "publish "+path)
	}
	return nil
}
