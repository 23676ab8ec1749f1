package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// GetPathInfo returns the absolute form of relPath and the directory that
// contains it.
func GetPathInfo(relPath string) (fullPath string, parentDir string, err error) {
	// Convert to absolute path (resolves ../../ and cleans the path)
	fullPath, err = filepath.Abs(relPath)
	if err != nil {
		return "", "", err
	}

	// Get the directory containing the file
	parentDir = filepath.Dir(fullPath)

	return fullPath, parentDir, nil
}

// ReplaceExt swaps the extension of path for ext, appending ext when path
// has none.
func ReplaceExt(path, ext string) string {
	old := filepath.Ext(path)
	if old == "" || old == path || strings.HasSuffix(path, string(filepath.Separator)+old) {
		return path + ext
	}
	return strings.TrimSuffix(path, old) + ext
}

// StagedFile is content written to a temporary file beside its target and
// not yet visible under the target name.
type StagedFile struct {
	target string
	tmp    string
}

// StageFile writes data to a temporary file in the directory of path. The
// target is untouched until Commit.
func StageFile(path string, data []byte, perm os.FileMode) (*StagedFile, error) {
	fullPath, dir, err := GetPathInfo(path)
	if err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(fullPath)+".tmp-*")
	if err != nil {
		return nil, err
	}
	tmpName := tmp.Name()

	cleanup := func(err error) (*StagedFile, error) {
		tmp.Close()
		os.Remove(tmpName)
		return nil, err
	}

	if _, err := tmp.Write(data); err != nil {
		return cleanup(fmt.Errorf("write %s: %w", tmpName, err))
	}
	if err := tmp.Chmod(perm); err != nil {
		return cleanup(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return nil, err
	}
	return &StagedFile{target: fullPath, tmp: tmpName}, nil
}

// Target is the absolute path the file is committed to.
func (f *StagedFile) Target() string { return f.target }

// Commit renames the staged file onto its target.
func (f *StagedFile) Commit() error {
	if err := os.Rename(f.tmp, f.target); err != nil {
		os.Remove(f.tmp)
		return err
	}
	return nil
}

// Discard removes the staged file, leaving the target as it was.
func (f *StagedFile) Discard() {
	os.Remove(f.tmp)
}

// WriteFileAtomic writes data to a temporary file next to path and renames it
// into place, so readers see either the old content or the new one.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	f, err := StageFile(path, data, perm)
	if err != nil {
		return err
	}
	return f.Commit()
}
