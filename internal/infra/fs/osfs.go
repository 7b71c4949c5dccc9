package fs

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// OSFS adapts the app filesystem port to the host filesystem.
type OSFS struct{}

func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

func (OSFS) ReadDir(path string) ([]fs.DirEntry, error) {
	return os.ReadDir(path)
}

// RealPath resolves every symbolic link in path. The walker compares resolved
// ancestor paths to detect link cycles.
func (OSFS) RealPath(path string) (string, error) {
	return filepath.EvalSymlinks(path)
}

func (OSFS) MkdirAll(path string, perm fs.FileMode) error {
	return os.MkdirAll(path, perm)
}

// CopyFile copies the content of src to dst, truncating dst if it exists.
// Both handles are closed before returning on every path.
func (OSFS) CopyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	info, err := srcFile.Stat()
	if err != nil {
		return err
	}

	dstFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		dstFile.Close()
		return err
	}
	return dstFile.Close()
}

func (OSFS) Chmod(path string, mode fs.FileMode) error {
	return os.Chmod(path, mode)
}

func (OSFS) Chtimes(path string, mtime time.Time) error {
	return os.Chtimes(path, mtime, mtime)
}
