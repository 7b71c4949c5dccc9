package app

import (
	"io/fs"
	"time"
)

// FileSystem is the filesystem collaborator the walker and copier run
// against. Stat follows symbolic links; RealPath resolves them, which is what
// the cycle check compares.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	ReadDir(path string) ([]fs.DirEntry, error)
	RealPath(path string) (string, error)
	MkdirAll(path string, perm fs.FileMode) error
	CopyFile(src, dst string) error
	Chmod(path string, mode fs.FileMode) error
	Chtimes(path string, mtime time.Time) error
}

// Prompter asks the user whether an existing target may be overwritten.
type Prompter interface {
	Confirm(target string) (bool, error)
}
