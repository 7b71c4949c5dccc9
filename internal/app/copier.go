package app

import (
	"errors"
	"io/fs"

	"sbackup/internal/domain"
)

// Copier decides whether a single file needs copying and performs the copy.
// It never returns an error to the caller; every failure is converted into a
// Failed outcome so the surrounding walk can continue.
type Copier struct {
	FS                 FileSystem
	Prompt             Prompter
	PromptOnOverwrite  bool
	PreserveAttributes bool
	DryRun             bool
}

// Copy copies src to dst. srcInfo is the already-stat'ed source file.
//
// The freshness check compares modification times for exact equality. That is
// intentionally naive: filesystems with coarser timestamp resolution than the
// source (e.g. whole-second FAT) can truncate the stored time and make an
// up-to-date file look stale on the next run. The copy is still correct, just
// not skipped.
func (c *Copier) Copy(src, dst string, srcInfo fs.FileInfo) domain.Outcome {
	srcTime := srcInfo.ModTime()

	dstInfo, err := c.FS.Stat(dst)
	exists := err == nil
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return domain.Outcome{Kind: domain.Failed, Err: err}
	}

	if exists && dstInfo.ModTime().Equal(srcTime) {
		return domain.Outcome{Kind: domain.SkippedUpToDate}
	}

	if exists && c.PromptOnOverwrite {
		ok, err := c.Prompt.Confirm(dst)
		if err != nil {
			return domain.Outcome{Kind: domain.Failed, Err: err}
		}
		if !ok {
			return domain.Outcome{Kind: domain.SkippedUserDeclined}
		}
	}

	if c.DryRun {
		return domain.Outcome{Kind: domain.Copied}
	}

	if err := c.FS.CopyFile(src, dst); err != nil {
		return domain.Outcome{Kind: domain.Failed, Err: err}
	}
	if c.PreserveAttributes {
		if err := c.FS.Chmod(dst, srcInfo.Mode().Perm()); err != nil {
			return domain.Outcome{Kind: domain.Failed, Err: err}
		}
	}
	// Always propagate the source modtime; it is how the next run detects
	// the file is already up to date.
	if err := c.FS.Chtimes(dst, srcTime); err != nil {
		return domain.Outcome{Kind: domain.Failed, Err: err}
	}
	return domain.Outcome{Kind: domain.Copied}
}
