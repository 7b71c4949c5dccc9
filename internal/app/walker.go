package app

import (
	"context"
	"io/fs"
	"path/filepath"
	"time"

	"sbackup/internal/domain"
	"sbackup/internal/logging"
)

// Walker mirrors the source tree into the target tree depth-first, pre-order:
// a directory is created in the target before any of its children are
// visited, and its modification time is fixed up after all of them (writing
// children would dirty it otherwise). Files are delegated to the Copier.
//
// The walk follows symbolic links. Descending into a directory whose resolved
// path is already on the current ancestor chain is a cycle; that subtree is
// skipped and reported, and the walk continues elsewhere.
type Walker struct {
	FS     FileSystem
	Copier *Copier
	Logger logging.Logger

	// OnEntry, when set, observes every visited entry and, for files, its
	// outcome. Directory entries carry a zero-valued Outcome.
	OnEntry func(domain.Entry, domain.Outcome)
}

// frame is one directory on the explicit traversal stack. Keeping the stack
// explicit bounds stack usage on deep trees and makes the ancestor chain the
// cycle check inspects a plain slice.
type frame struct {
	src     string // absolute source directory
	dst     string // mirrored target directory
	rel     string // path relative to the source root
	real    string // symlink-resolved source path
	modTime time.Time
	entries []fs.DirEntry
	next    int
	fixup   bool // modtime fixup allowed on leave
}

// Walk runs one traversal. It returns an error only for a fatal root problem
// or context cancellation; everything below the root is reported to the
// diagnostic stream and survived.
func (w *Walker) Walk(ctx context.Context, run domain.TraversalContext) (domain.Report, error) {
	stop := w.Logger.Measure("Copying tree")
	defer stop()

	var report domain.Report

	rootInfo, err := w.FS.Stat(run.SourceRoot)
	if err != nil {
		return report, err
	}

	root, ok := w.enter(&report, run, nil, run.SourceRoot, run.TargetRoot, ".", rootInfo)
	if !ok {
		return report, nil
	}
	stack := []*frame{root}

	for len(stack) > 0 {
		select {
		case <-ctx.Done():
			return report, ctx.Err()
		default:
		}

		top := stack[len(stack)-1]
		if top.next >= len(top.entries) {
			stack = stack[:len(stack)-1]
			w.leave(run, top)
			continue
		}

		name := top.entries[top.next].Name()
		top.next++

		src := filepath.Join(top.src, name)
		dst := filepath.Join(top.dst, name)
		rel := filepath.Join(top.rel, name)

		info, err := w.FS.Stat(src)
		if err != nil {
			w.Logger.Errorf("Unable to copy: %s: %v", src, err)
			w.observe(domain.Entry{RelativePath: rel, Kind: domain.File}, domain.Outcome{Kind: domain.Failed, Err: err})
			report.Failed++
			continue
		}

		switch {
		case info.IsDir():
			if f, ok := w.enter(&report, run, stack, src, dst, rel, info); ok {
				stack = append(stack, f)
			}
		case info.Mode().IsRegular():
			entry := domain.Entry{RelativePath: rel, Kind: domain.File, ModTime: info.ModTime()}
			outcome := w.Copier.Copy(src, dst, info)
			if outcome.Kind == domain.Failed {
				w.Logger.Errorf("Unable to copy: %s: %v", src, outcome.Err)
			}
			w.observe(entry, outcome)
			report.Record(outcome)
		default:
			w.Logger.Verbosef("Skipping non-regular file %s", src)
		}
	}

	return report, nil
}

// enter prepares a directory for descent: cycle check, target creation,
// child enumeration. A false return means the subtree is skipped; the reason
// has already been reported.
func (w *Walker) enter(report *domain.Report, run domain.TraversalContext, ancestors []*frame, src, dst, rel string, info fs.FileInfo) (*frame, bool) {
	real, err := w.FS.RealPath(src)
	if err != nil {
		w.Logger.Errorf("Unable to copy: %s: %v", src, err)
		report.Failed++
		return nil, false
	}
	for _, a := range ancestors {
		if a.real == real {
			w.Logger.Errorf("cycle detected: %s", src)
			report.Cycles++
			return nil, false
		}
	}

	if !run.DryRun {
		perm := fs.FileMode(0o755)
		if run.PreserveAttributes {
			perm = info.Mode().Perm()
		}
		if err := w.FS.MkdirAll(dst, perm); err != nil {
			w.Logger.Errorf("Unable to create: %s: %v", dst, err)
			report.Failed++
			return nil, false
		}
	}

	f := &frame{
		src:     src,
		dst:     dst,
		rel:     rel,
		real:    real,
		modTime: info.ModTime(),
		fixup:   true,
	}
	f.entries, err = w.FS.ReadDir(src)
	if err != nil {
		// The directory was created but cannot be enumerated; leave it
		// without children and without modtime fixup.
		w.Logger.Errorf("Unable to copy: %s: %v", src, err)
		report.Failed++
		f.fixup = false
	}

	report.Dirs++
	w.observe(domain.Entry{RelativePath: rel, Kind: domain.DirEnter}, domain.Outcome{})
	return f, true
}

// leave is the post-order hook: once every child has been written, the target
// directory's modtime can be set to match the source without being dirtied
// again.
func (w *Walker) leave(run domain.TraversalContext, f *frame) {
	if run.PreserveAttributes && f.fixup && !run.DryRun {
		if err := w.FS.Chtimes(f.dst, f.modTime); err != nil {
			w.Logger.Errorf("Unable to copy all attributes to: %s: %v", f.dst, err)
		}
	}
	w.observe(domain.Entry{RelativePath: f.rel, Kind: domain.DirLeave, ModTime: f.modTime}, domain.Outcome{})
}

func (w *Walker) observe(entry domain.Entry, outcome domain.Outcome) {
	if w.OnEntry != nil {
		w.OnEntry(entry, outcome)
	}
}
