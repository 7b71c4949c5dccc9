package app

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sbackup/internal/domain"
	"sbackup/internal/infra/console"
	osfs "sbackup/internal/infra/fs"
	"sbackup/internal/logging"
)

func writeFile(t *testing.T, path, content string, modTime time.Time) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	require.NoError(t, os.Chtimes(path, modTime, modTime))
}

func TestWalkOnRealFilesystem(t *testing.T) {
	t1 := time.Date(2024, 10, 2, 15, 1, 0, 0, time.UTC)
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "target")

	writeFile(t, filepath.Join(src, "a", "x.txt"), "hello", t1)
	require.NoError(t, os.MkdirAll(filepath.Join(src, "a", "b"), 0o755))

	srcB, err := os.Stat(filepath.Join(src, "a", "b"))
	require.NoError(t, err)

	run := domain.TraversalContext{SourceRoot: src, TargetRoot: dst, PreserveAttributes: true}
	var diag bytes.Buffer
	w := &Walker{
		FS:     osfs.OSFS{},
		Copier: &Copier{FS: osfs.OSFS{}, PreserveAttributes: true},
		Logger: logging.Logger{Err: &diag},
	}

	report, err := w.Walk(context.Background(), run)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Copied)
	assert.Zero(t, report.Failed)
	assert.Empty(t, diag.String())

	content, err := os.ReadFile(filepath.Join(dst, "a", "x.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))

	info, err := os.Stat(filepath.Join(dst, "a", "x.txt"))
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(t1), "copied file keeps the source modtime")

	dstB, err := os.Stat(filepath.Join(dst, "a", "b"))
	require.NoError(t, err)
	assert.True(t, dstB.IsDir())
	assert.True(t, dstB.ModTime().Equal(srcB.ModTime()), "mirrored directory keeps the source modtime")

	// Re-run: everything is already up to date, nothing is rewritten.
	report2, err := w.Walk(context.Background(), run)
	require.NoError(t, err)
	assert.Zero(t, report2.Copied)
	assert.Equal(t, 1, report2.UpToDate)
}

func TestWalkRealSymlinkCycle(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation needs privileges on windows")
	}

	t1 := time.Date(2024, 10, 2, 15, 1, 0, 0, time.UTC)
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "target")

	writeFile(t, filepath.Join(src, "sub", "f.txt"), "data", t1)
	require.NoError(t, os.Symlink(src, filepath.Join(src, "sub", "loop")))

	run := domain.TraversalContext{SourceRoot: src, TargetRoot: dst, PreserveAttributes: true}
	var diag bytes.Buffer
	w := &Walker{
		FS:     osfs.OSFS{},
		Copier: &Copier{FS: osfs.OSFS{}, PreserveAttributes: true},
		Logger: logging.Logger{Err: &diag},
	}

	report, err := w.Walk(context.Background(), run)
	require.NoError(t, err, "a symlink cycle must not hang or fail the walk")
	assert.Equal(t, 1, report.Cycles)
	assert.Equal(t, 1, report.Copied)
	assert.Contains(t, diag.String(), "cycle detected")

	_, err = os.Stat(filepath.Join(dst, "sub", "f.txt"))
	assert.NoError(t, err, "entries outside the cycle are still copied")
}

func TestWalkRealDeclineLeavesTargetUntouched(t *testing.T) {
	t1 := time.Date(2024, 10, 2, 15, 1, 0, 0, time.UTC)
	t2 := t1.Add(-time.Hour)
	src := t.TempDir()
	dst := t.TempDir()

	writeFile(t, filepath.Join(src, "x.txt"), "new", t1)
	writeFile(t, filepath.Join(dst, "x.txt"), "old", t2)

	run := domain.TraversalContext{
		SourceRoot:         src,
		TargetRoot:         dst,
		PromptOnOverwrite:  true,
		PreserveAttributes: true,
	}
	w := &Walker{
		FS: osfs.OSFS{},
		Copier: &Copier{
			FS:                 osfs.OSFS{},
			Prompt:             console.New(strings.NewReader("no\n"), io.Discard),
			PromptOnOverwrite:  true,
			PreserveAttributes: true,
		},
		Logger: logging.Logger{Err: io.Discard},
	}

	report, err := w.Walk(context.Background(), run)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Declined)

	content, err := os.ReadFile(filepath.Join(dst, "x.txt"))
	require.NoError(t, err)
	assert.Equal(t, "old", string(content))

	info, err := os.Stat(filepath.Join(dst, "x.txt"))
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(t2), "declined target keeps its timestamp")
}
