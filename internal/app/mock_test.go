package app

import (
	"io/fs"
	"path/filepath"
	"sort"
	"time"
)

// memFS is an in-memory FileSystem. Every mutating call is appended to ops
// ("mkdir <path>", "copy <src> <dst>", "chmod <path>", "chtimes <path>") so
// tests can assert ordering.
type memFS struct {
	entries map[string]*memEntry
	real    map[string]string // RealPath overrides, for symlinked dirs
	ops     []string

	statErr    map[string]error
	readDirErr map[string]error
	mkdirErr   map[string]error
	copyErr    map[string]error
	chtimesErr map[string]error
}

type memEntry struct {
	dir     bool
	mode    fs.FileMode
	modTime time.Time
	data    string
}

func newMemFS() *memFS {
	return &memFS{
		entries:    map[string]*memEntry{},
		real:       map[string]string{},
		statErr:    map[string]error{},
		readDirErr: map[string]error{},
		mkdirErr:   map[string]error{},
		copyErr:    map[string]error{},
		chtimesErr: map[string]error{},
	}
}

func (m *memFS) addDir(path string, modTime time.Time) {
	m.entries[path] = &memEntry{dir: true, mode: 0o755, modTime: modTime}
}

func (m *memFS) addFile(path, data string, modTime time.Time) {
	m.entries[path] = &memEntry{mode: 0o644, modTime: modTime, data: data}
}

// addDirLink registers path as a directory symlink resolving to real.
func (m *memFS) addDirLink(path, real string, modTime time.Time) {
	m.entries[path] = &memEntry{dir: true, mode: 0o755, modTime: modTime}
	m.real[path] = real
}

func (m *memFS) Stat(path string) (fs.FileInfo, error) {
	if err := m.statErr[path]; err != nil {
		return nil, err
	}
	e, ok := m.entries[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return memFileInfo{name: filepath.Base(path), entry: e}, nil
}

func (m *memFS) ReadDir(path string) ([]fs.DirEntry, error) {
	if err := m.readDirErr[path]; err != nil {
		return nil, err
	}
	var names []string
	for p := range m.entries {
		if filepath.Dir(p) == path && p != path {
			names = append(names, filepath.Base(p))
		}
	}
	sort.Strings(names)
	var out []fs.DirEntry
	for _, name := range names {
		out = append(out, memDirEntry{name: name, entry: m.entries[filepath.Join(path, name)]})
	}
	return out, nil
}

func (m *memFS) RealPath(path string) (string, error) {
	if r, ok := m.real[path]; ok {
		return r, nil
	}
	return path, nil
}

func (m *memFS) MkdirAll(path string, perm fs.FileMode) error {
	if err := m.mkdirErr[path]; err != nil {
		return err
	}
	m.ops = append(m.ops, "mkdir "+path)
	if _, ok := m.entries[path]; !ok {
		m.entries[path] = &memEntry{dir: true, mode: perm}
	}
	return nil
}

func (m *memFS) CopyFile(src, dst string) error {
	if err := m.copyErr[src]; err != nil {
		return err
	}
	m.ops = append(m.ops, "copy "+src+" "+dst)
	srcEntry, ok := m.entries[src]
	if !ok {
		return fs.ErrNotExist
	}
	m.entries[dst] = &memEntry{mode: srcEntry.mode, data: srcEntry.data}
	return nil
}

func (m *memFS) Chmod(path string, mode fs.FileMode) error {
	m.ops = append(m.ops, "chmod "+path)
	if e, ok := m.entries[path]; ok {
		e.mode = mode
	}
	return nil
}

func (m *memFS) Chtimes(path string, mtime time.Time) error {
	if err := m.chtimesErr[path]; err != nil {
		return err
	}
	m.ops = append(m.ops, "chtimes "+path)
	if e, ok := m.entries[path]; ok {
		e.modTime = mtime
	}
	return nil
}

// opIndex returns the position of the given op, or -1.
func (m *memFS) opIndex(op string) int {
	for i, o := range m.ops {
		if o == op {
			return i
		}
	}
	return -1
}

type memDirEntry struct {
	name  string
	entry *memEntry
}

func (m memDirEntry) Name() string { return m.name }
func (m memDirEntry) IsDir() bool  { return m.entry.dir }
func (m memDirEntry) Type() fs.FileMode {
	if m.entry.dir {
		return fs.ModeDir
	}
	return 0
}
func (m memDirEntry) Info() (fs.FileInfo, error) {
	return memFileInfo{name: m.name, entry: m.entry}, nil
}

type memFileInfo struct {
	name  string
	entry *memEntry
}

func (m memFileInfo) Name() string { return m.name }
func (m memFileInfo) Size() int64  { return int64(len(m.entry.data)) }
func (m memFileInfo) Mode() fs.FileMode {
	if m.entry.dir {
		return fs.ModeDir | m.entry.mode
	}
	return m.entry.mode
}
func (m memFileInfo) ModTime() time.Time { return m.entry.modTime }
func (m memFileInfo) IsDir() bool        { return m.entry.dir }
func (m memFileInfo) Sys() interface{}   { return nil }

// mockPrompt records every asked target and replies from answers in order,
// defaulting to false once exhausted.
type mockPrompt struct {
	answers []bool
	err     error
	asked   []string
}

func (p *mockPrompt) Confirm(target string) (bool, error) {
	p.asked = append(p.asked, target)
	if p.err != nil {
		return false, p.err
	}
	if len(p.answers) == 0 {
		return false, nil
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	return answer, nil
}
