package main

import (
	"bytes"
	"io"
	"sync"
)

// diagBuffer collects diagnostic output from the walk goroutine while the
// TUI owns the terminal.
type diagBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (d *diagBuffer) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.buf.Write(p)
}

func (d *diagBuffer) FlushTo(w io.Writer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.buf.Len() > 0 {
		w.Write(d.buf.Bytes())
	}
}
