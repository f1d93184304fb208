package hal

import (
	"bytes"
	"sync"
)

// LineWriter adapts a Logger to io.Writer. Each complete line written is
// forwarded once; a trailing partial line is held until its newline arrives.
type LineWriter struct {
	mu  sync.Mutex
	l   Logger
	buf []byte
}

// NewLineWriter returns a writer forwarding lines to l.
func NewLineWriter(l Logger) *LineWriter {
	return &LineWriter{l: l}
}

func (w *LineWriter) Write(p []byte) (int, error) {
	if w.l == nil {
		return len(p), nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.l.WriteLineBytes(w.buf[:i])
		w.buf = w.buf[i+1:]
	}
	if len(w.buf) == 0 {
		w.buf = nil
	}
	return len(p), nil
}
