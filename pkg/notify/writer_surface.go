package notify

import (
	"fmt"
	"io"
	"sync"
)

// WriterSurface prints banners as plain lines, for terminals.
type WriterSurface struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterSurface constructs a surface writing to w.
func NewWriterSurface(w io.Writer) *WriterSurface {
	return &WriterSurface{w: w}
}

// Mount prints the banner.
func (s *WriterSurface) Mount(banner Banner) {
	s.mu.Lock()
	defer s.mu.Unlock()

	label := "ok"
	if banner.Kind == KindError {
		label = "error"
	}
	fmt.Fprintf(s.w, "[%s] %s\n", label, banner.Message)
}

// Transition is a no-op; terminals have nothing to animate.
func (s *WriterSurface) Transition(uint64, Phase) {}

// Unmount is a no-op; printed lines stay in the scrollback.
func (s *WriterSurface) Unmount(uint64) {}
