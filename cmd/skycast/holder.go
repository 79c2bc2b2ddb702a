package main

import (
	"errors"
	"sync"
)

var errShuttingDown = errors.New("shutting down")

type closer interface {
	Close() error
}

// holder hands the app built by the setup goroutine back to main. An app
// that arrives after close is closed straight away.
type holder struct {
	mu     sync.Mutex
	app    closer
	closed bool
}

func (h *holder) set(a closer) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		a.Close()
		return errShuttingDown
	}
	h.app = a
	return nil
}

func (h *holder) close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	if h.app != nil {
		h.app.Close()
		h.app = nil
	}
}
