package app

import (
	"sync"

	"rider-dispatch/internal/logx"
)

// resources collects closers of everything the container opened. They run in
// reverse order of registration.
type resources struct {
	mu      sync.Mutex
	closers []namedCloser
}

type namedCloser struct {
	name string
	fn   func() error
}

func newResources() *resources {
	return &resources{}
}

func (r *resources) add(name string, fn func() error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closers = append(r.closers, namedCloser{name: name, fn: fn})
}

func (r *resources) closeAll(logger logx.Logger) {
	r.mu.Lock()
	closers := r.closers
	r.closers = nil
	r.mu.Unlock()

	for i := len(closers) - 1; i >= 0; i-- {
		c := closers[i]
		if err := c.fn(); err != nil {
			logger.Error("close error", logx.String("resource", c.name), logx.Err(err))
		}
	}
}
