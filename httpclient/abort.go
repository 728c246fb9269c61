package httpclient

import (
	"context"
	"net/http/httptrace"
	"sync"

	"github.com/kbukum/fetchkit/logger"
)

type abortState int

const (
	abortIdle abortState = iota
	abortArmed
	abortAborted
	abortSettled
)

// AbortHandle lets a caller cancel an in-flight call until its response
// headers arrive. Create one with NewAbortHandle, place it in
// RequestConfig.Abort, and call Abort from any goroutine.
// A handle serves a single call.
type AbortHandle struct {
	mu     sync.Mutex
	state  abortState
	cancel context.CancelCauseFunc
	log    *logger.Logger
}

// NewAbortHandle returns an unarmed handle.
func NewAbortHandle() *AbortHandle {
	return &AbortHandle{}
}

// Abort cancels the call. Before the call starts the cancellation is
// remembered and applied as soon as it does. Once headers have been
// received Abort only logs a warning.
func (h *AbortHandle) Abort() {
	if h == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	switch h.state {
	case abortIdle:
		h.state = abortAborted
	case abortArmed:
		h.state = abortAborted
		h.cancel(ErrAborted)
	case abortSettled:
		log := h.log
		if log == nil {
			log = logger.WithComponent("httpclient")
		}
		log.Warn("fetch can't be aborted after response headers are received")
	}
}

// Aborted reports whether Abort took effect.
func (h *AbortHandle) Aborted() bool {
	if h == nil {
		return false
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state == abortAborted
}

func (h *AbortHandle) arm(cancel context.CancelCauseFunc, log *logger.Logger) {
	if h == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	h.log = log
	if h.state == abortAborted {
		cancel(ErrAborted)
		return
	}
	h.cancel = cancel
	h.state = abortArmed
}

// settle marks the point after which cancellation is no longer possible.
// It runs when the first response byte arrives and again once the
// transport returns.
func (h *AbortHandle) settle() {
	if h == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.state == abortArmed {
		h.state = abortSettled
	}
}

// reopen re-arms a settled handle when a redirect starts another hop.
func (h *AbortHandle) reopen() {
	if h == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.state == abortSettled && h.cancel != nil {
		h.state = abortArmed
	}
}

// trace settles the handle on the first response byte and re-arms it for
// each redirect hop.
func (h *AbortHandle) trace() *httptrace.ClientTrace {
	return &httptrace.ClientTrace{
		GetConn:              func(string) { h.reopen() },
		GotFirstResponseByte: h.settle,
	}
}
