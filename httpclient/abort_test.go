package httpclient

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kbukum/fetchkit/logger"
)

func TestAbortHandle_NilSafe(t *testing.T) {
	var h *AbortHandle
	h.arm(func(error) { t.Error("nil handle must not cancel") }, nil)
	h.settle()
	h.reopen()
	h.Abort()
	if h.Aborted() {
		t.Error("nil handle must not report aborted")
	}
}

func TestAbortHandle_BeforeArmIsRemembered(t *testing.T) {
	h := NewAbortHandle()
	h.Abort()

	var cause error
	h.arm(func(err error) { cause = err }, nil)
	if !errors.Is(cause, ErrAborted) {
		t.Errorf("expected arm to cancel with ErrAborted, got %v", cause)
	}
	if !h.Aborted() {
		t.Error("expected handle to stay aborted")
	}
}

func TestAbortHandle_WhileArmed(t *testing.T) {
	ctx, cancel := context.WithCancelCause(context.Background())
	h := NewAbortHandle()
	h.arm(cancel, nil)
	h.Abort()

	if !errors.Is(context.Cause(ctx), ErrAborted) {
		t.Errorf("expected context cause ErrAborted, got %v", context.Cause(ctx))
	}
	h.Abort()
	if !h.Aborted() {
		t.Error("expected aborted state")
	}
}

func TestAbortHandle_AfterSettleOnlyWarns(t *testing.T) {
	var buf bytes.Buffer
	ctx, cancel := context.WithCancelCause(context.Background())
	h := NewAbortHandle()
	h.arm(cancel, logger.NewWithWriter(&buf, "warn"))
	h.settle()
	h.Abort()

	if ctx.Err() != nil {
		t.Error("settled handle must not cancel")
	}
	if h.Aborted() {
		t.Error("settled handle must not report aborted")
	}
	if !strings.Contains(buf.String(), "after response headers") {
		t.Errorf("expected warning, got %q", buf.String())
	}
}

func TestAbortHandle_ReopenForRedirectHop(t *testing.T) {
	ctx, cancel := context.WithCancelCause(context.Background())
	h := NewAbortHandle()
	tr := h.trace()
	h.arm(cancel, nil)

	tr.GetConn("a:80")
	tr.GotFirstResponseByte()
	tr.GetConn("b:80")
	h.Abort()

	if !errors.Is(context.Cause(ctx), ErrAborted) {
		t.Errorf("abort during a redirect hop must cancel, got %v", context.Cause(ctx))
	}
}
