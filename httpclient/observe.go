package httpclient

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/fetchkit/logger"
	"github.com/kbukum/fetchkit/observability"
)

// finish closes the span, records metrics and logs the outcome of a call.
func (c *Client) finish(ctx context.Context, span trace.Span, log *logger.Logger, method string, res *FetchResult, err error, d time.Duration) {
	defer span.End()

	outcome := "ok"
	status := 0
	var received int64
	if res != nil {
		status = res.Code
		received = int64(len(res.text))
	}

	if err != nil {
		var e *Error
		if errors.As(err, &e) {
			outcome = e.Kind.String()
			status = e.StatusCode
		} else {
			outcome = "error"
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.String(observability.AttrErrorKind, outcome))
		log.WithError(err).Debug("fetch failed", logger.MergeWithDuration(logger.Fields(
			logger.FieldKind, outcome,
			logger.FieldStatus, status,
		), d))
	} else {
		log.Debug("fetch completed", logger.MergeWithDuration(logger.Fields(
			logger.FieldStatus, status,
			logger.FieldBytes, received,
		), d))
	}
	if status > 0 {
		span.SetAttributes(attribute.Int(observability.AttrHTTPStatus, status))
	}

	c.metrics.RecordEnd(ctx, method, outcome, status, received, d)
}
