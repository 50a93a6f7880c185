package eidglue

import (
	"context"
	"time"

	"github.com/opentracing/opentracing-go"
	otlog "github.com/opentracing/opentracing-go/log"
)

// startBatchSpan opens a span for one ScanFiles call the way
// concurrentFind opens "ConcurrentFind": tagged with the batch size. When
// ctx carries a deadline, the returned context's timeout is shortened to
// 90% of the remaining time and that timeout is logged on the span.
func startBatchSpan(ctx context.Context, fileCount int) (opentracing.Span, context.Context, context.CancelFunc) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "eidglue.ScanFiles")
	span.SetTag("eid.file_count", fileCount)

	var cancel context.CancelFunc
	if deadline, ok := ctx.Deadline(); ok {
		timeout := time.Duration(0.9 * float64(time.Until(deadline)))
		span.LogFields(otlog.Int64("timeoutNanos", int64(timeout)))
		ctx, cancel = context.WithTimeout(ctx, timeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}
	return span, ctx, cancel
}

func finishBatchSpan(span opentracing.Span, err error) {
	if err != nil {
		span.SetTag("error", true)
		span.LogFields(otlog.String("err", err.Error()))
	}
	span.Finish()
}
