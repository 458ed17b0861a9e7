package algorithm

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/bandkon/kon/internal/algorithm"

// tracedCallback wraps a Callback so that OnStarted opens a span
// (kon.scheduler.assign) kept alive until OnCompleted, with one child span
// per OnAssigned delivery. When OTel tracing is disabled (the default,
// OTEL_ENABLED=false) the global TracerProvider is the no-op implementation,
// so this costs nothing beyond a couple of interface calls.
type tracedCallback struct {
	inner Callback
	ctx   context.Context
	span  trace.Span
	seq   int
}

// Traced wraps cb so its events are reported as OpenTelemetry spans. It adds
// no scheduling behavior — every call is forwarded to cb unchanged.
func Traced(cb Callback) Callback {
	return &tracedCallback{inner: cb, ctx: context.Background()}
}

func (t *tracedCallback) OnStarted(info SchedulerInfo) {
	t.ctx, t.span = otel.Tracer(tracerName).Start(t.ctx, "kon.scheduler.assign",
		trace.WithAttributes(attribute.Int64("kon.scheduler.search_space", int64(info.Count))))
	t.inner.OnStarted(info)
}

func (t *tracedCallback) OnProgress(info TaskInfo) {
	if t.span != nil {
		t.span.AddEvent("progress", trace.WithAttributes(
			attribute.Int("kon.scheduler.task_id", info.TaskID),
			attribute.Int("kon.scheduler.completed", info.Completed),
			attribute.Int("kon.scheduler.total", info.Total),
		))
	}
	t.inner.OnProgress(info)
}

func (t *tracedCallback) OnAssigned(table map[BlockId]BandId, rm *RoomMatrix, li *LiveInfo) {
	_, span := otel.Tracer(tracerName).Start(t.ctx, "kon.scheduler.on_assigned",
		trace.WithAttributes(attribute.Int("kon.scheduler.assignment_size", len(table))))
	t.seq++
	span.SetAttributes(attribute.Int("kon.scheduler.sequence", t.seq))
	t.inner.OnAssigned(table, rm, li)
	span.End()
}

func (t *tracedCallback) OnCompleted() {
	t.inner.OnCompleted()
	if t.span != nil {
		t.span.SetAttributes(attribute.Int("kon.scheduler.assignment_count", t.seq))
		t.span.End()
	}
}
