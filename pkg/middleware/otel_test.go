package middleware

import (
	"context"
	"errors"
	"testing"

	"github.com/vango-dev/vtree/pkg/app"
	"github.com/vango-dev/vtree/pkg/dom"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

type recordedSpan struct {
	noop.Span
	name   string
	attrs  map[attribute.Key]attribute.Value
	status codes.Code
	errs   []error
	ended  bool
}

func (s *recordedSpan) SetAttributes(kv ...attribute.KeyValue) {
	for _, a := range kv {
		s.attrs[a.Key] = a.Value
	}
}

func (s *recordedSpan) SetStatus(code codes.Code, _ string) { s.status = code }

func (s *recordedSpan) RecordError(err error, _ ...trace.EventOption) { s.errs = append(s.errs, err) }

func (s *recordedSpan) End(...trace.SpanEndOption) { s.ended = true }

type recordingTracer struct {
	noop.Tracer
	spans []*recordedSpan
}

func (r *recordingTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	s := &recordedSpan{name: name, attrs: make(map[attribute.Key]attribute.Value)}
	cfg := trace.NewSpanStartConfig(opts...)
	s.SetAttributes(cfg.Attributes()...)
	r.spans = append(r.spans, s)
	return trace.ContextWithSpan(ctx, s), s
}

type recordingProvider struct {
	noop.TracerProvider
	tracer *recordingTracer
}

func (p recordingProvider) Tracer(string, ...trace.TracerOption) trace.Tracer { return p.tracer }

func TestOpenTelemetrySpans(t *testing.T) {
	tracer := &recordingTracer{}
	var inner trace.Span
	capture := func(ctx context.Context, c *app.Cycle, next func(context.Context) error) error {
		inner = trace.SpanFromContext(ctx)
		return next(ctx)
	}
	a := mountCounter(t,
		OpenTelemetry(
			WithTracerProvider(recordingProvider{tracer: tracer}),
			WithAttributeExtractor(func(*app.Cycle) []attribute.KeyValue {
				return []attribute.KeyValue{attribute.String("test.attr", "ok")}
			}),
		),
		capture,
	)

	if err := a.Dispatch(context.Background(), increment); err != nil {
		t.Fatal(err)
	}

	if len(tracer.spans) != 2 {
		t.Fatalf("spans = %d, want 2", len(tracer.spans))
	}
	s := tracer.spans[1]
	if s.name != "vtree.cycle middleware.increment" {
		t.Errorf("name = %q", s.name)
	}
	if inner != trace.Span(s) {
		t.Error("span was not passed down the chain")
	}
	if !s.ended || s.status != codes.Ok {
		t.Errorf("ended = %v, status = %v", s.ended, s.status)
	}
	checks := map[attribute.Key]attribute.Value{
		"vtree.seq":                 attribute.Int64Value(2),
		"vtree.mount":               attribute.BoolValue(false),
		"vtree.mutations":           attribute.IntValue(1),
		"vtree.changes.TextChanged": attribute.IntValue(1),
		"test.attr":                 attribute.StringValue("ok"),
	}
	for k, want := range checks {
		if got := s.attrs[k]; got != want {
			t.Errorf("%s = %v, want %v", k, got.Emit(), want.Emit())
		}
	}
}

func TestOpenTelemetryError(t *testing.T) {
	tracer := &recordingTracer{}
	a := mountCounter(t, OpenTelemetry(WithTracerProvider(recordingProvider{tracer: tracer})))

	err := a.Dispatch(context.Background(), negate)
	if err == nil {
		t.Fatal("Dispatch = nil, want error")
	}
	s := tracer.spans[len(tracer.spans)-1]
	if s.status != codes.Error || len(s.errs) != 1 || !errors.Is(s.errs[0], dom.ErrUnknownTag) {
		t.Errorf("status = %v, errs = %v", s.status, s.errs)
	}
}

func TestOpenTelemetryFilter(t *testing.T) {
	tracer := &recordingTracer{}
	a := mountCounter(t, OpenTelemetry(
		WithTracerProvider(recordingProvider{tracer: tracer}),
		WithCycleFilter(func(c *app.Cycle) bool { return !c.Mount }),
	))
	if len(tracer.spans) != 0 {
		t.Fatalf("mount traced: %d spans", len(tracer.spans))
	}
	if err := a.Dispatch(context.Background(), increment); err != nil {
		t.Fatal(err)
	}
	if len(tracer.spans) != 1 {
		t.Errorf("spans = %d, want 1", len(tracer.spans))
	}
}
