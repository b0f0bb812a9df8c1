package middleware

import (
	"context"
	"fmt"

	"github.com/vango-dev/vtree/pkg/app"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Default tracer name.
const defaultTracerName = "vtree"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "vtree").
	TracerName string

	// TracerProvider overrides the global provider.
	TracerProvider trace.TracerProvider

	// Filter determines which cycles to trace.
	// If nil, all cycles are traced.
	Filter func(c *app.Cycle) bool

	// AttributeExtractor adds custom attributes to each cycle span.
	AttributeExtractor func(c *app.Cycle) []attribute.KeyValue
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) {
		c.TracerProvider = tp
	}
}

// WithCycleFilter sets a filter function for cycles.
func WithCycleFilter(filter func(c *app.Cycle) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(c *app.Cycle) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

// OpenTelemetry returns cycle middleware that wraps every render cycle in a
// span. The span context is passed down the chain, so later middleware and
// snapshot stores see it.
//
// The tracer comes from the global provider unless WithTracerProvider is
// used. Configure it in main() before mounting:
//
//	otel.SetTracerProvider(tp)
func OpenTelemetry(opts ...OTelOption) app.Middleware {
	config := OTelConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}

	provider := config.TracerProvider
	if provider == nil {
		provider = otel.GetTracerProvider()
	}
	tracer := provider.Tracer(config.TracerName)

	return func(ctx context.Context, c *app.Cycle, next func(context.Context) error) error {
		if config.Filter != nil && !config.Filter(c) {
			return next(ctx)
		}

		attrs := []attribute.KeyValue{
			attribute.Int64("vtree.seq", int64(c.Seq)),
			attribute.String("vtree.action", c.Action),
			attribute.Bool("vtree.mount", c.Mount),
		}
		if config.AttributeExtractor != nil {
			attrs = append(attrs, config.AttributeExtractor(c)...)
		}

		spanCtx, span := tracer.Start(ctx, fmt.Sprintf("vtree.cycle %s", c.Action),
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithAttributes(attrs...),
		)
		defer span.End()

		err := next(spanCtx)

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.SetAttributes(attribute.Int("vtree.mutations", c.Mutations))
		for kind, n := range c.Changes {
			span.SetAttributes(attribute.Int("vtree.changes."+kind.String(), n))
		}

		return err
	}
}
