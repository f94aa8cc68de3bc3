package element

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Default tracer name for Glint applications.
const defaultTracerName = "glint"

// TracingConfig configures the OpenTelemetry interceptor.
type TracingConfig struct {
	// TracerName is the name of the tracer (default: "glint").
	TracerName string

	// AttributeExtractor adds custom attributes to each span.
	AttributeExtractor func(kind string) []attribute.KeyValue

	// tracer is the resolved tracer instance.
	tracer trace.Tracer
}

// TracingOption configures the OpenTelemetry interceptor.
type TracingOption func(*TracingConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TracingOption {
	return func(c *TracingConfig) {
		c.TracerName = name
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(kind string) []attribute.KeyValue) TracingOption {
	return func(c *TracingConfig) {
		c.AttributeExtractor = extractor
	}
}

// Tracing returns an interceptor that creates a span for each element
// submission, recording the element kind and any error.
//
// The tracer uses the global OpenTelemetry tracer provider. Configure the
// provider in main() before starting the server.
func Tracing(opts ...TracingOption) Interceptor {
	config := TracingConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	config.tracer = otel.Tracer(config.TracerName)

	return func(ctx context.Context, kind string, next func() error) error {
		attrs := []attribute.KeyValue{
			attribute.String("glint.element.kind", kind),
		}
		if config.AttributeExtractor != nil {
			attrs = append(attrs, config.AttributeExtractor(kind)...)
		}

		_, span := config.tracer.Start(ctx, "glint.enqueue",
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithAttributes(attrs...))
		defer span.End()

		err := next()
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		return err
	}
}
