// Package telemetry wires OpenTelemetry tracing for the load pipeline.
//
// Tracing is configured from the standard OTEL_* environment variables and
// stays a no-op unless OTEL_ENABLED=true. Code that wants spans calls
// StartSpan and Finish; both are safe when tracing is disabled.
package telemetry

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentationName identifies spans created by this module.
const InstrumentationName = "github.com/mat-analysis"

var (
	mu      sync.RWMutex
	current *Config
)

// ShutdownFunc flushes and stops the tracer provider.
type ShutdownFunc func(ctx context.Context) error

func noopShutdown(_ context.Context) error {
	return nil
}

// Init installs a global TracerProvider when tracing is enabled. When it is
// not, the default no-op provider stays in place.
func Init(ctx context.Context) (ShutdownFunc, error) {
	cfg := GetConfig()
	if !cfg.Enabled {
		return noopShutdown, nil
	}

	res, err := buildResource(ctx, cfg)
	if err != nil {
		return noopShutdown, err
	}
	exporter, err := createExporter(ctx, cfg)
	if err != nil {
		return noopShutdown, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithBatcher(exporter),
		sdktrace.WithSampler(cfg.sampler()),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return tp.Shutdown, nil
}

// Enabled reports whether tracing is turned on.
func Enabled() bool {
	return GetConfig().Enabled
}

// GetConfig returns the active configuration, loading it from the
// environment on first use.
func GetConfig() *Config {
	mu.RLock()
	cfg := current
	mu.RUnlock()
	if cfg != nil {
		return cfg
	}

	mu.Lock()
	defer mu.Unlock()
	if current == nil {
		current = LoadFromEnv()
	}
	return current
}

// SetConfig replaces the active configuration. Passing nil makes the next
// GetConfig reload from the environment.
func SetConfig(cfg *Config) {
	mu.Lock()
	current = cfg
	mu.Unlock()
}

// Tracer returns the module tracer from the global provider.
func Tracer() trace.Tracer {
	return otel.Tracer(InstrumentationName)
}

// StartSpan opens a child span of whatever span ctx carries.
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return Tracer().Start(ctx, name, trace.WithAttributes(attrs...))
}

// Finish records err on the span, if any, and ends it.
func Finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
