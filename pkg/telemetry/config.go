package telemetry

import (
	"os"
	"strconv"
	"strings"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// DefaultServiceName is reported when OTEL_SERVICE_NAME is unset.
const DefaultServiceName = "mat-analysis"

// Config holds the tracing settings read from OTEL_* variables.
type Config struct {
	Enabled        bool              // OTEL_ENABLED
	ServiceName    string            // OTEL_SERVICE_NAME
	ServiceVersion string            // OTEL_SERVICE_VERSION
	Endpoint       string            // OTEL_EXPORTER_OTLP_ENDPOINT
	Protocol       string            // OTEL_EXPORTER_OTLP_PROTOCOL: grpc or http/protobuf
	Headers        map[string]string // OTEL_EXPORTER_OTLP_HEADERS
	Insecure       bool              // OTEL_EXPORTER_OTLP_INSECURE

	// Sampler is one of always_on, always_off, traceidratio and their
	// parentbased_ variants. SamplerArg carries the ratio.
	Sampler    string
	SamplerArg string

	ResourceAttrs map[string]string // OTEL_RESOURCE_ATTRIBUTES
}

// LoadFromEnv reads the process environment.
func LoadFromEnv() *Config {
	return LoadFromLookup(os.Getenv)
}

// LoadFromLookup reads configuration through getenv.
func LoadFromLookup(getenv func(string) string) *Config {
	or := func(key, def string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return def
	}
	isTrue := func(key string) bool {
		return strings.EqualFold(strings.TrimSpace(getenv(key)), "true")
	}

	return &Config{
		Enabled:        isTrue("OTEL_ENABLED"),
		ServiceName:    or("OTEL_SERVICE_NAME", DefaultServiceName),
		ServiceVersion: or("OTEL_SERVICE_VERSION", "unknown"),
		Endpoint:       getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		Protocol:       or("OTEL_EXPORTER_OTLP_PROTOCOL", "grpc"),
		Headers:        parseKeyValuePairs(getenv("OTEL_EXPORTER_OTLP_HEADERS")),
		Insecure:       isTrue("OTEL_EXPORTER_OTLP_INSECURE"),
		Sampler:        getenv("OTEL_TRACES_SAMPLER"),
		SamplerArg:     getenv("OTEL_TRACES_SAMPLER_ARG"),
		ResourceAttrs:  parseKeyValuePairs(getenv("OTEL_RESOURCE_ATTRIBUTES")),
	}
}

// parseKeyValuePairs splits "k1=v1,k2=v2". Values may contain '='.
func parseKeyValuePairs(s string) map[string]string {
	out := make(map[string]string)
	for _, pair := range strings.Split(s, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(pair), "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			continue
		}
		out[key] = strings.TrimSpace(value)
	}
	return out
}

func (c *Config) sampler() sdktrace.Sampler {
	switch c.Sampler {
	case "always_off":
		return sdktrace.NeverSample()
	case "traceidratio":
		return sdktrace.TraceIDRatioBased(parseRatio(c.SamplerArg))
	case "parentbased_always_on":
		return sdktrace.ParentBased(sdktrace.AlwaysSample())
	case "parentbased_always_off":
		return sdktrace.ParentBased(sdktrace.NeverSample())
	case "parentbased_traceidratio":
		return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(parseRatio(c.SamplerArg)))
	default:
		return sdktrace.AlwaysSample()
	}
}

// parseRatio clamps to [0, 1] and falls back to full sampling.
func parseRatio(s string) float64 {
	ratio, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 1
	}
	return min(max(ratio, 0), 1)
}
