package telemetry

import (
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func lookup(env map[string]string) func(string) string {
	return func(k string) string { return env[k] }
}

func TestLoadFromLookup_Defaults(t *testing.T) {
	cfg := LoadFromLookup(lookup(nil))

	if cfg.Enabled {
		t.Error("Expected Enabled to be false by default")
	}
	if cfg.ServiceName != DefaultServiceName {
		t.Errorf("Expected ServiceName %q, got %q", DefaultServiceName, cfg.ServiceName)
	}
	if cfg.ServiceVersion != "unknown" {
		t.Errorf("Expected ServiceVersion 'unknown', got %q", cfg.ServiceVersion)
	}
	if cfg.Protocol != "grpc" {
		t.Errorf("Expected Protocol 'grpc', got %q", cfg.Protocol)
	}
	if len(cfg.Headers) != 0 {
		t.Errorf("Expected no headers, got %v", cfg.Headers)
	}
}

func TestLoadFromLookup_Values(t *testing.T) {
	cfg := LoadFromLookup(lookup(map[string]string{
		"OTEL_ENABLED":                "TRUE",
		"OTEL_SERVICE_NAME":           "viewer",
		"OTEL_EXPORTER_OTLP_PROTOCOL": "http/protobuf",
		"OTEL_EXPORTER_OTLP_HEADERS":  "Authorization=Bearer a=b, x-team = sim",
		"OTEL_EXPORTER_OTLP_INSECURE": "true",
		"OTEL_RESOURCE_ATTRIBUTES":    "env=test,=skipped,novalue",
	}))

	if !cfg.Enabled || !cfg.Insecure {
		t.Error("Expected Enabled and Insecure to be true")
	}
	if cfg.ServiceName != "viewer" {
		t.Errorf("unexpected service name %q", cfg.ServiceName)
	}
	if cfg.Headers["Authorization"] != "Bearer a=b" || cfg.Headers["x-team"] != "sim" {
		t.Errorf("unexpected headers %v", cfg.Headers)
	}
	if len(cfg.ResourceAttrs) != 1 || cfg.ResourceAttrs["env"] != "test" {
		t.Errorf("unexpected resource attrs %v", cfg.ResourceAttrs)
	}
}

func TestParseRatio(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"", 1},
		{"bogus", 1},
		{"0.25", 0.25},
		{"-1", 0},
		{"3", 1},
	}
	for _, tt := range tests {
		if got := parseRatio(tt.in); got != tt.want {
			t.Errorf("parseRatio(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSampler(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"", sdktrace.AlwaysSample().Description()},
		{"always_off", sdktrace.NeverSample().Description()},
		{"traceidratio", sdktrace.TraceIDRatioBased(0.5).Description()},
		{"parentbased_always_on", sdktrace.ParentBased(sdktrace.AlwaysSample()).Description()},
	}
	for _, tt := range tests {
		cfg := &Config{Sampler: tt.name, SamplerArg: "0.5"}
		if got := cfg.sampler().Description(); got != tt.want {
			t.Errorf("sampler %q: got %q, want %q", tt.name, got, tt.want)
		}
	}
}
