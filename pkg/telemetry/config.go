package telemetry

import (
	"os"
	"strings"
)

// Config holds OpenTelemetry configuration loaded from environment
// variables.
type Config struct {
	// Enabled comes from OTEL_ENABLED.
	Enabled bool

	// ServiceName comes from OTEL_SERVICE_NAME, default "set-challenge".
	ServiceName string

	// ServiceVersion comes from OTEL_SERVICE_VERSION, default "unknown".
	ServiceVersion string

	// Endpoint is the OTLP collector endpoint
	// (OTEL_EXPORTER_OTLP_ENDPOINT).
	Endpoint string

	// Protocol is grpc or http/protobuf
	// (OTEL_EXPORTER_OTLP_PROTOCOL, default grpc).
	Protocol string

	// Headers for the exporter, e.g. authentication
	// (OTEL_EXPORTER_OTLP_HEADERS, "k1=v1,k2=v2").
	Headers map[string]string

	// Insecure disables TLS (OTEL_EXPORTER_OTLP_INSECURE).
	Insecure bool

	// Sampler selects the sampler (OTEL_TRACES_SAMPLER): always_on,
	// always_off, traceidratio and the parentbased_ variants.
	Sampler string

	// SamplerArg is the sampler argument (OTEL_TRACES_SAMPLER_ARG).
	SamplerArg string

	// ResourceAttrs holds extra resource attributes
	// (OTEL_RESOURCE_ATTRIBUTES, "k1=v1,k2=v2").
	ResourceAttrs map[string]string
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() *Config {
	return &Config{
		Enabled:        strings.EqualFold(os.Getenv("OTEL_ENABLED"), "true"),
		ServiceName:    getEnvOrDefault("OTEL_SERVICE_NAME", "set-challenge"),
		ServiceVersion: getEnvOrDefault("OTEL_SERVICE_VERSION", "unknown"),
		Endpoint:       os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		Protocol:       getEnvOrDefault("OTEL_EXPORTER_OTLP_PROTOCOL", "grpc"),
		Headers:        parseKeyValuePairs(os.Getenv("OTEL_EXPORTER_OTLP_HEADERS")),
		Insecure:       strings.EqualFold(os.Getenv("OTEL_EXPORTER_OTLP_INSECURE"), "true"),
		Sampler:        os.Getenv("OTEL_TRACES_SAMPLER"),
		SamplerArg:     os.Getenv("OTEL_TRACES_SAMPLER_ARG"),
		ResourceAttrs:  parseKeyValuePairs(os.Getenv("OTEL_RESOURCE_ATTRIBUTES")),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseKeyValuePairs parses a comma-separated list of key=value pairs.
func parseKeyValuePairs(s string) map[string]string {
	result := make(map[string]string)
	if s == "" {
		return result
	}
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		// Split on the first '=' only, so values may contain '='.
		idx := strings.Index(pair, "=")
		if idx <= 0 {
			continue
		}
		key := strings.TrimSpace(pair[:idx])
		value := strings.TrimSpace(pair[idx+1:])
		if key != "" {
			result[key] = value
		}
	}
	return result
}
