package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace"
)

func TestInit_DisabledByDefault(t *testing.T) {
	// No OTEL_ENABLED in the environment: Init must be a no-op.
	shutdown, err := Init(context.Background())
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
	assert.False(t, Enabled())
}

func TestCreateSampler(t *testing.T) {
	tests := []struct {
		sampler string
		arg     string
		want    trace.Sampler
	}{
		{"", "", trace.AlwaysSample()},
		{"always_on", "", trace.AlwaysSample()},
		{"always_off", "", trace.NeverSample()},
		{"traceidratio", "0.25", trace.TraceIDRatioBased(0.25)},
		{"traceidratio", "garbage", trace.TraceIDRatioBased(1.0)},
		{"traceidratio", "7", trace.TraceIDRatioBased(1.0)},
		{"parentbased_always_on", "", trace.ParentBased(trace.AlwaysSample())},
		{"parentbased_always_off", "", trace.ParentBased(trace.NeverSample())},
	}

	for _, tc := range tests {
		got := createSampler(&Config{Sampler: tc.sampler, SamplerArg: tc.arg})
		assert.Equal(t, tc.want.Description(), got.Description(), "sampler %q arg %q", tc.sampler, tc.arg)
	}
}

func TestParseRatio(t *testing.T) {
	assert.Equal(t, 1.0, parseRatio(""))
	assert.Equal(t, 0.5, parseRatio("0.5"))
	assert.Equal(t, 0.0, parseRatio("-3"))
	assert.Equal(t, 1.0, parseRatio("2"))
	assert.Equal(t, 1.0, parseRatio("not-a-number"))
}
