package workflows

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	oteltrace "go.opentelemetry.io/otel/trace"
)

func TestBuildSweepWorkflowID(t *testing.T) {
	asOf := time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "triage-sweep-1718186400-abc", buildSweepWorkflowID(asOf, "abc"))
	assert.Equal(t, "triage-sweep-now-abc", buildSweepWorkflowID(time.Time{}, "abc"))
}

func TestWorkflowTraceComponent(t *testing.T) {
	assert.True(t, strings.HasPrefix(workflowTraceComponent(context.Background()), "fallback-"))

	traceID, err := oteltrace.TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")
	require.NoError(t, err)
	spanID, err := oteltrace.SpanIDFromHex("0102030405060708")
	require.NoError(t, err)
	ctx := oteltrace.ContextWithSpanContext(context.Background(), oteltrace.NewSpanContext(oteltrace.SpanContextConfig{
		TraceID: traceID,
		SpanID:  spanID,
	}))
	assert.Equal(t, "0102030405060708090a0b0c0d0e0f10", workflowTraceComponent(ctx))
}

func TestInlineSweepsNotConfigured(t *testing.T) {
	_, err := (&InlineSweeps{}).RunSweep(context.Background(), time.Time{})
	assert.Error(t, err)
}
