package telemetry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/dtroode/letterbox-server/internal/apperrors"
)

func newTestInstruments(t *testing.T) (*Instruments, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	ins, err := New(tracenoop.NewTracerProvider(), mp)
	require.NoError(t, err)
	return ins, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func sumOf(t *testing.T, m metricdata.Metrics) int64 {
	t.Helper()
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "metric %s is not an int64 sum", m.Name)
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func TestInstruments_RecordSend(t *testing.T) {
	ins, reader := newTestInstruments(t)
	ctx := context.Background()

	ins.RecordSend(ctx, 20*time.Millisecond, 2)
	ins.RecordSend(ctx, 10*time.Millisecond, 3)

	metrics := collect(t, reader)
	assert.Equal(t, int64(2), sumOf(t, metrics["letterbox.messages.sent"]))
	assert.Equal(t, int64(5), sumOf(t, metrics["letterbox.recipients.created"]))

	hist, ok := metrics["letterbox.send.duration"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, hist.DataPoints, 1)
	assert.Equal(t, uint64(2), hist.DataPoints[0].Count)
}

func TestInstruments_RecordRead(t *testing.T) {
	ins, reader := newTestInstruments(t)

	ins.RecordRead(context.Background())

	metrics := collect(t, reader)
	assert.Equal(t, int64(1), sumOf(t, metrics["letterbox.entries.read"]))
}

func TestInstruments_StartSpan_CountsErrors(t *testing.T) {
	ins, reader := newTestInstruments(t)
	ctx := context.Background()

	_, end := ins.StartSpan(ctx, "send")
	end(nil)
	_, end = ins.StartSpan(ctx, "send")
	end(apperrors.NewErrSenderNotFound())
	_, end = ins.StartSpan(ctx, "inbox")
	end(errors.New("connection reset"))

	metrics := collect(t, reader)
	errs := metrics["letterbox.operation.errors"]
	assert.Equal(t, int64(2), sumOf(t, errs))

	kinds := map[string]bool{}
	for _, dp := range errs.Data.(metricdata.Sum[int64]).DataPoints {
		v, ok := dp.Attributes.Value("kind")
		require.True(t, ok)
		kinds[v.AsString()] = true
	}
	assert.True(t, kinds["not_found"])
	assert.True(t, kinds["internal"])
}

func TestNoop(t *testing.T) {
	ins := Noop()
	require.NotNil(t, ins)

	ctx, end := ins.StartSpan(context.Background(), "noop")
	assert.NotNil(t, ctx)
	end(errors.New("ignored"))
	ins.RecordSend(ctx, time.Second, 1)
	ins.RecordRead(ctx)
}
