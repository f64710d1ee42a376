// Package telemetry holds the OpenTelemetry instruments used by services.
package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/dtroode/letterbox-server/internal/apperrors"
)

const instrumentationName = "github.com/dtroode/letterbox-server"

// Instruments records spans and metrics for messaging operations.
type Instruments struct {
	tracer trace.Tracer

	messagesSent      metric.Int64Counter
	recipientsCreated metric.Int64Counter
	entriesRead       metric.Int64Counter
	operationErrors   metric.Int64Counter
	sendDuration      metric.Float64Histogram
}

// New creates instruments from the given providers.
func New(tp trace.TracerProvider, mp metric.MeterProvider) (*Instruments, error) {
	meter := mp.Meter(instrumentationName)
	ins := &Instruments{tracer: tp.Tracer(instrumentationName)}

	var err error

	ins.messagesSent, err = meter.Int64Counter(
		"letterbox.messages.sent",
		metric.WithDescription("Number of messages persisted"),
	)
	if err != nil {
		return nil, err
	}

	ins.recipientsCreated, err = meter.Int64Counter(
		"letterbox.recipients.created",
		metric.WithDescription("Number of recipient entries created by fan-out"),
	)
	if err != nil {
		return nil, err
	}

	ins.entriesRead, err = meter.Int64Counter(
		"letterbox.entries.read",
		metric.WithDescription("Number of recipient entries transitioned to read"),
	)
	if err != nil {
		return nil, err
	}

	ins.operationErrors, err = meter.Int64Counter(
		"letterbox.operation.errors",
		metric.WithDescription("Number of failed service operations"),
	)
	if err != nil {
		return nil, err
	}

	ins.sendDuration, err = meter.Float64Histogram(
		"letterbox.send.duration",
		metric.WithDescription("Duration of send operations"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return ins, nil
}

// NewGlobal creates instruments from the global OpenTelemetry providers.
func NewGlobal() (*Instruments, error) {
	return New(otel.GetTracerProvider(), otel.GetMeterProvider())
}

// Noop returns instruments that record nothing.
func Noop() *Instruments {
	ins, _ := New(tracenoop.NewTracerProvider(), metricnoop.NewMeterProvider())
	return ins
}

// StartSpan starts an internal span named op. The returned function ends the
// span and counts err, if any, under letterbox.operation.errors.
func (i *Instruments) StartSpan(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	ctx, span := i.tracer.Start(ctx, op,
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			i.operationErrors.Add(ctx, 1, metric.WithAttributes(
				attribute.String("operation", op),
				attribute.String("kind", errorKind(err)),
			))
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()
	}
}

// RecordSend records a persisted message and its fan-out size.
func (i *Instruments) RecordSend(ctx context.Context, duration time.Duration, recipientCount int) {
	i.sendDuration.Record(ctx, duration.Seconds())
	i.messagesSent.Add(ctx, 1)
	i.recipientsCreated.Add(ctx, int64(recipientCount))
}

// RecordRead records one unread to read transition.
func (i *Instruments) RecordRead(ctx context.Context) {
	i.entriesRead.Add(ctx, 1)
}

func errorKind(err error) string {
	if apiErr, ok := apperrors.As(err); ok {
		return string(apiErr.Kind)
	}
	return "internal"
}
