package quickfix

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/yaklabco/javafix/pkg/quickfix"

// instruments records fix invocations through the global meter provider.
// Instruments that fail to build are left nil and skipped.
type instruments struct {
	invocations metric.Int64Counter
	failures    metric.Int64Counter
}

//nolint:gochecknoglobals // instruments are shared by every instance
var sharedInstruments = sync.OnceValue(newInstruments)

func newInstruments() instruments {
	meter := otel.Meter(meterName)

	var inst instruments
	inst.invocations, _ = meter.Int64Counter(
		"javafix_fix_invocations_total",
		metric.WithDescription("Total number of quick-fix invocations"),
	)
	inst.failures, _ = meter.Int64Counter(
		"javafix_fix_failures_total",
		metric.WithDescription("Total number of failed quick-fix invocations"),
	)
	return inst
}

func (m instruments) recordInvocation(ctx context.Context, family string) {
	if m.invocations == nil {
		return
	}
	m.invocations.Add(ctx, 1, metric.WithAttributes(attribute.String("family", family)))
}

func (m instruments) recordFailure(ctx context.Context, family, reason string) {
	if m.failures == nil {
		return
	}
	m.failures.Add(ctx, 1, metric.WithAttributes(
		attribute.String("family", family),
		attribute.String("reason", reason),
	))
}
