package detect

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// instruments are the detector's OpenTelemetry metrics. The global meter
// provider is a no-op unless the host process installs an SDK, so the
// library stays transport-free.
type instruments struct {
	classifications metric.Int64Counter
	latency         metric.Float64Histogram
}

func newInstruments() *instruments {
	meter := otel.Meter("uascan/detect")
	classifications, _ := meter.Int64Counter("uascan_classifications_total",
		metric.WithDescription("Classification calls by outcome"))
	latency, _ := meter.Float64Histogram("uascan_classification_seconds",
		metric.WithDescription("Classification latency"))
	return &instruments{classifications: classifications, latency: latency}
}

func (in *instruments) record(elapsed time.Duration, res Result) {
	outcome := "unknown"
	switch {
	case res.Bot != nil:
		outcome = "bot"
	case !res.Empty():
		outcome = "detected"
	}
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	ctx := context.Background()
	in.classifications.Add(ctx, 1, attrs)
	in.latency.Record(ctx, elapsed.Seconds(), attrs)
}
