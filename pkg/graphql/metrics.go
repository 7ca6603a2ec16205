package graphql

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var (
	requestCounter  metric.Int64Counter
	requestDuration metric.Int64Histogram
)

// The instruments are no-ops until the host application installs a meter
// provider.
func init() {
	meter := otel.Meter("monarch-api/graphql",
		metric.WithInstrumentationVersion(otel.Version()),
	)

	var err error

	requestCounter, err = meter.Int64Counter(
		"graphql.request_count",
		metric.WithDescription("Outgoing GraphQL operation count"),
		metric.WithUnit("request"),
	)
	if err != nil {
		otel.Handle(err)
	}

	requestDuration, err = meter.Int64Histogram(
		"graphql.duration",
		metric.WithDescription("Outgoing GraphQL operation duration"),
		metric.WithUnit("milliseconds"),
	)
	if err != nil {
		otel.Handle(err)
	}
}
