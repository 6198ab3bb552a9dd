package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	HTTPRequestsTotal          metric.Int64Counter
	HTTPRequestDuration        metric.Float64Histogram
	ExtractionRequestsTotal    metric.Int64Counter
	ExtractionFailuresTotal    metric.Int64Counter
	ExtractionDurationSeconds  metric.Float64Histogram
	ExtractionCacheHitsTotal   metric.Int64Counter
	ItineraryMutationsTotal    metric.Int64Counter
	ItineraryRejectedMutations metric.Int64Counter
	SuggestionRequestsTotal    metric.Int64Counter
	LoadedItemsGauge           metric.Int64Gauge
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the instruments once from the global
// MeterProvider. Called after the providers are installed; if it never is,
// Get falls back to whatever provider is global (no-op by default).
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("routeplanner")
		var err error
		m := &AppMetrics{}

		m.HTTPRequestsTotal, err = meter.Int64Counter(
			"http_requests_total",
			metric.WithDescription("Total number of HTTP requests completed"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create http_requests_total: %v", err)
		}

		m.HTTPRequestDuration, err = meter.Float64Histogram(
			"http_request_duration_seconds",
			metric.WithDescription("Duration of HTTP requests in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create http_request_duration_seconds: %v", err)
		}

		m.ExtractionRequestsTotal, err = meter.Int64Counter(
			"extraction_requests_total",
			metric.WithDescription("Total number of screenshot extraction requests"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create extraction_requests_total: %v", err)
		}

		m.ExtractionFailuresTotal, err = meter.Int64Counter(
			"extraction_failures_total",
			metric.WithDescription("Total number of failed or rejected extractions"),
			metric.WithUnit("{error}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create extraction_failures_total: %v", err)
		}

		m.ExtractionDurationSeconds, err = meter.Float64Histogram(
			"extraction_duration_seconds",
			metric.WithDescription("Duration of the Gemini extraction call in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create extraction_duration_seconds: %v", err)
		}

		m.ExtractionCacheHitsTotal, err = meter.Int64Counter(
			"extraction_cache_hits_total",
			metric.WithDescription("Extractions served from the result cache"),
			metric.WithUnit("{hit}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create extraction_cache_hits_total: %v", err)
		}

		m.ItineraryMutationsTotal, err = meter.Int64Counter(
			"itinerary_mutations_total",
			metric.WithDescription("Applied itinerary mutations by operation"),
			metric.WithUnit("{mutation}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create itinerary_mutations_total: %v", err)
		}

		m.ItineraryRejectedMutations, err = meter.Int64Counter(
			"itinerary_rejected_mutations_total",
			metric.WithDescription("Mutations ignored because of invalid indices or no loaded itinerary"),
			metric.WithUnit("{mutation}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create itinerary_rejected_mutations_total: %v", err)
		}

		m.SuggestionRequestsTotal, err = meter.Int64Counter(
			"suggestion_requests_total",
			metric.WithDescription("Activity suggestion requests"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create suggestion_requests_total: %v", err)
		}

		m.LoadedItemsGauge, err = meter.Int64Gauge(
			"itinerary_loaded_items",
			metric.WithDescription("Number of items in the loaded itinerary"),
			metric.WithUnit("{item}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create itinerary_loaded_items: %v", err)
		}

		appMetrics = m
	})
}

// Get returns the AppMetrics instance, initializing it on first use.
func Get() *AppMetrics {
	InitAppMetrics()
	return appMetrics
}
