package observability

import "time"

// MetricsRegistry provides an interface for recording SDK metrics.
// Components take it by injection instead of touching the global Prometheus
// collectors directly, so hosts that embed the SDK can plug in their own.
type MetricsRegistry interface {
	// Offers fetch metrics
	IncrementFetches(profile, outcome string)
	RecordFetchLatency(profile string, duration time.Duration)
	RecordOfferCount(count int)
	IncrementNoOffers()

	// Beacon metrics
	IncrementBeacons(outcome string)
	RecordBeaconLatency(duration time.Duration)

	// Bridge metrics
	IncrementBridgeEvents(event string)
	IncrementNavigationSuppressed()
}

// PrometheusRegistry implements MetricsRegistry using the global Prometheus
// collectors declared in metrics.go.
type PrometheusRegistry struct{}

// NewPrometheusRegistry creates a new PrometheusRegistry
func NewPrometheusRegistry() *PrometheusRegistry {
	return &PrometheusRegistry{}
}

// Offers fetch metrics
func (r *PrometheusRegistry) IncrementFetches(profile, outcome string) {
	FetchCount.WithLabelValues(profile, outcome).Inc()
}

func (r *PrometheusRegistry) RecordFetchLatency(profile string, duration time.Duration) {
	FetchLatency.WithLabelValues(profile).Observe(duration.Seconds())
}

func (r *PrometheusRegistry) RecordOfferCount(count int) {
	OfferCount.Observe(float64(count))
}

func (r *PrometheusRegistry) IncrementNoOffers() {
	NoOfferCount.Inc()
}

// Beacon metrics
func (r *PrometheusRegistry) IncrementBeacons(outcome string) {
	BeaconCount.WithLabelValues(outcome).Inc()
}

func (r *PrometheusRegistry) RecordBeaconLatency(duration time.Duration) {
	BeaconLatency.Observe(duration.Seconds())
}

// Bridge metrics
func (r *PrometheusRegistry) IncrementBridgeEvents(event string) {
	BridgeEventCount.WithLabelValues(event).Inc()
}

func (r *PrometheusRegistry) IncrementNavigationSuppressed() {
	NavigationSuppressed.Inc()
}

// NoOpRegistry implements MetricsRegistry with no-op methods for testing
type NoOpRegistry struct{}

// NewNoOpRegistry creates a new NoOpRegistry
func NewNoOpRegistry() *NoOpRegistry {
	return &NoOpRegistry{}
}

func (r *NoOpRegistry) IncrementFetches(profile, outcome string)                   {}
func (r *NoOpRegistry) RecordFetchLatency(profile string, duration time.Duration)  {}
func (r *NoOpRegistry) RecordOfferCount(count int)                                 {}
func (r *NoOpRegistry) IncrementNoOffers()                                         {}
func (r *NoOpRegistry) IncrementBeacons(outcome string)                            {}
func (r *NoOpRegistry) RecordBeaconLatency(duration time.Duration)                 {}
func (r *NoOpRegistry) IncrementBridgeEvents(event string)                         {}
func (r *NoOpRegistry) IncrementNavigationSuppressed()                             {}
