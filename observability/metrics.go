package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// offers fetches per profile and outcome (success, validation_error,
	// server_error, decoding_error, network_error)
	FetchCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moments_fetches_total",
			Help: "Total offers fetches issued",
		},
		[]string{"profile", "outcome"},
	)

	// fetch latency in seconds per profile
	FetchLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "moments_fetch_duration_seconds",
			Help:    "Histogram of offers fetch latencies",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"profile"},
	)

	// distribution of offers per successful fetch
	OfferCount = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "moments_offers_per_fetch",
			Help:    "Histogram of offer counts per successful fetch",
			Buckets: prometheus.LinearBuckets(0, 1, 11),
		},
	)

	// number of empty (no-offer) responses
	NoOfferCount = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "moments_no_offers_total",
			Help: "Total fetches that returned zero offers",
		},
	)

	// beacon sends per outcome (success, invalid_url, server_error, network_error)
	BeaconCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moments_beacons_total",
			Help: "Total tracking beacons fired",
		},
		[]string{"outcome"},
	)

	// beacon latency in seconds
	BeaconLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "moments_beacon_duration_seconds",
			Help:    "Histogram of beacon request latencies",
			Buckets: prometheus.DefBuckets,
		},
	)

	// bridge events parsed, labelled by canonical event name
	BridgeEventCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moments_bridge_events_total",
			Help: "Total bridge events parsed",
		},
		[]string{"event"},
	)

	// suppressed duplicate external navigations
	NavigationSuppressed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "moments_navigation_suppressed_total",
			Help: "Total duplicate external navigations suppressed",
		},
	)
)

func init() {
	// register all metrics
	prometheus.MustRegister(
		FetchCount,
		FetchLatency,
		OfferCount,
		NoOfferCount,
		BeaconCount,
		BeaconLatency,
		BridgeEventCount,
		NavigationSuppressed,
	)
}
