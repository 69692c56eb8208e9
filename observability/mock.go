package observability

import (
	"sync"
	"time"
)

// MockMetricsRegistry is a recording implementation of MetricsRegistry for
// tests that assert on metric outcomes.
type MockMetricsRegistry struct {
	mu sync.Mutex

	Fetches         map[string]int // key: profile + "/" + outcome
	Beacons         map[string]int // key: outcome
	BridgeEvents    map[string]int // key: event name
	NoOffers        int
	Suppressed      int
	OfferCounts     []int
	FetchLatencies  []time.Duration
	BeaconLatencies []time.Duration
}

// NewMockMetricsRegistry creates an empty recording registry.
func NewMockMetricsRegistry() *MockMetricsRegistry {
	return &MockMetricsRegistry{
		Fetches:      make(map[string]int),
		Beacons:      make(map[string]int),
		BridgeEvents: make(map[string]int),
	}
}

func (m *MockMetricsRegistry) IncrementFetches(profile, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Fetches[profile+"/"+outcome]++
}

func (m *MockMetricsRegistry) RecordFetchLatency(profile string, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FetchLatencies = append(m.FetchLatencies, duration)
}

func (m *MockMetricsRegistry) RecordOfferCount(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.OfferCounts = append(m.OfferCounts, count)
}

func (m *MockMetricsRegistry) IncrementNoOffers() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NoOffers++
}

func (m *MockMetricsRegistry) IncrementBeacons(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Beacons[outcome]++
}

func (m *MockMetricsRegistry) RecordBeaconLatency(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BeaconLatencies = append(m.BeaconLatencies, duration)
}

func (m *MockMetricsRegistry) IncrementBridgeEvents(event string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BridgeEvents[event]++
}

func (m *MockMetricsRegistry) IncrementNavigationSuppressed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Suppressed++
}

// BeaconOutcome returns the recorded count for one beacon outcome.
func (m *MockMetricsRegistry) BeaconOutcome(outcome string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Beacons[outcome]
}

// FetchOutcome returns the recorded count for one profile/outcome pair.
func (m *MockMetricsRegistry) FetchOutcome(profile, outcome string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Fetches[profile+"/"+outcome]
}
