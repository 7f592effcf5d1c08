package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics tracks per-endpoint call counts issued by the gateway.
type Metrics struct {
	mu           sync.Mutex
	requestCount map[string]int64
	failureCount map[string]int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount: make(map[string]int64),
		failureCount: make(map[string]int64),
	}
}

// RecordRequest increments the counter for a completed backend call.
func (m *Metrics) RecordRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := callKey(method, path, status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
}

// RecordFailure increments the counter for a call that never reached the backend.
func (m *Metrics) RecordFailure(method, path string) {
	if m == nil {
		return
	}
	key := method + "|" + path
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failureCount[key]++
}

// RequestCount returns how many calls completed with the given outcome.
func (m *Metrics) RequestCount(method, path string, status int) int64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requestCount[callKey(method, path, status)]
}

func callKey(method, path string, status int) string {
	return method + "|" + path + "|" + strconv.Itoa(status)
}
