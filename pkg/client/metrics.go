package client

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts gateway requests by operation and outcome
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the gateway collectors and registers them with reg.
// A nil registerer leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "discordlite",
			Subsystem: "gateway",
			Name:      "requests_total",
			Help:      "Platform API requests by operation and outcome.",
		}, []string{"op", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "discordlite",
			Subsystem: "gateway",
			Name:      "request_duration_seconds",
			Help:      "Platform API request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
	}
	if reg != nil {
		reg.MustRegister(m.requests, m.duration)
	}
	return m
}

func (m *Metrics) observe(op string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(op, Kind(err)).Inc()
	m.duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
