// Package metrics defines the Prometheus collectors a client.Session
// exposes: call counts, errors by kind, arena resizes, and the hint
// fast-track rate.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics is one session's collector set. Session owns one Metrics and
// increments it inline with every call; cmd/hamclient serve-metrics
// exposes Registry() over HTTP.
type Metrics struct {
	Calls          *prometheus.CounterVec
	Errors         *prometheus.CounterVec
	ArenaResizes   prometheus.Counter
	FastTrackHints prometheus.Counter
}

// New returns a freshly constructed, unregistered Metrics.
func New() *Metrics {
	return &Metrics{
		Calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hamkv",
			Subsystem: "client",
			Name:      "calls_total",
			Help:      "Number of client operations issued, by operation name.",
		}, []string{"op"}),
		Errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hamkv",
			Subsystem: "client",
			Name:      "errors_total",
			Help:      "Number of client operation failures, by operation and error kind.",
		}, []string{"op", "kind"}),
		ArenaResizes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hamkv",
			Subsystem: "client",
			Name:      "arena_resizes_total",
			Help:      "Number of arena buffer resizes across all scopes.",
		}),
		FastTrackHints: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hamkv",
			Subsystem: "client",
			Name:      "fast_track_hints_total",
			Help:      "Number of find/insert calls that received a try_fast_track hint.",
		}),
	}
}

// Registry returns a fresh prometheus.Registry with m's collectors
// registered, ready for an http.Handler via promhttp.
func (m *Metrics) Registry() *prometheus.Registry {
	r := prometheus.NewRegistry()
	r.MustRegister(m.Calls, m.Errors, m.ArenaResizes, m.FastTrackHints)
	return r
}
