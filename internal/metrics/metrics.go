// Package metrics exposes Prometheus counters for the datagram path.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the engine's counters. A nil *Metrics is valid and
// records nothing, so tests can run without a registry.
type Metrics struct {
	DatagramsSent     prometheus.Counter
	DatagramsReceived prometheus.Counter
	ParseErrors       prometheus.Counter
	SelfDropped       prometheus.Counter
}

// New creates and registers all counters on the default registry.
func New() *Metrics {
	return &Metrics{
		DatagramsSent: promauto.NewCounter(prometheus.CounterOpts{
			Name: "mcast_datagrams_sent_total",
			Help: "Total number of datagrams sent to the group",
		}),
		DatagramsReceived: promauto.NewCounter(prometheus.CounterOpts{
			Name: "mcast_datagrams_received_total",
			Help: "Total number of datagrams received from the group",
		}),
		ParseErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "mcast_parse_errors_total",
			Help: "Total number of inbound datagrams dropped as malformed",
		}),
		SelfDropped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "mcast_self_dropped_total",
			Help: "Total number of own envelopes discarded on receipt",
		}),
	}
}

func (m *Metrics) IncSent() {
	if m == nil {
		return
	}
	m.DatagramsSent.Inc()
}

func (m *Metrics) IncReceived() {
	if m == nil {
		return
	}
	m.DatagramsReceived.Inc()
}

func (m *Metrics) IncParseErrors() {
	if m == nil {
		return
	}
	m.ParseErrors.Inc()
}

func (m *Metrics) IncSelfDropped() {
	if m == nil {
		return
	}
	m.SelfDropped.Inc()
}
