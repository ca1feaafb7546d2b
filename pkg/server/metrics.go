package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics holds the Prometheus instruments for one server instance.
//
// Metrics exposed:
//   - birb_sessions_active: Gauge of connected producer sessions
//   - birb_sessions_total: Counter of sessions ever accepted
//   - birb_patches_applied_total: Counter of applied patches by type
//   - birb_nodes_live: Gauge of live nodes across all registries
//   - birb_events_sent_total: Counter of events sent by type
//   - birb_frame_errors_total: Counter of rejected frames by reason
//   - birb_frame_bytes_received_total: Counter of received frame bytes
type metrics struct {
	sessionsActive prometheus.Gauge
	sessionsTotal  prometheus.Counter
	patchesApplied *prometheus.CounterVec
	nodesLive      prometheus.Gauge
	eventsSent     *prometheus.CounterVec
	frameErrors    *prometheus.CounterVec
	bytesReceived  prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)

	return &metrics{
		sessionsActive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "birb",
			Name:      "sessions_active",
			Help:      "Number of connected producer sessions",
		}),
		sessionsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "birb",
			Name:      "sessions_total",
			Help:      "Total number of producer sessions accepted",
		}),
		patchesApplied: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "birb",
			Name:      "patches_applied_total",
			Help:      "Total number of patches applied by patch type",
		}, []string{"type"}),
		nodesLive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "birb",
			Name:      "nodes_live",
			Help:      "Number of live nodes across all session registries",
		}),
		eventsSent: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "birb",
			Name:      "events_sent_total",
			Help:      "Total number of input events sent to producers by event type",
		}, []string{"type"}),
		frameErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "birb",
			Name:      "frame_errors_total",
			Help:      "Total number of rejected frames by reason",
		}, []string{"reason"}),
		bytesReceived: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "birb",
			Name:      "frame_bytes_received_total",
			Help:      "Total bytes received in producer frames",
		}),
	}
}
