package observability

import (
	"sync"
	"time"

	"github.com/danmuck/bitsctl/internal/packet"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

var (
	registerOnce sync.Once

	decodeRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bitsctl",
			Subsystem: "decode",
			Name:      "runs_total",
			Help:      "Total decode runs by outcome.",
		},
		[]string{"outcome"},
	)
	decodePackets = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bitsctl",
			Subsystem: "decode",
			Name:      "packets_total",
			Help:      "Decoded packets by type.",
		},
		[]string{"type"},
	)
	decodeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "bitsctl",
			Subsystem: "decode",
			Name:      "duration_seconds",
			Help:      "Decode duration in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		},
		[]string{"outcome"},
	)
	decodeDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "bitsctl",
			Subsystem: "decode",
			Name:      "last_tree_depth",
			Help:      "Nesting depth of the most recently decoded tree.",
		},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(decodeRuns, decodePackets, decodeDuration, decodeDepth)
	})
}

// RecordDecode counts one decode attempt. stats is ignored when err is set.
func RecordDecode(stats packet.Stats, duration time.Duration, err error) {
	RegisterMetrics()
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	decodeRuns.WithLabelValues(outcome).Inc()
	decodeDuration.WithLabelValues(outcome).Observe(duration.Seconds())
	if err != nil {
		return
	}
	for t, n := range stats.ByType {
		decodePackets.WithLabelValues(t.String()).Add(float64(n))
	}
	decodeDepth.Set(float64(stats.MaxDepth))
}

// WriteTextfile dumps the default registry in the node_exporter textfile
// format. An empty path is a no-op.
func WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	RegisterMetrics()
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
