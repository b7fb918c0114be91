package scheduler

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	signalsFired = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sinal_signals_fired_total",
		Help: "Total number of bell signals fired",
	})

	playbackFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sinal_playback_failures_total",
		Help: "Total number of chime playback failures",
	})

	fetchFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sinal_schedule_fetch_failures_total",
		Help: "Total number of failed schedule refreshes",
	})

	fetchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "sinal_schedule_fetch_duration_seconds",
		Help:    "Latency of schedule store fetches",
		Buckets: prometheus.DefBuckets,
	})

	scheduleSignals = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "sinal_schedule_signals",
		Help: "Number of signals projected for the current day",
	})
)

// RegisterMetrics registers the scheduler metrics with the default
// Prometheus registry. Call once at startup.
func RegisterMetrics() {
	prometheus.MustRegister(signalsFired)
	prometheus.MustRegister(playbackFailures)
	prometheus.MustRegister(fetchFailures)
	prometheus.MustRegister(fetchDuration)
	prometheus.MustRegister(scheduleSignals)
}
