package main

import (
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type MetricsCollector struct {
	opsTotal        *prometheus.CounterVec
	snapshotLatency prometheus.Histogram
	wsClients       prometheus.Gauge
	throttledTotal  prometheus.Counter
}

func NewMetricsCollector() *MetricsCollector {
	m := &MetricsCollector{
		opsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orrery_ops_total",
				Help: "Perturbation and clock operations served",
			},
			[]string{"op", "outcome"},
		),
		snapshotLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "orrery_snapshot_seconds",
				Help:    "Time spent building a snapshot",
				Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
			},
		),
		wsClients: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "orrery_ws_clients",
				Help: "Connected websocket stream clients",
			},
		),
		throttledTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "orrery_throttled_total",
				Help: "Requests rejected by the per-IP rate limiter",
			},
		),
	}
	prometheus.MustRegister(m.opsTotal)
	prometheus.MustRegister(m.snapshotLatency)
	prometheus.MustRegister(m.wsClients)
	prometheus.MustRegister(m.throttledTotal)
	return m
}

func (m *MetricsCollector) RecordOp(op string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.opsTotal.WithLabelValues(op, outcome).Inc()
}

func (m *MetricsCollector) ObserveSnapshot(d time.Duration) {
	m.snapshotLatency.Observe(d.Seconds())
}

func (m *MetricsCollector) ServeMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Printf("metrics server on %s stopped: %s", addr, err)
	}
}
