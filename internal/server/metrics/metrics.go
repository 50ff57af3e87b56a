// Package metrics exposes ledger activity as Prometheus collectors. A
// Collector plugs into the engine both as its Recorder and as an event
// Publisher.
package metrics

import (
	"context"
	"errors"
	"math/big"
	"net/http"
	"time"

	"github.com/dmitrijs2005/fitmint/internal/common"
	"github.com/dmitrijs2005/fitmint/internal/server/models"
	"github.com/holiman/uint256"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "fitmint"

// Collector owns a private registry so tests and embedded servers do not
// collide on the global one.
type Collector struct {
	registry *prometheus.Registry

	operations *prometheus.CounterVec
	latency    *prometheus.HistogramVec
	payouts    *prometheus.CounterVec
	events     *prometheus.CounterVec
	lastSeq    prometheus.Gauge
	archived   prometheus.Counter
}

// NewCollector creates and registers all FitMint metrics.
func NewCollector() *Collector {
	c := &Collector{registry: prometheus.NewRegistry()}

	c.operations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "engine",
		Name:      "operations_total",
		Help:      "Engine operations by name and outcome reason (ok, business reason or error).",
	}, []string{"op", "result"})

	c.latency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "engine",
		Name:      "operation_duration_seconds",
		Help:      "Time spent applying engine operations, lock wait included.",
		Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
	}, []string{"op"})

	c.payouts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "treasury",
		Name:      "payouts_total",
		Help:      "Token units paid out, by payout kind. Float approximation of the exact ledger amount.",
	}, []string{"kind"})

	c.events = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "events",
		Name:      "emitted_total",
		Help:      "Committed ledger events by type.",
	}, []string{"type"})

	c.lastSeq = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "events",
		Name:      "last_seq",
		Help:      "Sequence number of the most recently committed event.",
	})

	c.archived = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "archive",
		Name:      "events_total",
		Help:      "Events exported to the object store archive.",
	})

	c.registry.MustRegister(
		c.operations, c.latency, c.payouts, c.events, c.lastSeq, c.archived,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

// Registry exposes the underlying registry.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// Operation implements engine.Recorder.
func (c *Collector) Operation(op string, err error, elapsed time.Duration) {
	c.operations.WithLabelValues(op, result(err)).Inc()
	if elapsed > 0 {
		c.latency.WithLabelValues(op).Observe(elapsed.Seconds())
	}
}

// Payout implements engine.Recorder.
func (c *Collector) Payout(kind string, amount *uint256.Int) {
	if amount == nil || amount.IsZero() {
		return
	}
	f, _ := new(big.Float).SetInt(amount.ToBig()).Float64()
	c.payouts.WithLabelValues(kind).Add(f)
}

// Publish implements engine.Publisher.
func (c *Collector) Publish(_ context.Context, e models.Event) {
	c.events.WithLabelValues(string(e.Type)).Inc()
	c.lastSeq.Set(float64(e.Seq))
}

// Archived counts events written by the archiver.
func (c *Collector) Archived(n int) {
	c.archived.Add(float64(n))
}

func result(err error) string {
	if err == nil {
		return "ok"
	}
	if reason, ok := common.Reason(err); ok {
		return reason
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return "canceled"
	}
	return "error"
}
