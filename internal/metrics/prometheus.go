// Package metrics exposes Prometheus instrumentation for link pair
// provisioning and the rtnetlink channel.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	once     sync.Once
	registry *Registry
)

// Registry holds all vethpair metrics.
type Registry struct {
	// rtnetlink channel
	NetlinkRequests *prometheus.CounterVec
	NetlinkLatency  *prometheus.HistogramVec

	// Link pair lifecycle
	Provisions  *prometheus.CounterVec
	Teardowns   *prometheus.CounterVec
	Rollbacks   *prometheus.CounterVec
	PairsActive prometheus.Gauge

	// Segment probe
	Probes *prometheus.CounterVec
}

// Get returns the global metrics registry, creating it if necessary.
func Get() *Registry {
	once.Do(func() {
		registry = newRegistry()
	})
	return registry
}

func newRegistry() *Registry {
	r := &Registry{}

	r.NetlinkRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vethpair_netlink_requests_total",
		Help: "Total rtnetlink requests issued, by operation and result",
	}, []string{"op", "result"})

	r.NetlinkLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "vethpair_netlink_request_duration_seconds",
		Help:    "rtnetlink request round-trip latency",
		Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, 1},
	}, []string{"op"})

	r.Provisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vethpair_provision_total",
		Help: "Total link pair provisioning attempts, by result",
	}, []string{"result"})

	r.Teardowns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vethpair_teardown_total",
		Help: "Total link pair teardowns, by result",
	}, []string{"result"})

	r.Rollbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vethpair_rollback_total",
		Help: "Total compensating deletes after a partial provisioning failure",
	}, []string{"result"})

	r.PairsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "vethpair_pairs_active",
		Help: "Link pairs currently provisioned by this process",
	})

	r.Probes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vethpair_probe_total",
		Help: "Total segment probes, by result",
	}, []string{"result"})

	return r
}

// RecordNetlinkRequest records one rtnetlink request.
func (r *Registry) RecordNetlinkRequest(op string, d time.Duration, err error) {
	r.NetlinkRequests.WithLabelValues(op, resultString(err)).Inc()
	r.NetlinkLatency.WithLabelValues(op).Observe(d.Seconds())
}

// RecordProvision records a provisioning outcome.
func (r *Registry) RecordProvision(err error) {
	r.Provisions.WithLabelValues(resultString(err)).Inc()
	if err == nil {
		r.PairsActive.Inc()
	}
}

// RecordTeardown records a teardown outcome. The pair is no longer counted
// as active either way: its handle is spent.
func (r *Registry) RecordTeardown(err error) {
	r.Teardowns.WithLabelValues(resultString(err)).Inc()
	r.PairsActive.Dec()
}

// RecordRollback records the outcome of a compensating delete.
func (r *Registry) RecordRollback(err error) {
	r.Rollbacks.WithLabelValues(resultString(err)).Inc()
}

// RecordProbe records a segment probe outcome.
func (r *Registry) RecordProbe(err error) {
	r.Probes.WithLabelValues(resultString(err)).Inc()
}

func resultString(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
