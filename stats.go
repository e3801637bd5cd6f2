package avc

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector exposes the cache's atomic counters as a prometheus.Collector,
// so a process embedding Cache can register it alongside its own metrics
// without this module importing a metrics-server dependency of its own.
type Collector struct {
	cache *Cache

	active    *prometheus.Desc
	lookups   *prometheus.Desc
	misses    *prometheus.Desc
	evicted   *prometheus.Desc
	reclaimed *prometheus.Desc
	seqno     *prometheus.Desc
}

// NewCollector wraps c for Prometheus registration.
func NewCollector(c *Cache) *Collector {
	return &Collector{
		cache:     c,
		active:    prometheus.NewDesc("avc_active_entries", "Number of linked cache entries.", nil, nil),
		lookups:   prometheus.NewDesc("avc_lookups_total", "Total lookups performed.", nil, nil),
		misses:    prometheus.NewDesc("avc_misses_total", "Total lookup misses.", nil, nil),
		evicted:   prometheus.NewDesc("avc_evicted_total", "Total entries evicted by the LRU hint sweep.", nil, nil),
		reclaimed: prometheus.NewDesc("avc_reclaimed_total", "Total entries freed after their reclamation grace period.", nil, nil),
		seqno:     prometheus.NewDesc("avc_policy_seqno", "Latest observed policy sequence number.", nil, nil),
	}
}

func (col *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- col.active
	ch <- col.lookups
	ch <- col.misses
	ch <- col.evicted
	ch <- col.reclaimed
	ch <- col.seqno
}

func (col *Collector) Collect(ch chan<- prometheus.Metric) {
	s := col.cache.store
	lookups, misses := s.LookupStats()
	_, reclaimed := s.Reclaimer().Stats()

	ch <- prometheus.MustNewConstMetric(col.active, prometheus.GaugeValue, float64(s.ActiveCount()))
	ch <- prometheus.MustNewConstMetric(col.lookups, prometheus.CounterValue, float64(lookups))
	ch <- prometheus.MustNewConstMetric(col.misses, prometheus.CounterValue, float64(misses))
	ch <- prometheus.MustNewConstMetric(col.evicted, prometheus.CounterValue, float64(s.EvictedCount()))
	ch <- prometheus.MustNewConstMetric(col.reclaimed, prometheus.CounterValue, float64(reclaimed))
	ch <- prometheus.MustNewConstMetric(col.seqno, prometheus.GaugeValue, float64(col.cache.PolicySeqno()))
}
