// Copyright (C) 2019-2026, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metercacher

import (
	"github.com/jmgilman/go/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	cacheLabel  = "cache"
	resultLabel = "result"
	hitResult   = "hit"
	missResult  = "miss"
)

var (
	cacheLabels  = []string{cacheLabel}
	resultLabels = []string{cacheLabel, resultLabel}
)

// Metrics holds the collectors shared by every metered cache of a manager.
// Each cache is distinguished by its "cache" label.
type Metrics struct {
	getCount      *prometheus.CounterVec
	getTime       *prometheus.CounterVec
	putCount      *prometheus.CounterVec
	putTime       *prometheus.CounterVec
	evictCount    *prometheus.CounterVec
	len           *prometheus.GaugeVec
	portionFilled *prometheus.GaugeVec
}

// NewMetrics creates the cache collectors and registers them with registry.
func NewMetrics(namespace string, registry prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		getCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "get_count",
			Help:      "number of get calls",
		}, resultLabels),
		getTime: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "get_time",
			Help:      "time spent (ns) in get calls",
		}, resultLabels),
		putCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "put_count",
			Help:      "number of put calls",
		}, cacheLabels),
		putTime: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "put_time",
			Help:      "time spent (ns) in put calls",
		}, cacheLabels),
		evictCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "eviction_count",
			Help:      "number of entries removed by size or time bounds",
		}, cacheLabels),
		len: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "len",
			Help:      "number of entries",
		}, cacheLabels),
		portionFilled: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "portion_filled",
			Help:      "fraction of cache filled",
		}, cacheLabels),
	}

	for _, c := range []prometheus.Collector{
		m.getCount,
		m.getTime,
		m.putCount,
		m.putTime,
		m.evictCount,
		m.len,
		m.portionFilled,
	} {
		if err := registry.Register(c); err != nil {
			return nil, errors.Wrapf(err, errors.CodeInvalidConfig, "failed to register %q cache metrics", namespace)
		}
	}
	return m, nil
}

// Evictions returns the eviction counter of the named cache. It is meant to
// be incremented from a store's eviction callback.
func (m *Metrics) Evictions(name string) prometheus.Counter {
	return m.evictCount.WithLabelValues(name)
}

type cacheMetrics struct {
	getHitCount   prometheus.Counter
	getMissCount  prometheus.Counter
	getHitTime    prometheus.Counter
	getMissTime   prometheus.Counter
	putCount      prometheus.Counter
	putTime       prometheus.Counter
	len           prometheus.Gauge
	portionFilled prometheus.Gauge
}

func (m *Metrics) forCache(name string) *cacheMetrics {
	return &cacheMetrics{
		getHitCount:   m.getCount.WithLabelValues(name, hitResult),
		getMissCount:  m.getCount.WithLabelValues(name, missResult),
		getHitTime:    m.getTime.WithLabelValues(name, hitResult),
		getMissTime:   m.getTime.WithLabelValues(name, missResult),
		putCount:      m.putCount.WithLabelValues(name),
		putTime:       m.putTime.WithLabelValues(name),
		len:           m.len.WithLabelValues(name),
		portionFilled: m.portionFilled.WithLabelValues(name),
	}
}
