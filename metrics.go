// The MIT License (MIT)

// Copyright (c) 2016, 2017 Fabian Wenzelmann

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package goel

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	PhaseNormalize = "normalize"
	PhaseSaturate  = "saturate"
	PhaseHierarchy = "hierarchy"
	PhaseQuery     = "query"
)

// Metrics holds the Prometheus metrics of a Reasoner. All methods can be
// called on a nil *Metrics and do nothing in that case.
type Metrics struct {
	Classifications  *prometheus.CounterVec
	PhaseDuration    *prometheus.HistogramVec
	RuleApplications *prometheus.CounterVec
	QueryCache       *prometheus.CounterVec
}

// NewMetrics creates the metrics with the given namespace and registers them
// with reg. If reg is nil the metrics are not registered.
func NewMetrics(namespace string, reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Classifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "classifications_total",
				Help:      "Total number of saturation runs",
			},
			[]string{"solver", "outcome"},
		),
		PhaseDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "phase_duration_seconds",
				Help:      "Duration of the reasoning phases in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"phase"},
		),
		RuleApplications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rule_applications_total",
				Help:      "Total number of completion rule applications that derived a new fact",
			},
			[]string{"rule"},
		),
		QueryCache: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "query_cache_total",
				Help:      "Total number of compound query cache lookups",
			},
			[]string{"result"},
		),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.Classifications, m.PhaseDuration, m.RuleApplications, m.QueryCache} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObservePhase records the duration of a phase that started at start.
func (m *Metrics) ObservePhase(phase string, start time.Time) {
	if m == nil {
		return
	}
	m.PhaseDuration.WithLabelValues(phase).Observe(time.Since(start).Seconds())
}

// RecordClassification counts a saturation run, outcome is "ok", "cancelled"
// or "error".
func (m *Metrics) RecordClassification(solver, outcome string) {
	if m == nil {
		return
	}
	m.Classifications.WithLabelValues(solver, outcome).Inc()
}

// RecordStats adds the rule applications of a solver run.
func (m *Metrics) RecordStats(stats SolverStats) {
	if m == nil {
		return
	}
	for rule, n := range stats.Applications {
		if n > 0 {
			m.RuleApplications.WithLabelValues(Rule(rule).String()).Add(float64(n))
		}
	}
}

// RecordCacheLookup counts a hit or miss of the compound query cache.
func (m *Metrics) RecordCacheLookup(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.QueryCache.WithLabelValues("hit").Inc()
	} else {
		m.QueryCache.WithLabelValues("miss").Inc()
	}
}
