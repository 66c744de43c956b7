// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pitchpolt Contributors

// Package observability records pitchpolt metrics and writes them for the
// node exporter textfile collector.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/samber/oops"
)

// Metrics contains the Prometheus metrics for catalog and save-game handling.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	RecordsLoaded   *prometheus.CounterVec
	LoadFailures    *prometheus.CounterVec
	SecureLoadTotal *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewMetrics creates the metrics on a fresh registry that also carries the
// standard Go and process collectors.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		RecordsLoaded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pitchpolt_records_loaded_total",
				Help: "Total number of records loaded by kind",
			},
			[]string{"kind"},
		),
		LoadFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pitchpolt_load_failures_total",
				Help: "Total number of failed loads by kind and failure class",
			},
			[]string{"kind", "class"},
		),
		SecureLoadTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pitchpolt_secure_load_total",
				Help: "Total number of privileged catalog loads by result",
			},
			[]string{"result"},
		),
		registry: registry,
	}

	registry.MustRegister(m.RecordsLoaded)
	registry.MustRegister(m.LoadFailures)
	registry.MustRegister(m.SecureLoadTotal)

	return m
}

// Registry exposes the underlying registry for gathering.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordRecordsLoaded adds n successfully loaded records of kind.
func (m *Metrics) RecordRecordsLoaded(kind string, n int) {
	if m == nil {
		return
	}
	m.RecordsLoaded.WithLabelValues(kind).Add(float64(n))
}

// RecordLoadFailure counts a failed load of kind.
func (m *Metrics) RecordLoadFailure(kind, class string) {
	if m == nil {
		return
	}
	m.LoadFailures.WithLabelValues(kind, class).Inc()
}

// RecordSecureLoad counts a privileged load attempt by result class.
func (m *Metrics) RecordSecureLoad(result string) {
	if m == nil {
		return
	}
	m.SecureLoadTotal.WithLabelValues(result).Inc()
	if result != "ok" {
		m.LoadFailures.WithLabelValues("item_details", result).Inc()
	}
}

// WriteTextfile atomically writes every gathered metric to path in the text
// exposition format. An empty path is a no-op.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return oops.Code("METRICS_WRITE_FAILED").With("path", path).Wrap(err)
	}
	return nil
}
