// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects counters about ingested records, domain lookups and archive
// checks. A nil *Metrics is valid and simply doesn't count anything.
type Metrics struct {
	RecordsIngested *prometheus.CounterVec
	DomainLookups   *prometheus.CounterVec
	ArchiveChecks   *prometheus.CounterVec
	PhaseDuration   *prometheus.HistogramVec
}

// Outcome labels.
const (
	Valid      = "valid"
	Invalid    = "invalid"
	Resolved   = "resolved"
	Unresolved = "unresolved"
	Snapshot   = "snapshot"
	NoRecord   = "no_record"
	Failed     = "error"
)

// New returns a new set of collectors, registered with the specified
// registerer. If the registerer is nil, the collectors are not registered.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RecordsIngested: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "maildig_records_ingested_total",
			Help: "Total number of ingested e-mail observations, by syntax and TLD verdict",
		}, []string{"syntax", "tld"}),
		DomainLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "maildig_domain_lookups_total",
			Help: "Total number of completed domain lookups, by outcome",
		}, []string{"outcome"}),
		ArchiveChecks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "maildig_archive_checks_total",
			Help: "Total number of web archive checks for unresolved domains, by outcome",
		}, []string{"outcome"}),
		PhaseDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "maildig_phase_duration_seconds",
			Help:    "Duration of report generation phases",
			Buckets: prometheus.ExponentialBuckets(0.01, 4, 8),
		}, []string{"phase"}),
	}
	if reg != nil {
		reg.MustRegister(m.RecordsIngested, m.DomainLookups, m.ArchiveChecks, m.PhaseDuration)
	}
	return m
}

func verdict(ok bool) string {
	if ok {
		return Valid
	}
	return Invalid
}

// IncrementIngested counts a newly ingested record.
func (m *Metrics) IncrementIngested(syntaxValid, tldValid bool) {
	if m == nil {
		return
	}
	m.RecordsIngested.WithLabelValues(verdict(syntaxValid), verdict(tldValid)).Inc()
}

// AddLookups counts completed domain lookups.
func (m *Metrics) AddLookups(resolved, unresolved int) {
	if m == nil {
		return
	}
	m.DomainLookups.WithLabelValues(Resolved).Add(float64(resolved))
	m.DomainLookups.WithLabelValues(Unresolved).Add(float64(unresolved))
}

// IncrementArchiveChecks counts an archive check with the specified outcome.
func (m *Metrics) IncrementArchiveChecks(outcome string) {
	if m == nil {
		return
	}
	m.ArchiveChecks.WithLabelValues(outcome).Inc()
}

// ObservePhase records how long the named phase took since start.
func (m *Metrics) ObservePhase(phase string, start time.Time) {
	if m == nil {
		return
	}
	m.PhaseDuration.WithLabelValues(phase).Observe(time.Since(start).Seconds())
}
