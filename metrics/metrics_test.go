// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("metrics", func() {

	It("counts", func() {
		reg := prometheus.NewRegistry()
		m := New(reg)
		m.IncrementIngested(true, true)
		m.IncrementIngested(false, false)
		m.IncrementIngested(false, false)
		m.AddLookups(3, 1)
		m.IncrementArchiveChecks(NoRecord)
		m.ObservePhase("resolution", time.Now())

		Expect(testutil.ToFloat64(m.RecordsIngested.WithLabelValues(Valid, Valid))).To(Equal(1.0))
		Expect(testutil.ToFloat64(m.RecordsIngested.WithLabelValues(Invalid, Invalid))).To(Equal(2.0))
		Expect(testutil.ToFloat64(m.DomainLookups.WithLabelValues(Resolved))).To(Equal(3.0))
		Expect(testutil.ToFloat64(m.DomainLookups.WithLabelValues(Unresolved))).To(Equal(1.0))
		Expect(testutil.ToFloat64(m.ArchiveChecks.WithLabelValues(NoRecord))).To(Equal(1.0))
		Expect(testutil.CollectAndCount(m.PhaseDuration)).To(Equal(1))

		families, err := reg.Gather()
		Expect(err).NotTo(HaveOccurred())
		Expect(families).To(HaveLen(4))
	})

	It("doesn't count without metrics", func() {
		var m *Metrics
		Expect(func() {
			m.IncrementIngested(true, false)
			m.AddLookups(1, 1)
			m.IncrementArchiveChecks(Failed)
			m.ObservePhase("resolution", time.Now())
		}).NotTo(Panic())
	})

})
