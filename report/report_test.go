// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package report

import (
	"slices"

	"github.com/siemens/maildig/store"
	"github.com/siemens/maildig/tld"
	"github.com/siemens/maildig/types"
	"github.com/siemens/maildig/validate"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("report aggregator", func() {

	var st *store.Store
	var agg *Aggregator

	BeforeEach(func() {
		st = store.New(tld.New("COM", "ORG"))
		agg = New(st)
	})

	It("projects records into rows", func() {
		st.AddRecord("User@Example.com", "f.txt")
		st.AddRecord("bad-email", "f.txt")
		st.ApplyDomainResult("example.com", true)

		rows := slices.Collect(agg.Rows())
		Expect(rows).To(HaveLen(2))
		Expect(rows[0].Fields()).To(HaveExactElements(
			"user@example.com", "1", "com", "1", "example.com", "1", "1", "not applicable"))
		Expect(rows[1].Fields()).To(HaveExactElements(
			"bad-email", "0", "bad-email", "0", "bad-email", "0", "0", "not applicable"))
	})

	It("recomputes rows", func() {
		st.AddRecord("a@gone.com", "f1")
		before := slices.Collect(agg.Rows())
		st.ApplyDomainResult("gone.com", false)
		st.ApplyArchiveNote("gone.com", types.ArchiveNoRecord)
		after := slices.Collect(agg.Rows())
		Expect(before[0].DomainChecked).To(Equal("0"))
		Expect(after[0]).To(And(
			HaveField("DomainChecked", "1"),
			HaveField("DomainResolved", "0"),
			HaveField("ArchiveNote", "no record")))
	})

	It("stops early", func() {
		st.AddRecord("a@b.com", "f1")
		st.AddRecord("c@d.com", "f1")
		n := 0
		for range agg.Rows() {
			n++
			break
		}
		Expect(n).To(Equal(1))
	})

	It("collapses rows independent of sources", func() {
		st.AddRecord("a@b.com", "f1")
		st.AddRecord("a@b.com", "f2")
		st.AddRecord("A@B.com", "f1")
		st.AddRecord("c@b.com", "f1")

		Expect(slices.Collect(agg.Rows())).To(HaveLen(4))
		unique := agg.UniqueRows()
		Expect(unique).To(HaveLen(2))
		Expect(unique[0].Email).To(Equal("a@b.com"))
		Expect(unique[1].Email).To(Equal("c@b.com"))
	})

	It("lists valid domains with their hits", func() {
		st.AddRecord("a@good.com", "f1")
		st.AddRecord("b@bad.com", "f1")
		st.AddRecord("c@good.com", "f2")
		st.AddRecord("a@good.com", "f2")
		st.AddRecord("x@also.org", "f2")
		st.AddRecord("y@unchecked.com", "f2")
		st.ApplyDomainResult("good.com", true)
		st.ApplyDomainResult("also.org", true)
		st.ApplyDomainResult("bad.com", false)

		Expect(agg.ValidDomains()).To(HaveExactElements("good.com", "also.org"))
		Expect(agg.DomainHits()).To(HaveExactElements(
			types.DomainHits{Domain: "good.com", Hits: 3},
			types.DomainHits{Domain: "also.org", Hits: 1},
		))
	})

	It("counts raw hits for all domains", func() {
		emails := []string{"a@x.com", "b@x.com", "a@x.com", "c@y.org", "bad-email", "d@z.nosuchtld"}
		for _, email := range emails {
			st.AddRecord(email, "f")
		}
		for _, email := range emails {
			domain := validate.Domain(email)
			count := 0
			for _, other := range emails {
				if validate.Domain(other) == domain {
					count++
				}
			}
			Expect(agg.HitsForDomain(domain)).To(Equal(count), "domain %s", domain)
		}
		Expect(agg.HitsForDomain("never.seen")).To(BeZero())
	})

	It("lists valid e-mail addresses regardless of resolution", func() {
		st.AddRecord("a@gone.com", "f1")
		st.AddRecord("a@gone.com", "f1")
		st.AddRecord("a@gone.com", "f2")
		st.AddRecord("bad-email", "f1")
		st.AddRecord("b@nowhere.nosuchtld", "f1")
		st.AddRecord("c@exam_ple.com", "f1")
		st.ApplyDomainResult("gone.com", false)

		Expect(agg.ValidEmailAddresses()).To(HaveExactElements(
			types.EmailSource{Email: "a@gone.com", SourceFile: "f1"},
			types.EmailSource{Email: "a@gone.com", SourceFile: "f2"},
		))
	})

})
