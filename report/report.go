// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package report

import (
	"iter"

	"github.com/siemens/maildig/types"
	"github.com/siemens/maildig/validate"
)

// Records gives access to the records to report on, such as a
// [github.com/siemens/maildig/store.Store].
type Records interface {
	Records() iter.Seq[types.EmailRecord]
	DomainRecords(domain string) int
}

// Aggregator projects records into report rows. All projections are
// recomputed from the records each time they're requested.
type Aggregator struct {
	recs Records
}

// New returns a new Aggregator reporting on the specified records.
func New(recs Records) *Aggregator {
	return &Aggregator{recs: recs}
}

// RowOf returns the detail row of an e-mail record.
func RowOf(rec types.EmailRecord) types.Row {
	return types.Row{
		Email:          rec.Email,
		SyntaxValid:    types.Flag(rec.SyntaxValid),
		TLD:            validate.TLD(rec.Email),
		TLDValid:       types.Flag(rec.TLDValid),
		Domain:         validate.Domain(rec.Email),
		DomainChecked:  types.Flag(rec.DomainChecked()),
		DomainResolved: types.Flag(rec.DomainResolved()),
		ArchiveNote:    rec.ArchiveNote.String(),
	}
}

// Rows returns a sequence of detail rows, one row per record, without any
// deduplication.
func (a *Aggregator) Rows() iter.Seq[types.Row] {
	return func(yield func(types.Row) bool) {
		for rec := range a.recs.Records() {
			if !yield(RowOf(rec)) {
				return
			}
		}
	}
}

// UniqueRows returns the distinct detail rows in first-seen order. As rows
// don't include the source of an e-mail address, observations of the same
// address in different sources collapse into a single row.
func (a *Aggregator) UniqueRows() []types.Row {
	seen := map[types.Row]struct{}{}
	rows := []types.Row{}
	for row := range a.Rows() {
		if _, ok := seen[row]; ok {
			continue
		}
		seen[row] = struct{}{}
		rows = append(rows, row)
	}
	return rows
}

// ValidDomains returns the distinct domains in first-seen order that have a
// valid TLD and did resolve.
func (a *Aggregator) ValidDomains() []string {
	seen := map[string]struct{}{}
	domains := []string{}
	for rec := range a.recs.Records() {
		if !rec.TLDValid || !rec.DomainResolved() {
			continue
		}
		domain := validate.Domain(rec.Email)
		if _, ok := seen[domain]; ok {
			continue
		}
		seen[domain] = struct{}{}
		domains = append(domains, domain)
	}
	return domains
}

// HitsForDomain returns the number of records with the specified domain,
// without any deduplication.
func (a *Aggregator) HitsForDomain(domain string) int {
	return a.recs.DomainRecords(domain)
}

// DomainHits returns the valid domains together with their hits.
func (a *Aggregator) DomainHits() []types.DomainHits {
	domains := a.ValidDomains()
	hits := make([]types.DomainHits, 0, len(domains))
	for _, domain := range domains {
		hits = append(hits, types.DomainHits{Domain: domain, Hits: a.HitsForDomain(domain)})
	}
	return hits
}

// ValidEmailAddresses returns the distinct (e-mail, source) pairs in
// first-seen order that pass both the syntax and TLD checks. Whether their
// domains resolved doesn't matter here.
func (a *Aggregator) ValidEmailAddresses() []types.EmailSource {
	seen := map[types.EmailSource]struct{}{}
	valid := []types.EmailSource{}
	for rec := range a.recs.Records() {
		if !rec.TLDValid || !rec.SyntaxValid {
			continue
		}
		es := types.EmailSource{Email: rec.Email, SourceFile: rec.SourceFile}
		if _, ok := seen[es]; ok {
			continue
		}
		seen[es] = struct{}{}
		valid = append(valid, es)
	}
	return valid
}
