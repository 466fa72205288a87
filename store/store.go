// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package store

import (
	"iter"

	"github.com/siemens/maildig/types"
	"github.com/siemens/maildig/validate"
)

// Store keeps one [types.EmailRecord] per observed (e-mail, source) pair, in
// insertion order. Records are never removed and their IDs never reused.
//
// Additionally, Store indexes records by their domains, so that domain-level
// verdicts can be broadcast to only those records sharing the domain in
// question.
//
// A Store is not safe for concurrent use; during the resolution phase the
// resolution workers never touch the Store, only the coordinating goroutine
// does after all workers have terminated.
type Store struct {
	tlds     validate.TLDSet
	records  []types.EmailRecord
	byDomain map[string][]int // domain -> indices into records
	domains  []string         // domains in first-seen order
}

// New returns a new and empty Store that uses the specified TLD directory for
// checking the TLDs of newly added e-mail addresses.
func New(tlds validate.TLDSet) *Store {
	return &Store{
		tlds:     tlds,
		byDomain: map[string][]int{},
	}
}

// AddRecord normalizes the specified e-mail address, runs the syntax and TLD
// checks, and then appends a new record, returning the new record's ID.
// Duplicate (e-mail, source) pairs are perfectly fine.
func (s *Store) AddRecord(email, sourceFile string) types.RecordID {
	email = validate.Normalize(email)
	idx := len(s.records)
	s.records = append(s.records, types.EmailRecord{
		ID:          types.RecordID(idx),
		Email:       email,
		SourceFile:  sourceFile,
		SyntaxValid: validate.CheckSyntax(email),
		TLDValid:    validate.CheckTLD(email, s.tlds),
		Resolution:  types.Unchecked,
		ArchiveNote: types.ArchiveNotApplicable,
	})
	domain := validate.Domain(email)
	if _, ok := s.byDomain[domain]; !ok {
		s.domains = append(s.domains, domain)
	}
	s.byDomain[domain] = append(s.byDomain[domain], idx)
	return types.RecordID(idx)
}

// Len returns the number of records.
func (s *Store) Len() int { return len(s.records) }

// Record returns (a copy of) the record with the specified ID, or false if
// there is no such record.
func (s *Store) Record(id types.RecordID) (types.EmailRecord, bool) {
	if uint64(id) >= uint64(len(s.records)) {
		return types.EmailRecord{}, false
	}
	return s.records[id], true
}

// Records returns an iterator over (copies of) all records in insertion
// order.
func (s *Store) Records() iter.Seq[types.EmailRecord] {
	return func(yield func(types.EmailRecord) bool) {
		for _, rec := range s.records {
			if !yield(rec) {
				return
			}
		}
	}
}

// DomainRecords returns the number of records with the specified domain.
func (s *Store) DomainRecords(domain string) int {
	return len(s.byDomain[domain])
}

// UniqueValidDomains returns the distinct domains of all records passing the
// TLD check, in first-seen order. Domains with a non-existing TLD are never
// returned, as they cannot resolve anyway.
func (s *Store) UniqueValidDomains() []string {
	domains := make([]string, 0, len(s.domains))
	for _, domain := range s.domains {
		for _, idx := range s.byDomain[domain] {
			if s.records[idx].TLDValid {
				domains = append(domains, domain)
				break
			}
		}
	}
	return domains
}

// ApplyDomainResult marks the domain of all records with the specified domain
// as checked, and as either resolved or unresolved. Applying the same result
// multiple times is idempotent.
func (s *Store) ApplyDomainResult(domain string, resolved bool) {
	res := types.ResolutionOf(resolved)
	for _, idx := range s.byDomain[domain] {
		s.records[idx].Resolution = res
	}
}

// ApplyArchiveNote sets the archive note of all records with the specified
// domain.
func (s *Store) ApplyArchiveNote(domain string, note types.ArchiveNote) {
	for _, idx := range s.byDomain[domain] {
		s.records[idx].ArchiveNote = note
	}
}
