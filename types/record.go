// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package types

// RecordID is an opaque, incrementing identifier of an [EmailRecord]. IDs
// are never reused.
type RecordID uint64

// EmailRecord represents a single observation of an e-mail address in a
// particular source (file), together with the validation verdicts.
//
// Email and SourceFile never change after creation, and neither do the
// syntax and TLD verdicts which are computed once at creation time. Only the
// domain-level Resolution and ArchiveNote get updated later, and always for
// all records sharing the same domain at once.
type EmailRecord struct {
	ID          RecordID    `json:"id"`
	Email       string      `json:"email"`        // lower-cased address.
	SourceFile  string      `json:"source_file"`  // origin label, possibly several joined file names.
	SyntaxValid bool        `json:"syntax_valid"` // address matches the e-mail grammar.
	TLDValid    bool        `json:"tld_valid"`    // TLD is listed in the TLD directory.
	Resolution  Resolution  `json:"resolution"`   // domain resolution state.
	ArchiveNote ArchiveNote `json:"archive_note"` // web archive fallback outcome.
}

// DomainChecked returns true once a resolution attempt for the record's
// domain has completed.
func (r *EmailRecord) DomainChecked() bool { return r.Resolution.Checked() }

// DomainResolved returns true if the record's domain resolved.
func (r *EmailRecord) DomainResolved() bool { return r.Resolution.IsResolved() }
