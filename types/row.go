// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package types

// Row is the detail projection of an [EmailRecord], with its verdict flags
// already rendered as "1" or "0". Rows are comparable and thus can be used as
// map keys when deduplicating.
type Row struct {
	Email          string
	SyntaxValid    string
	TLD            string
	TLDValid       string
	Domain         string
	DomainChecked  string
	DomainResolved string
	ArchiveNote    string
}

// Fields returns the row's fields in their documented column order.
func (r Row) Fields() []string {
	return []string{
		r.Email,
		r.SyntaxValid,
		r.TLD,
		r.TLDValid,
		r.Domain,
		r.DomainChecked,
		r.DomainResolved,
		r.ArchiveNote,
	}
}

// Flag renders a boolean verdict as "1" or "0".
func Flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// EmailSource is an e-mail address together with the source it was found
// in.
type EmailSource struct {
	Email      string `json:"email"`
	SourceFile string `json:"source_file"`
}

// DomainHits is a domain together with the number of (non-deduplicated)
// records referencing it.
type DomainHits struct {
	Domain string `json:"domain"`
	Hits   int    `json:"hits"`
}
