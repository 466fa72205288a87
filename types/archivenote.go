// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package types

// ArchiveNote is the best-effort outcome of checking a web archive for
// historic snapshots of an unresolvable domain.
type ArchiveNote string

const (
	// ArchiveNotApplicable marks a domain that didn't undergo an archive check.
	ArchiveNotApplicable ArchiveNote = "not applicable"
	// ArchiveNoRecord marks a domain the archive has no snapshots of.
	ArchiveNoRecord ArchiveNote = "no record"
)

// SnapshotNote returns the note for a snapshot found in the archive, in
// "<timestamp>;<url>" format.
func SnapshotNote(timestamp, url string) ArchiveNote {
	return ArchiveNote(timestamp + ";" + url)
}

// String returns the note text.
func (n ArchiveNote) String() string { return string(n) }
