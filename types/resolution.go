// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package types

import "fmt"

// Resolution indicates the DNS resolution state of an e-mail domain, such as
// unchecked, resolved, et cetera.
type Resolution int

// The resolution states of an e-mail domain.
const (
	Unchecked  Resolution = iota // domain not (yet) looked up.
	Unresolved                   // lookup completed, but the domain didn't resolve.
	Resolved                     // domain successfully resolved into addresses.
)

// String returns the clear-text representation of a Resolution value.
func (r Resolution) String() string {
	switch r {
	case Unchecked:
		return "unchecked"
	case Unresolved:
		return "unresolved"
	case Resolved:
		return "resolved"
	}
	return fmt.Sprintf("Resolution(%d)", r)
}

// Checked returns true once a resolution attempt has completed, regardless of
// its outcome.
func (r Resolution) Checked() bool {
	return r == Unresolved || r == Resolved
}

// IsResolved returns true only if the domain did resolve.
func (r Resolution) IsResolved() bool {
	return r == Resolved
}

// ResolutionOf returns the terminal Resolution for a lookup outcome.
func ResolutionOf(resolved bool) Resolution {
	if resolved {
		return Resolved
	}
	return Unresolved
}
