// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package validate

import (
	"regexp"
	"strings"
)

// emailGrammar is intentionally permissive: local part and domain labels of
// [a-z0-9_-] (domain labels without "_"), with dots in between, ending in an
// alphabetic TLD of 2 to 4 characters.
var emailGrammar = regexp.MustCompile(
	`^[_a-z0-9-]+(\.[_a-z0-9-]+)*@[a-z0-9-]+(\.[a-z0-9-]+)*(\.[a-z]{2,4})$`)

// TLDSet is anything that can tell whether a top-level domain exists.
// Implementations must compare case-insensitively.
type TLDSet interface {
	Contains(tld string) bool
}

// Normalize returns the normalized (lower-cased) form of an e-mail address.
func Normalize(email string) string {
	return strings.ToLower(email)
}

// Domain returns the lower-cased substring after the last "@" of an e-mail
// address. If there is no "@" at all, this is the whole address.
func Domain(email string) string {
	return strings.ToLower(email[strings.LastIndex(email, "@")+1:])
}

// TLD returns the substring after the last "." of an e-mail address, or the
// whole address in case it contains no "." at all.
func TLD(email string) string {
	return email[strings.LastIndex(email, ".")+1:]
}

// IsMalformed returns true if an e-mail address lacks an "@" or its domain
// lacks a ".", so it cannot possibly have a (valid) TLD.
func IsMalformed(email string) bool {
	return !strings.Contains(email, "@") || !strings.Contains(Domain(email), ".")
}

// CheckSyntax returns true if the (case-insensitive) e-mail address matches
// the e-mail grammar. A syntactically valid address might still use a
// non-existing TLD or an unresolvable domain.
func CheckSyntax(email string) bool {
	if IsMalformed(email) {
		return false
	}
	return emailGrammar.MatchString(strings.ToLower(email))
}

// CheckTLD returns true if the e-mail address' TLD is contained in the
// specified set of TLDs. The check is case-insensitive. Malformed addresses
// never pass the TLD check.
func CheckTLD(email string, tlds TLDSet) bool {
	if tlds == nil || IsMalformed(email) {
		return false
	}
	return tlds.Contains(strings.ToUpper(TLD(email)))
}
