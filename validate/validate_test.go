// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package validate

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type tldset map[string]struct{}

func (s tldset) Contains(tld string) bool {
	_, ok := s[strings.ToUpper(tld)]
	return ok
}

var tlds = tldset{"COM": {}, "ORG": {}, "MUSEUM": {}, "DE": {}}

var _ = Describe("e-mail validation", func() {

	DescribeTable("extracting domains",
		func(email, domain string) {
			Expect(Domain(email)).To(Equal(domain))
			parts := strings.Split(email, "@")
			Expect(Domain(email)).To(Equal(strings.ToLower(parts[len(parts)-1])))
		},
		Entry(nil, "user@example.com", "example.com"),
		Entry(nil, "User@Example.COM", "example.com"),
		Entry(nil, "a@b@sub.example.org", "sub.example.org"),
		Entry(nil, "bad-email", "bad-email"),
		Entry(nil, "trailing@", ""),
	)

	DescribeTable("extracting TLDs",
		func(email, tld string) {
			Expect(TLD(email)).To(Equal(tld))
		},
		Entry(nil, "user@example.com", "com"),
		Entry(nil, "first.last@localhost", "last@localhost"),
		Entry(nil, "bad-email", "bad-email"),
	)

	DescribeTable("checking syntax",
		func(email string, valid bool) {
			Expect(CheckSyntax(email)).To(Equal(valid))
		},
		Entry(nil, "user@example.com", true),
		Entry(nil, "User@Example.COM", true),
		Entry(nil, "first.last_name-x@mail.sub.example.org", true),
		Entry(nil, "user@example.museum", false), // TLD too long for the grammar
		Entry(nil, "user@example.c", false),
		Entry(nil, "user@exam_ple.com", false),
		Entry(nil, "user+tag@example.com", false),
		Entry(nil, "bad-email", false),
		Entry(nil, "user@localhost", false),
		Entry(nil, "@example.com", false),
		Entry(nil, "user@example.c0m", false),
	)

	DescribeTable("checking TLDs",
		func(email string, valid bool) {
			Expect(CheckTLD(email, tlds)).To(Equal(valid))
		},
		Entry(nil, "user@example.com", true),
		Entry(nil, "user@example.museum", true),
		Entry(nil, "user@example.invalidtld123", false),
		Entry(nil, "bad-email", false),
		Entry(nil, "first.last@localhost", false),
		Entry(nil, "a.com", false),
	)

	It("checks TLDs case-insensitively", func() {
		Expect(CheckTLD("user@example.COM", tlds)).To(BeTrue())
		Expect(CheckTLD("user@example.COM", tlds)).To(Equal(CheckTLD("user@example.com", tlds)))
	})

	It("never accepts TLDs without a directory", func() {
		Expect(CheckTLD("user@example.com", nil)).To(BeFalse())
	})

	It("flags malformed addresses", func() {
		Expect(IsMalformed("bad-email")).To(BeTrue())
		Expect(IsMalformed("user@localhost")).To(BeTrue())
		Expect(IsMalformed("user@example.com")).To(BeFalse())
		Expect(Normalize("User@Example.COM")).To(Equal("user@example.com"))
	})

})
