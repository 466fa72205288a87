// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package tld

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/thediveo/success"
)

const ianaList = `# Version 2026101800, Last Updated Sun Oct 18 07:07:01 2026 UTC
AAA
COM
DE

ORG
XN--VERMGENSBERATER-CTB
`

var _ = Describe("TLD directory", func() {

	var hits atomic.Int32

	newRegistry := func(status int, body string) *httptest.Server {
		hits.Store(0)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			w.WriteHeader(status)
			fmt.Fprint(w, body)
		}))
		DeferCleanup(srv.Close)
		return srv
	}

	It("loads the registry list", func(ctx context.Context) {
		srv := newRegistry(http.StatusOK, ianaList)
		d := Successful(Load(ctx, WithURL(srv.URL), WithHTTPClient(srv.Client())))
		Expect(d.Len()).To(Equal(5))
		Expect(d.Contains("COM")).To(BeTrue())
		Expect(d.Contains("com")).To(BeTrue())
		Expect(d.Contains("Org")).To(BeTrue())
		Expect(d.Contains("xn--vermgensberater-ctb")).To(BeTrue())
		Expect(d.Contains("INVALIDTLD123")).To(BeFalse())
		Expect(d.Contains("# Version 2026101800, Last Updated Sun Oct 18 07:07:01 2026 UTC")).To(BeFalse())
	})

	It("fails on registry errors", func(ctx context.Context) {
		srv := newRegistry(http.StatusServiceUnavailable, "")
		_, err := Load(ctx, WithURL(srv.URL))
		var fetchErr *FetchError
		Expect(errors.As(err, &fetchErr)).To(BeTrue())
		Expect(fetchErr.URL).To(Equal(srv.URL))
		Expect(err.Error()).To(ContainSubstring("503"))
	})

	It("fails on empty lists", func(ctx context.Context) {
		srv := newRegistry(http.StatusOK, "# nothing to see here\n\n")
		_, err := Load(ctx, WithURL(srv.URL))
		Expect(err).To(MatchError(ContainSubstring("empty TLD list")))
	})

	It("fails on unreachable registries", func(ctx context.Context) {
		srv := newRegistry(http.StatusOK, ianaList)
		url := srv.URL
		srv.Close()
		_, err := Load(ctx, WithURL(url))
		var fetchErr *FetchError
		Expect(errors.As(err, &fetchErr)).To(BeTrue())
	})

	It("builds directories from TLD lists", func() {
		d := New("com", "De")
		Expect(d.Len()).To(Equal(2))
		Expect(d.Contains("DE")).To(BeTrue())
	})

	When("caching", func() {

		BeforeEach(func() {
			Forget()
			DeferCleanup(Forget)
		})

		It("loads only once per registry", func(ctx context.Context) {
			srv := newRegistry(http.StatusOK, ianaList)
			d1 := Successful(Cached(ctx, WithURL(srv.URL)))
			d2 := Successful(Cached(ctx, WithURL(srv.URL)))
			Expect(d2).To(BeIdenticalTo(d1))
			Expect(hits.Load()).To(Equal(int32(1)))

			Forget()
			d3 := Successful(Cached(ctx, WithURL(srv.URL)))
			Expect(d3).NotTo(BeIdenticalTo(d1))
			Expect(hits.Load()).To(Equal(int32(2)))
		})

		It("doesn't hold up other registries while loading", func(ctx context.Context) {
			release := make(chan struct{})
			slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				<-release
				fmt.Fprint(w, ianaList)
			}))
			DeferCleanup(slow.Close)
			DeferCleanup(func() {
				select {
				case <-release:
				default:
					close(release)
				}
			})

			slowDone := make(chan *Directory)
			for range 2 {
				go func() {
					defer GinkgoRecover()
					slowDone <- Successful(Cached(ctx, WithURL(slow.URL)))
				}()
			}

			fast := newRegistry(http.StatusOK, ianaList)
			Expect(Cached(ctx, WithURL(fast.URL))).NotTo(BeNil())
			Consistently(slowDone).WithTimeout(100 * time.Millisecond).ShouldNot(Receive())

			close(release)
			var d1, d2 *Directory
			Eventually(slowDone).Should(Receive(&d1))
			Eventually(slowDone).Should(Receive(&d2))
			Expect(d2).To(BeIdenticalTo(d1))
		})

		It("doesn't cache failures", func(ctx context.Context) {
			srv := newRegistry(http.StatusInternalServerError, "")
			_, err := Cached(ctx, WithURL(srv.URL))
			Expect(err).To(HaveOccurred())
			_, err = Cached(ctx, WithURL(srv.URL))
			Expect(err).To(HaveOccurred())
			Expect(hits.Load()).To(Equal(int32(2)))
		})

	})

})
