// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"

	"github.com/siemens/maildig/tld"
	"github.com/xuri/excelize/v2"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/thediveo/success"
)

var _ = Describe("maildig command", func() {

	run := func(args ...string) error {
		cmd := newRootCmd()
		cmd.SetArgs(args)
		cmd.SetOut(io.Discard)
		cmd.SetErr(io.Discard)
		return cmd.Execute()
	}

	DescribeTable("rejects invalid flags",
		func(args ...string) {
			Expect(run(append(args, "foo.txt")...)).To(HaveOccurred())
		},
		Entry("no workers", "--workers=0"),
		Entry("too many workers", "--workers=17"),
		Entry("too fast spinner", "--spinner=1ms"),
		Entry("no DNS connections", "--dns-conns=0"),
		Entry("empty TLD source", "--tld-url="),
	)

	It("requires input files", func() {
		Expect(run()).To(HaveOccurred())
	})

	It("writes reports", func() {
		registry := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "# Version 2026101800\nCOM\nORG\n")
		}))
		DeferCleanup(registry.Close)
		DeferCleanup(tld.Forget)

		dir := GinkgoT().TempDir()
		input := filepath.Join(dir, "mails.txt")
		Expect(os.WriteFile(input, []byte("Alice@Example.com, bob@nowhere.nosuchtld\n"), 0o644)).To(Succeed())
		csvPath := filepath.Join(dir, "report.csv")
		xlsxPath := filepath.Join(dir, "report.xlsx")
		metricsPath := filepath.Join(dir, "metrics.prom")

		Expect(run("--quiet", "--no-dns",
			"--tld-url="+registry.URL,
			"--csv="+csvPath,
			"--xlsx="+xlsxPath,
			"--metrics-textfile="+metricsPath,
			input)).To(Succeed())

		f := Successful(os.Open(csvPath))
		defer f.Close()
		r := csv.NewReader(f)
		r.Comma = ';'
		records := Successful(r.ReadAll())
		Expect(records).To(HaveLen(3))
		Expect(records[1][0]).To(Equal("alice@example.com"))
		Expect(records[1][3]).To(Equal("1"))
		Expect(records[2][3]).To(Equal("0"))

		wb := Successful(excelize.OpenFile(xlsxPath))
		defer wb.Close()
		Expect(wb.GetRows("Valid Emails")).To(Equal([][]string{
			{"Email", "Source"},
			{"alice@example.com", "mails.txt"},
		}))

		Expect(os.ReadFile(metricsPath)).To(ContainSubstring("maildig_records_ingested_total"))
	})

})

var _ = Describe("maildig main", func() {

	It("exits with an error code on failure", func() {
		oldArgs := os.Args
		DeferCleanup(func() {
			os.Args = oldArgs
			osExit = os.Exit
		})
		code := -1
		osExit = func(c int) { code = c }
		os.Args = []string{"maildig", "--workers=0", "foo.txt"}
		main()
		Expect(code).To(Equal(1))
	})

})
