// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/siemens/maildig/pipeline"
	"github.com/spf13/cobra"
	"github.com/thediveo/lxkns/log"
)

// settings collects the CLI flag values.
type settings struct {
	cfg             pipeline.Config
	dnsServer       string
	dnsConns        uint
	csvPath         string
	xlsxPath        string
	metricsPath     string
	spinnerInterval time.Duration
	quiet           bool
	debug           bool
}

func newRootCmd() (rootCmd *cobra.Command) {
	s := &settings{cfg: pipeline.DefaultConfig()}
	var noDNS, noArchive bool
	rootCmd = &cobra.Command{
		Use:     "maildig [flags] file...",
		Short:   "maildig extracts e-mail addresses from files and validates their syntax, TLDs, and domains",
		Version: "0.9",
		Args:    cobra.MinimumNArgs(1),
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			s.cfg.DoNSLookup = !noDNS
			s.cfg.DoArchiveFallback = !noArchive && !noDNS
			if err := s.cfg.Validate(); err != nil {
				return err
			}
			if s.dnsConns < 1 || s.dnsConns > 64 {
				return fmt.Errorf("--dns-conns out of range [1..64]")
			}
			if s.spinnerInterval < 10*time.Millisecond {
				return fmt.Errorf("--spinner must be at least 10ms")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if s.debug {
				log.SetLevel(log.DebugLevel)
				log.Debugf("debug logging enabled")
			}
			return DigAndReport(context.Background(), s, args)
		},
	}
	// Sets up the flags.
	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&s.debug, "debug", false, "enable debugging output")
	flags.BoolVarP(&s.quiet, "quiet", "q", false, "don't render progress information")
	flags.DurationVar(&s.spinnerInterval, "spinner", 100*time.Millisecond, "spinner interval")
	flags.IntVar(&s.cfg.MaxThreads, "workers", pipeline.DefaultThreads,
		fmt.Sprintf("number of DNS resolution workers [%d..%d]", pipeline.MinThreads, pipeline.MaxThreads))
	flags.BoolVar(&s.cfg.GenerateDetailedFormat, "detailed", true, "generate the detail and domain reports")
	flags.BoolVar(&noDNS, "no-dns", false, "skip domain name lookups (implies --no-archive)")
	flags.BoolVar(&noArchive, "no-archive", false, "don't check unresolved domains in the web archive")
	flags.DurationVar(&s.cfg.ArchiveInterval, "archive-interval", time.Second,
		"minimum interval between web archive queries")
	flags.StringVar(&s.cfg.TLDSource, "tld-url", s.cfg.TLDSource, "URL of the TLD registry list")
	flags.StringVar(&s.cfg.ArchiveEndpoint, "archive-url", s.cfg.ArchiveEndpoint,
		"URL of the web archive availability API")
	flags.StringVar(&s.dnsServer, "dns-server", "",
		"query this DNS server (host:port) instead of using the system resolver")
	flags.UintVar(&s.dnsConns, "dns-conns", 4, "number of connections to the DNS server")
	flags.StringVar(&s.csvPath, "csv", "", "write the detail report in CSV format to this file")
	flags.StringVar(&s.xlsxPath, "xlsx", "", "write the report workbook to this file")
	flags.StringVar(&s.metricsPath, "metrics-textfile", "",
		"write run metrics in Prometheus text format to this file")
	return
}
