// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/siemens/maildig/dnsworker"
	"github.com/siemens/maildig/export"
	"github.com/siemens/maildig/metrics"
	"github.com/siemens/maildig/pipeline"

	"github.com/gosuri/uilive"
	"github.com/miekg/dns"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/thediveo/lxkns/log"
)

// DigAndReport extracts the e-mail addresses from the specified files, runs
// them through the validation pipeline while rendering the progress, and
// finally writes the requested report files.
func DigAndReport(ctx context.Context, s *settings, paths []string) error {
	pairs, err := extractPairs(paths)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	options := []pipeline.Option{
		pipeline.WithMetrics(metrics.New(reg)),
	}
	if s.dnsServer != "" && s.cfg.DoNSLookup {
		pool, err := dnsworker.New(ctx, int(s.dnsConns), &dns.Client{Timeout: 5 * time.Second}, s.dnsServer)
		if err != nil {
			return fmt.Errorf("cannot connect to DNS server %s: %w", s.dnsServer, err)
		}
		defer pool.Close()
		options = append(options, pipeline.WithResolver(pool))
	}

	// Create the progress tracker and immediately fire off the rendering
	// goroutine. The rendering only stops after the pipeline run has
	// finished, rendering a final update and signalling its end via
	// renderingDone.
	prog := newProgress()
	options = append(options, pipeline.WithProgress(prog.Update))
	runDone := make(chan struct{})
	renderingDone := make(chan struct{})
	if s.quiet {
		close(renderingDone)
	} else {
		go func() {
			// Avoid uilive's background updating mode and instead flush
			// explicitly after having completed the rendering, so the
			// terminal doesn't see half-rendered updates.
			term := uilive.New()
			renderer := newRenderer(term, s.spinnerInterval)
			defer func() {
				renderProgress(term, renderer, prog)
				renderer.Stop()
				close(renderingDone)
			}()
			renderProgress(term, renderer, prog)
			ticker := time.NewTicker(20 * time.Millisecond)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					renderProgress(term, renderer, prog)
				case <-runDone:
					return
				}
			}
		}()
	}

	res, err := pipeline.Run(ctx, s.cfg, pairs, options...)
	close(runDone)
	<-renderingDone
	if err != nil {
		fmt.Fprintln(os.Stderr, failedStyle.Styled(fmt.Sprintf("report failed: %s", err.Error())))
		return err
	}

	if err := writeReports(s, res); err != nil {
		return err
	}
	if s.metricsPath != "" {
		if err := prometheus.WriteToTextfile(s.metricsPath, reg); err != nil {
			return fmt.Errorf("cannot write metrics: %w", err)
		}
	}
	if !s.quiet {
		renderSummary(os.Stdout, &reportSummary{
			Records:     len(pairs),
			ValidEmails: len(res.ValidEmails),
			Checked:     s.cfg.DoNSLookup,
			Resolved:    res.Outcome.Resolved,
			Unresolved:  res.Outcome.Unresolved,
		})
	}
	return nil
}

// writeReports writes the requested CSV and workbook report files.
func writeReports(s *settings, res *pipeline.Result) error {
	if s.csvPath != "" {
		if err := writeFile(s.csvPath, func(w io.Writer) error {
			return export.WriteCSV(w, res.UniqueRows())
		}); err != nil {
			return fmt.Errorf("cannot write CSV report: %w", err)
		}
		log.Infof("CSV report written to %s", s.csvPath)
	}
	if s.xlsxPath != "" {
		wb := export.Workbook{
			Domains:     res.Domains,
			Detail:      res.Detail,
			ValidEmails: res.ValidEmails,
		}
		if err := writeFile(s.xlsxPath, wb.Write); err != nil {
			return fmt.Errorf("cannot write workbook report: %w", err)
		}
		log.Infof("workbook report written to %s", s.xlsxPath)
	}
	return nil
}

// writeFile creates the specified file and hands it to the writer function.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// renderProgress gets the current progress and then renders (and flushes) it
// to the terminal.
func renderProgress(term *uilive.Writer, r *renderer, prog *progress) {
	r.Render(prog.Get())
	term.Flush()
}
