// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package pipeline

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/siemens/maildig/archive"
	"github.com/siemens/maildig/dnsworker"
	"github.com/siemens/maildig/metrics"
	"github.com/siemens/maildig/report"
	"github.com/siemens/maildig/resolve"
	"github.com/siemens/maildig/store"
	"github.com/siemens/maildig/tld"
	"github.com/siemens/maildig/types"
	"github.com/siemens/maildig/validate"

	"github.com/thediveo/lxkns/log"
)

// Pair is a single observation of an e-mail address in some source.
type Pair struct {
	Email      string
	SourceFile string
}

// JoinSources returns the source label for an e-mail address found in
// multiple files.
func JoinSources(names ...string) string {
	return strings.Join(names, " & ")
}

// Result is the outcome of a report run.
type Result struct {
	*report.Aggregator

	Outcome     resolve.Outcome     // zero if domains weren't looked up.
	Detail      []types.Row         // unique detail rows; only in detailed format.
	Domains     []types.DomainHits  // valid domains with hits; only in detailed format.
	ValidEmails []types.EmailSource // addresses with valid syntax and TLD.
}

// Option can be passed to Run.
type Option func(*runner)

type runner struct {
	resolver dnsworker.Resolver
	archive  resolve.ArchiveChecker
	client   *http.Client
	tlds     validate.TLDSet
	progress types.Sink
	metrics  *metrics.Metrics
}

// WithResolver resolves domains using the specified resolver instead of the
// system resolver.
func WithResolver(resolver dnsworker.Resolver) Option {
	return func(r *runner) {
		r.resolver = resolver
	}
}

// WithArchiveChecker checks unresolved domains using the specified checker
// instead of one created from the configuration.
func WithArchiveChecker(checker resolve.ArchiveChecker) Option {
	return func(r *runner) {
		r.archive = checker
	}
}

// WithHTTPClient uses the specified HTTP client for talking to the TLD
// registry and the archive.
func WithHTTPClient(client *http.Client) Option {
	return func(r *runner) {
		r.client = client
	}
}

// WithTLDs uses the specified TLD set instead of loading the TLD directory.
func WithTLDs(tlds validate.TLDSet) Option {
	return func(r *runner) {
		r.tlds = tlds
	}
}

// WithProgress sends progress events to the specified sink.
func WithProgress(sink types.Sink) Option {
	return func(r *runner) {
		r.progress = sink
	}
}

// WithMetrics counts ingested records, lookups and archive checks.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *runner) {
		r.metrics = m
	}
}

// Run generates a report about the specified e-mail observations: it loads
// the TLD directory, ingests and validates all observations, resolves the
// unique domains with valid TLDs, optionally checks unresolved domains in the
// web archive, and finally assembles the report projections.
//
// Run fails as a whole if the TLD directory cannot be loaded or the
// resolution phase cannot be completed; there are no partial reports.
func Run(ctx context.Context, cfg Config, pairs []Pair, options ...Option) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	r := &runner{resolver: dnsworker.System()}
	for _, opt := range options {
		opt(r)
	}

	tlds, err := r.directory(ctx, cfg)
	if err != nil {
		return nil, err
	}
	r.progress.Emit(types.Event{Stage: types.DirectoryLoaded})

	st := store.New(tlds)
	for idx, pair := range pairs {
		id := st.AddRecord(pair.Email, pair.SourceFile)
		rec, _ := st.Record(id)
		r.metrics.IncrementIngested(rec.SyntaxValid, rec.TLDValid)
		r.progress.Emit(types.Event{
			Stage:   types.RecordIngested,
			Done:    idx + 1,
			Total:   len(pairs),
			Subject: rec.Email,
		})
	}
	log.Debugf("ingested %d e-mail observations", st.Len())

	result := &Result{Aggregator: report.New(st)}
	if cfg.DoNSLookup {
		coord, err := r.coordinator(cfg)
		if err != nil {
			return nil, err
		}
		if result.Outcome, err = coord.Resolve(ctx, st); err != nil {
			return nil, err
		}
	} else {
		log.Debugf("skipping domain lookups")
		r.progress.Emit(types.Event{Stage: types.ResolutionDone})
	}

	start := time.Now()
	if cfg.GenerateDetailedFormat {
		result.Detail = result.UniqueRows()
		result.Domains = result.DomainHits()
	}
	result.ValidEmails = result.ValidEmailAddresses()
	r.metrics.ObservePhase("report", start)
	r.progress.Emit(types.Event{Stage: types.ReportAssembled})
	return result, nil
}

// directory returns the TLD directory to validate against.
func (r *runner) directory(ctx context.Context, cfg Config) (validate.TLDSet, error) {
	if r.tlds != nil {
		return r.tlds, nil
	}
	options := []tld.Option{tld.WithURL(cfg.TLDSource)}
	if r.client != nil {
		options = append(options, tld.WithHTTPClient(r.client))
	}
	if cfg.CacheDirectory {
		return tld.Cached(ctx, options...)
	}
	return tld.Load(ctx, options...)
}

// coordinator returns a resolution coordinator set up according to the
// configuration.
func (r *runner) coordinator(cfg Config) (*resolve.Coordinator, error) {
	options := []resolve.Option{
		resolve.WithEnqueueTimeout(cfg.EnqueueTimeout),
		resolve.WithQueueCapacity(cfg.QueueCapacity),
		resolve.WithProgress(r.progress),
		resolve.WithMetrics(r.metrics),
	}
	if cfg.DoArchiveFallback {
		checker := r.archive
		if checker == nil {
			archiveOptions := []archive.Option{
				archive.WithEndpoint(cfg.ArchiveEndpoint),
				archive.WithInterval(cfg.ArchiveInterval),
			}
			if r.client != nil {
				archiveOptions = append(archiveOptions, archive.WithHTTPClient(r.client))
			}
			checker = archive.New(archiveOptions...)
		}
		options = append(options, resolve.WithArchiveFallback(checker))
	}
	return resolve.New(r.resolver, cfg.MaxThreads, options...)
}
