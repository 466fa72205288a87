// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package resolve

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/siemens/maildig/dnsworker"
	"github.com/siemens/maildig/metrics"
	"github.com/siemens/maildig/types"

	"github.com/gammazero/workerpool"
	"github.com/thediveo/lxkns/log"
)

// ErrQueueSaturated signals that the work queue didn't accept a domain within
// the enqueue timeout. This is a configuration error, such as a too small
// queue, and not a transient condition.
var ErrQueueSaturated = errors.New("domain work queue saturated")

// ErrNoWorkers signals that a Coordinator cannot be set up with the requested
// number of resolver workers.
var ErrNoWorkers = errors.New("no resolver workers")

// DefaultEnqueueTimeout is how long enqueuing a single domain may block.
const DefaultEnqueueTimeout = 5 * time.Second

// Store is the part of the record store a Coordinator works on: it supplies
// the domains to resolve and receives the domain-level verdicts.
type Store interface {
	UniqueValidDomains() []string
	ApplyDomainResult(domain string, resolved bool)
	ApplyArchiveNote(domain string, note types.ArchiveNote)
}

// ArchiveChecker checks a web archive for traces of an unresolvable domain.
type ArchiveChecker interface {
	Check(ctx context.Context, domain string) (types.ArchiveNote, error)
}

// Outcome summarizes a completed resolution phase.
type Outcome struct {
	Domains    int // unique domains with valid TLDs.
	Resolved   int
	Unresolved int
	Archived   int // unresolved domains that got an archive note.
}

// Coordinator resolves the unique domains of a record store using a fixed
// number of concurrent resolver workers and then writes the verdicts back
// into the store. Unresolved domains optionally undergo a sequential archive
// check afterwards.
type Coordinator struct {
	resolver       dnsworker.Resolver
	workers        int
	queueCapacity  int // 0: sized to the workload.
	enqueueTimeout time.Duration
	archive        ArchiveChecker
	progress       types.Sink
	metrics        *metrics.Metrics
}

// Option can be passed to New when creating new [Coordinator] objects.
type Option func(*Coordinator)

// New returns a new Coordinator that uses the specified number of concurrent
// workers, resolving domains using the specified resolver.
func New(resolver dnsworker.Resolver, workers int, options ...Option) (*Coordinator, error) {
	if resolver == nil {
		return nil, fmt.Errorf("%w: missing resolver", ErrNoWorkers)
	}
	if workers < 1 {
		return nil, fmt.Errorf("%w: pool size must be at least 1, got %d", ErrNoWorkers, workers)
	}
	c := &Coordinator{
		resolver:       resolver,
		workers:        workers,
		enqueueTimeout: DefaultEnqueueTimeout,
	}
	for _, opt := range options {
		opt(c)
	}
	return c, nil
}

// WithQueueCapacity sets the capacity of the domain work queue. By default,
// the queue is sized to take all domains of a resolution phase.
func WithQueueCapacity(capacity int) Option {
	return func(c *Coordinator) {
		c.queueCapacity = capacity
	}
}

// WithEnqueueTimeout sets the maximum time enqueuing a single domain may
// block before giving up with [ErrQueueSaturated].
func WithEnqueueTimeout(timeout time.Duration) Option {
	return func(c *Coordinator) {
		c.enqueueTimeout = timeout
	}
}

// WithArchiveFallback checks all unresolved domains using the specified
// archive checker.
func WithArchiveFallback(checker ArchiveChecker) Option {
	return func(c *Coordinator) {
		c.archive = checker
	}
}

// WithProgress sends progress events to the specified sink.
func WithProgress(sink types.Sink) Option {
	return func(c *Coordinator) {
		c.progress = sink
	}
}

// WithMetrics counts lookups and archive checks.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Coordinator) {
		c.metrics = m
	}
}

// Resolve resolves all unique domains with valid TLDs from the specified
// store and then applies the verdicts to the store. It then runs the archive
// fallback check (if enabled) for the unresolved domains one after another.
//
// A domain failing to resolve is a verdict, not an error. Resolve only fails
// when the resolution phase as a whole cannot be completed, that is, when the
// work queue saturates or the context gets done. In this case no verdicts
// are applied at all, as a partially resolved store must not be mistaken for
// a complete one.
func (c *Coordinator) Resolve(ctx context.Context, st Store) (Outcome, error) {
	start := time.Now()
	domains := st.UniqueValidDomains()
	outcome := Outcome{Domains: len(domains)}

	capacity := c.queueCapacity
	if capacity <= 0 {
		capacity = len(domains)
	}
	queue := make(chan string, capacity)
	if err := c.enqueue(ctx, queue, domains); err != nil {
		return outcome, err
	}
	close(queue)
	log.Debugf("resolving %d unique domains using %d workers", len(domains), c.workers)

	// Workers pull domains off the queue until it is exhausted, routing each
	// domain into exactly one of the result channels. As the result channels
	// can take all domains, workers never block on them.
	resolved := make(chan string, len(domains))
	unresolved := make(chan string, len(domains))
	pool := workerpool.New(c.workers)
	for i := 0; i < c.workers; i++ {
		pool.Submit(func() {
			for domain := range queue {
				addrs, err := c.resolver.LookupHost(ctx, domain)
				if err != nil || len(addrs) == 0 {
					log.Debugf("domain %s unresolved: %v", domain, err)
					unresolved <- domain
					continue
				}
				resolved <- domain
			}
		})
	}
	pool.StopWait()
	close(resolved)
	close(unresolved)
	c.progress.Emit(types.Event{Stage: types.WorkersJoined, Done: len(domains), Total: len(domains)})
	if err := ctx.Err(); err != nil {
		return outcome, fmt.Errorf("resolution phase aborted: %w", err)
	}

	for domain := range resolved {
		st.ApplyDomainResult(domain, true)
		outcome.Resolved++
	}
	failed := make([]string, 0, len(unresolved))
	for domain := range unresolved {
		st.ApplyDomainResult(domain, false)
		failed = append(failed, domain)
	}
	outcome.Unresolved = len(failed)
	c.metrics.AddLookups(outcome.Resolved, outcome.Unresolved)
	c.metrics.ObservePhase("resolution", start)
	log.Debugf("%d domains resolved, %d unresolved", outcome.Resolved, outcome.Unresolved)

	if c.archive != nil && len(failed) > 0 {
		// Check in the order the domains were first seen, not in the order
		// the workers happened to finish.
		order := make(map[string]int, len(domains))
		for idx, domain := range domains {
			order[domain] = idx
		}
		slices.SortFunc(failed, func(a, b string) int { return order[a] - order[b] })
		archived, err := c.checkArchive(ctx, st, failed)
		outcome.Archived = archived
		if err != nil {
			return outcome, err
		}
	}
	c.progress.Emit(types.Event{Stage: types.ResolutionDone, Done: outcome.Resolved, Total: outcome.Domains})
	return outcome, nil
}

// enqueue puts all domains into the work queue, giving up on the first domain
// that cannot be enqueued within the enqueue timeout.
func (c *Coordinator) enqueue(ctx context.Context, queue chan<- string, domains []string) error {
	for _, domain := range domains {
		timer := time.NewTimer(c.enqueueTimeout)
		select {
		case queue <- domain:
			timer.Stop()
		case <-timer.C:
			return fmt.Errorf("cannot enqueue domain %q within %s: %w",
				domain, c.enqueueTimeout, ErrQueueSaturated)
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("resolution phase aborted: %w", ctx.Err())
		}
	}
	return nil
}

// checkArchive sequentially checks the specified unresolved domains in the
// archive, broadcasting the notes to the store. Failing archive queries are
// not fatal; the affected domains simply don't get a note.
func (c *Coordinator) checkArchive(ctx context.Context, st Store, domains []string) (int, error) {
	start := time.Now()
	defer c.metrics.ObservePhase("archive", start)
	archived := 0
	for idx, domain := range domains {
		note, err := c.archive.Check(ctx, domain)
		if err != nil {
			if ctxerr := ctx.Err(); ctxerr != nil {
				return archived, fmt.Errorf("archive checks aborted: %w", ctxerr)
			}
			log.Warnf("archive check for %s failed: %s", domain, err.Error())
			c.metrics.IncrementArchiveChecks(metrics.Failed)
		} else {
			st.ApplyArchiveNote(domain, note)
			archived++
			if note == types.ArchiveNoRecord {
				c.metrics.IncrementArchiveChecks(metrics.NoRecord)
			} else {
				c.metrics.IncrementArchiveChecks(metrics.Snapshot)
			}
		}
		c.progress.Emit(types.Event{
			Stage:   types.DomainArchived,
			Done:    idx + 1,
			Total:   len(domains),
			Subject: domain,
		})
	}
	return archived, nil
}
