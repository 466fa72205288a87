// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package pipeline

import (
	"fmt"
	"time"

	"github.com/siemens/maildig/archive"
	"github.com/siemens/maildig/resolve"
	"github.com/siemens/maildig/tld"
)

// Limits of the resolver worker pool size.
const (
	MinThreads     = 1
	MaxThreads     = 16
	DefaultThreads = 8
)

// Config controls a report run.
type Config struct {
	// Number of concurrent DNS resolution workers.
	MaxThreads int
	// Assemble the detail rows and domain hits in addition to the valid
	// e-mail addresses.
	GenerateDetailedFormat bool
	// Resolve the domains at all.
	DoNSLookup bool
	// Check unresolved domains in the web archive; ignored without
	// DoNSLookup.
	DoArchiveFallback bool
	// Reuse a TLD directory loaded by an earlier run in this process.
	CacheDirectory bool
	// URL of the TLD registry.
	TLDSource string
	// URL of the archive's “available snapshots” endpoint.
	ArchiveEndpoint string
	// Minimum interval between archive queries; zero for no pacing.
	ArchiveInterval time.Duration
	// Maximum time for enqueuing a single domain.
	EnqueueTimeout time.Duration
	// Capacity of the domain work queue; zero sizes the queue to the
	// workload.
	QueueCapacity int
}

// DefaultConfig returns the default configuration: detailed report, DNS
// lookups with archive fallback, and 8 workers.
func DefaultConfig() Config {
	return Config{
		MaxThreads:             DefaultThreads,
		GenerateDetailedFormat: true,
		DoNSLookup:             true,
		DoArchiveFallback:      true,
		TLDSource:              tld.IANAURL,
		ArchiveEndpoint:        archive.WaybackURL,
		EnqueueTimeout:         resolve.DefaultEnqueueTimeout,
	}
}

// Validate checks the configuration for out-of-range values.
func (c Config) Validate() error {
	if c.MaxThreads < MinThreads || c.MaxThreads > MaxThreads {
		return fmt.Errorf("number of threads out of range [%d..%d], got %d",
			MinThreads, MaxThreads, c.MaxThreads)
	}
	if c.TLDSource == "" {
		return fmt.Errorf("missing TLD source")
	}
	if c.DoNSLookup && c.DoArchiveFallback && c.ArchiveEndpoint == "" {
		return fmt.Errorf("missing archive endpoint")
	}
	if c.ArchiveInterval < 0 {
		return fmt.Errorf("archive interval must not be negative, got %s", c.ArchiveInterval)
	}
	if c.EnqueueTimeout <= 0 {
		return fmt.Errorf("enqueue timeout must be positive, got %s", c.EnqueueTimeout)
	}
	if c.QueueCapacity < 0 {
		return fmt.Errorf("queue capacity must not be negative, got %d", c.QueueCapacity)
	}
	return nil
}
