// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/siemens/maildig/types"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"
)

// WaybackURL is the Internet Archive's “available snapshots” endpoint.
const WaybackURL = "https://archive.org/wayback/available"

// Snapshot is the archived snapshot closest to now, as reported by the
// archive.
type Snapshot struct {
	Available bool   `json:"available"`
	URL       string `json:"url"`
	Timestamp string `json:"timestamp"` // 14-digit format: YYYYMMDDhhmmss
	Status    string `json:"status"`
}

// availability is the archive's response shape; a missing or empty
// archived_snapshots object signals that there isn't any snapshot.
type availability struct {
	URL               string `json:"url"`
	ArchivedSnapshots *struct {
		Closest *Snapshot `json:"closest"`
	} `json:"archived_snapshots"`
}

// FetchError reports that querying the archive about a particular domain
// failed.
type FetchError struct {
	Domain string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("cannot query archive about %s: %s", e.Domain, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Checker queries a web archive for historic snapshots of domains. Queries
// are paced using a rate limiter, so that sequences of checks don't hammer
// the archive.
type Checker struct {
	endpoint string
	client   *http.Client
	limiter  *rate.Limiter
}

// Option can be passed to New when creating new [Checker] objects.
type Option func(*Checker)

// New returns a new Checker, by default querying [WaybackURL] without any
// pacing.
func New(options ...Option) *Checker {
	c := &Checker{
		endpoint: WaybackURL,
		client: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   30 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Inf, 1),
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// WithEndpoint sets the URL of the “available snapshots” endpoint to query.
func WithEndpoint(endpoint string) Option {
	return func(c *Checker) {
		c.endpoint = endpoint
	}
}

// WithHTTPClient sets the HTTP client for querying the archive.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Checker) {
		c.client = client
	}
}

// WithInterval sets the minimum interval between two consecutive archive
// queries. A zero or negative interval disables pacing.
func WithInterval(interval time.Duration) Option {
	return func(c *Checker) {
		if interval <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Every(interval), 1)
	}
}

// Lookup queries the archive for the snapshot of the specified domain closest
// to now. It returns a nil Snapshot if the archive doesn't know the domain.
func (c *Checker) Lookup(ctx context.Context, domain string) (*Snapshot, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &FetchError{Domain: domain, Err: err}
	}
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, &FetchError{Domain: domain, Err: err}
	}
	u.RawQuery = url.Values{"url": []string{domain}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &FetchError{Domain: domain, Err: err}
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &FetchError{Domain: domain, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{Domain: domain, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}
	var avail availability
	if err := json.NewDecoder(resp.Body).Decode(&avail); err != nil {
		return nil, &FetchError{Domain: domain, Err: err}
	}
	if avail.ArchivedSnapshots == nil || avail.ArchivedSnapshots.Closest == nil {
		return nil, nil
	}
	return avail.ArchivedSnapshots.Closest, nil
}

// Check queries the archive about the specified domain and returns the
// corresponding note: either the closest snapshot's timestamp and URL, or
// [types.ArchiveNoRecord].
func (c *Checker) Check(ctx context.Context, domain string) (types.ArchiveNote, error) {
	snap, err := c.Lookup(ctx, domain)
	if err != nil {
		return types.ArchiveNotApplicable, err
	}
	if snap == nil {
		return types.ArchiveNoRecord, nil
	}
	return types.SnapshotNote(snap.Timestamp, snap.URL), nil
}
