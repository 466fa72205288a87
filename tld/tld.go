// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package tld

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/thediveo/lxkns/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// IANAURL is the authoritative registry listing all currently delegated
// top-level domains, one per line.
const IANAURL = "https://data.iana.org/TLD/tlds-alpha-by-domain.txt"

// Directory is an immutable set of upper-cased top-level domains.
type Directory struct {
	tlds map[string]struct{}
}

// FetchError reports that the TLD registry couldn't be retrieved.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("cannot fetch TLD list from %s: %s", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Option can be passed to Load when fetching a new [Directory].
type Option func(*loader)

type loader struct {
	url    string
	client *http.Client
}

// WithURL fetches the TLD list from the specified URL instead of [IANAURL].
func WithURL(url string) Option {
	return func(l *loader) {
		l.url = url
	}
}

// WithHTTPClient uses the specified HTTP client for fetching the TLD list.
func WithHTTPClient(client *http.Client) Option {
	return func(l *loader) {
		l.client = client
	}
}

// New returns a Directory consisting of the specified TLDs, in any letter
// case.
func New(tlds ...string) *Directory {
	d := &Directory{tlds: make(map[string]struct{}, len(tlds))}
	for _, tld := range tlds {
		d.add(tld)
	}
	return d
}

// Load fetches the current list of TLDs from the registry and returns it as a
// new Directory. There is no fallback list: if the registry cannot be reached
// or returns an empty list, Load fails with a [FetchError].
func Load(ctx context.Context, options ...Option) (*Directory, error) {
	l := &loader{
		url: IANAURL,
		client: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   30 * time.Second,
		},
	}
	for _, opt := range options {
		opt(l)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, &FetchError{URL: l.url, Err: err}
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: l.url, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{URL: l.url, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}
	d, err := parse(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: l.url, Err: err}
	}
	log.Debugf("loaded %d TLDs from %s", d.Len(), l.url)
	return d, nil
}

// parse reads a newline-delimited TLD list, skipping blank and comment lines.
func parse(r io.Reader) (*Directory, error) {
	d := New()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		d.add(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if d.Len() == 0 {
		return nil, fmt.Errorf("empty TLD list")
	}
	return d, nil
}

func (d *Directory) add(tld string) {
	d.tlds[strings.ToUpper(tld)] = struct{}{}
}

// Contains returns true if the specified TLD is in the directory, regardless
// of its letter case.
func (d *Directory) Contains(tld string) bool {
	_, ok := d.tlds[strings.ToUpper(tld)]
	return ok
}

// Len returns the number of TLDs in the directory.
func (d *Directory) Len() int { return len(d.tlds) }

// cacheEntry serializes loading the directory of a single registry URL.
type cacheEntry struct {
	mu  sync.Mutex
	dir *Directory
}

var (
	cacheMu sync.Mutex
	cached  = map[string]*cacheEntry{} // source URL -> directory
)

// Cached works like [Load], but reuses a Directory already loaded by an
// earlier Cached call for the same registry URL during the lifetime of this
// process. Failed loads are never cached. Concurrent calls for the same URL
// share a single load, while calls for different URLs don't wait on each
// other.
func Cached(ctx context.Context, options ...Option) (*Directory, error) {
	l := &loader{url: IANAURL}
	for _, opt := range options {
		opt(l)
	}
	cacheMu.Lock()
	entry, ok := cached[l.url]
	if !ok {
		entry = &cacheEntry{}
		cached[l.url] = entry
	}
	cacheMu.Unlock()

	entry.mu.Lock()
	defer entry.mu.Unlock()
	if entry.dir != nil {
		return entry.dir, nil
	}
	d, err := Load(ctx, options...)
	if err != nil {
		return nil, err
	}
	entry.dir = d
	return d, nil
}

// Forget drops all cached directories.
func Forget() {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	cached = map[string]*cacheEntry{}
}
