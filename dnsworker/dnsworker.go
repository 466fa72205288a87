// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package dnsworker

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/miekg/dns"
)

// Resolver resolves host names into their (textual) IP addresses. A
// *[net.Resolver] satisfies this interface.
type Resolver interface {
	LookupHost(ctx context.Context, host string) (addrs []string, err error)
}

var _ Resolver = (*net.Resolver)(nil)
var _ Resolver = (*DnsPool)(nil)

// System returns the resolver of the operating system, or rather what Go
// makes of it.
func System() Resolver {
	return net.DefaultResolver
}

// ErrClosed is returned by [DnsPool.LookupHost] after the pool has been closed.
var ErrClosed = errors.New("DNS client connection pool closed")

// DnsPool is a (size-limited) pool of DNS client connections talking with the
// same DNS resolver address, resolving names into their A and AAAA records.
type DnsPool struct {
	dnsclnt *dns.Client
	free    chan *dns.Conn
	size    int
}

// New returns a pool of the specified size of DNS client connections, with each
// connection using the specified context and talking to the same DNS resolver
// address.
//
// The passed context is used for creating (dialing) the DNS client connections
// only. Callers of [DnsPool.LookupHost] wait for a free connection in case all
// connections are in use.
func New(ctx context.Context, size int, dnsclnt *dns.Client, addr string) (*DnsPool, error) {
	if size < 1 {
		return nil, fmt.Errorf("DNS client connection pool size must be at least 1, got %d", size)
	}
	free := make(chan *dns.Conn, size)
	for i := 0; i < size; i++ {
		conn, err := dnsclnt.DialContext(ctx, addr)
		if err != nil {
			// Immediately release all connections created so far.
			close(free)
			for conn := range free {
				conn.Close()
			}
			return nil, err
		}
		free <- conn
	}
	return &DnsPool{
		dnsclnt: dnsclnt,
		free:    free,
		size:    size,
	}, nil
}

// LookupHost queries the A and AAAA records of the specified name, returning
// the IP addresses in textual format. If neither query yields any addresses
// then an error is returned instead.
//
// Please note that the A and AAAA queries for a single name are not
// concurrent.
func (p *DnsPool) LookupHost(ctx context.Context, name string) ([]string, error) {
	var conn *dns.Conn
	select {
	case c, ok := <-p.free:
		if !ok {
			return nil, ErrClosed
		}
		conn = c
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	addrs, err := p.lookup(ctx, conn, name)
	// ...and push the DNS client connection back into the free list.
	p.free <- conn
	return addrs, err
}

// lookup runs the A and AAAA queries on the specified connection.
func (p *DnsPool) lookup(ctx context.Context, conn *dns.Conn, name string) ([]string, error) {
	var addrs []string
	fqdn := dns.Fqdn(name)
	for _, addrType := range []uint16{dns.TypeA, dns.TypeAAAA} {
		// don't try to resolve the name if the context has been cancelled.
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		msg := dns.Msg{
			MsgHdr: dns.MsgHdr{Id: dns.Id()},
		}
		msg.SetQuestion(fqdn, addrType)
		r, _, err := p.dnsclnt.ExchangeWithConn(&msg, conn)
		if err != nil {
			return nil, err
		}
		if r.Rcode == dns.RcodeNameError {
			return nil, fmt.Errorf("LookupHost: %q does not exist", name)
		}
		for _, rr := range r.Answer {
			switch addrRR := rr.(type) {
			case *dns.A:
				addrs = append(addrs, addrRR.A.String())
			case *dns.AAAA:
				addrs = append(addrs, addrRR.AAAA.String())
			}
		}
	}
	// If we neither got A nor AAAA answers then we consider this to be an
	// error.
	if len(addrs) == 0 {
		return nil, fmt.Errorf("LookupHost: query for %q yields no answers", name)
	}
	return addrs, nil
}

// Close waits for all connections to become free and then closes them. Close
// must not be called while lookups might still get started.
func (p *DnsPool) Close() {
	for i := 0; i < p.size; i++ {
		conn := <-p.free
		conn.Close()
	}
	close(p.free)
}
