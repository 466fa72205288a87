/*
Package dnsworker implements the host name resolution used for checking
e-mail domains. Anything implementing [Resolver] will do, notably the
operating system's resolver as returned by [System].

For querying a specific DNS server (instead of whatever the system is
configured with) [DnsPool] resolves names using a size-limited pool of DNS
client connections, one per concurrent lookup, issuing A and AAAA queries.

Usage

	dnsclnt := dns.Client{Net: "udp"}
	pool, err := dnsworker.New(
	    context.Background(),
	    4,              // number of DNS connections and thus parallel lookups
	    &dnsclnt,       // DNS client
	    "9.9.9.9:53",   // address of server/resolver
	)
	addrs, err := pool.LookupHost(ctx, "example.org")
	pool.Close()

# Acknowledgements

Under its hood, [DnsPool] leverages [miekg/dns] for talking DNS.

[miekg/dns]: https://github.com/miekg/dns
*/
package dnsworker
