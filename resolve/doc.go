/*
Package resolve implements the domain resolution coordinator: it takes the
unique domains with valid TLDs from a record store, resolves them using a
fixed-size pool of resolver workers, and then broadcasts the verdicts back to
all records sharing a domain.

	                +--------+      +------------+
	domains -->queue| worker |--+-->| resolved   |--+
	                | worker |  |   +------------+  +--> store (after join)
	                | worker |  +-->| unresolved |--+
	                +--------+      +------------+  |
	                                                +--> archive (sequential) --> store

The workload is a finite batch that is completely known up front: all domains
are enqueued into a bounded queue first, then the workers drain the queue and
terminate when it is exhausted. Only after all workers have been joined are
the results drained and applied to the store, so workers never touch the
store and the store needs no locking.

Unresolved domains can optionally be checked in a web archive. These checks
run strictly sequentially after the pool has been joined, as the archive is
an external service with rate characteristics of its own.

# Acknowledgements

Under its hood, [Coordinator] leverages [gammazero/workerpool] as the
limiting goroutine pool.

[gammazero/workerpool]: https://github.com/gammazero/workerpool
*/
package resolve
