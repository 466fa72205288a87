/*
Package types defines maildig's information model. Which is rather simple and
mainly revolves around [EmailRecord], that is, a single observation of an
e-mail address in some source, together with its validation verdicts.

# Verdicts

The syntax and TLD verdicts are properties of the address itself and thus
decided exactly once when a record gets created. In contrast, the
[Resolution] of a domain and the [ArchiveNote] are facts about the domain and
are thus always “broadcast” to all records sharing the same domain.

# Projections

Reports don't hand out records, but instead value-typed projections: [Row]
for the detail view, [EmailSource] for the valid addresses, and [DomainHits]
for the interesting domains. As Row is comparable it can directly serve as a
deduplication key.

# Progress

Long-running report generation emits discrete progress [Event] ticks to an
optional [Sink]. How these ticks get rendered, if at all, is up to the caller.
*/
package types
