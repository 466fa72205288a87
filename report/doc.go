/*
Package report implements the report aggregator, projecting e-mail records
into the ordered rows consumed by report writers:

  - [Aggregator.Rows]: one detail row per record,
  - [Aggregator.UniqueRows]: distinct detail rows,
  - [Aggregator.ValidDomains] and [Aggregator.DomainHits]: resolvable domains
    with their raw hit counts,
  - [Aggregator.ValidEmailAddresses]: addresses with valid syntax and TLD,
    together with their sources.

Writing these projections into files is up to the caller.
*/
package report
