/*
Package store implements the e-mail record store, holding one record per
observed e-mail address and source.

Verdicts about the syntax and TLD of an address are decided when adding a
record and never change afterwards. Domain-level facts, that is, DNS
resolution results and archive notes, are broadcast to all records sharing a
domain through a domain index that is built incrementally while adding
records.
*/
package store
