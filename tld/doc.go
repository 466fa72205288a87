/*
Package tld implements the directory of valid top-level domains, as published
by the IANA at [IANAURL].

A [Directory] is loaded once per report run using [Load] and is read-only
afterwards. When the caller explicitly permits it, [Cached] keeps loaded
directories around for subsequent runs in the same process.

Registry access goes through an OpenTelemetry-instrumented HTTP transport.
*/
package tld
