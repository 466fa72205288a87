/*
Package archive implements the web archive fallback check for e-mail domains
that failed DNS resolution: a [Checker] asks the Internet Archive's Wayback
Machine for the snapshot closest to now.

A domain that once had a web presence but doesn't resolve anymore is much
more plausible than a domain that never existed at all.

As the archive is an external service with its own rate characteristics,
checks are intended to be run sequentially, optionally paced using
[WithInterval].
*/
package archive
