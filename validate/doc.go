/*
Package validate implements the stateless syntax and TLD checks applied to
e-mail addresses, as well as the canonical domain and TLD extraction rules.

The domain of an address is always the lower-cased substring after its last
“@”; it is derived, never stored.
*/
package validate
