/*
Package metrics defines the Prometheus collectors of maildig.
*/
package metrics
