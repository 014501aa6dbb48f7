/*
Package observability records what the workbench does.

It defines the events emitted around simulations and conversions, lifecycle
hooks to observe them, and a Prometheus-backed Metrics recorder that can be
served on /metrics.
*/
package observability
