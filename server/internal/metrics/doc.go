// Package metrics exposes per-build gauges in the Prometheus text
// exposition format.
package metrics
