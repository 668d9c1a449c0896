// Package store holds the most recent build summary per key in memory,
// with TTL-based eviction for builds that stop publishing.
package store
