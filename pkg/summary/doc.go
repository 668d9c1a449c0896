// Package summary defines the build-health payload shared between the
// analyzer (which produces it) and the dashboard server (which receives,
// stores and re-serves it). It is intentionally free of behaviour — just the
// wire types and their JSON contract.
package summary
