// Package api serves the dashboard's read-only REST endpoints on top of
// the summary store and the alert engine.
package api
