// Package receiver accepts build summaries published by the analyzer and
// routes them into the store and the alert engine.
package receiver
