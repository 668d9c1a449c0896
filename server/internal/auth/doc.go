// Package auth provides API-key authentication for the server's HTTP
// surfaces.
package auth
