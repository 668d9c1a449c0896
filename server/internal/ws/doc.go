// Package ws pushes live dashboard state to connected WebSocket clients.
package ws
