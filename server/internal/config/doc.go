// Package config loads the dashboard server's YAML configuration.
package config
