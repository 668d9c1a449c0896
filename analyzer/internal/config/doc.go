// Package config loads the analyzer's YAML configuration. Secrets are
// never stored in the file; the config names environment variables and
// resolves them at read time.
package config
