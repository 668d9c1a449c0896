// Package sources resolves report file patterns into concrete paths and,
// in watch mode, re-triggers analysis when report files change on disk.
package sources
