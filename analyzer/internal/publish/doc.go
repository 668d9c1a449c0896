// Package publish delivers build health summaries to their sinks: a Jira
// issue entity property and, optionally, the buildhealth dashboard server.
package publish
