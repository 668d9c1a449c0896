// Package alerts evaluates threshold rules against incoming build
// summaries and delivers fire/resolve notifications to Slack, Teams or
// generic HTTP webhooks.
package alerts
