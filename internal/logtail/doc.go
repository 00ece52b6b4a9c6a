// Package logtail reads the tail of the zplpress log for the activity panel.
//
// Read extracts the last N lines with a ring buffer, so the log can grow
// without the TUI loading it whole. A missing file returns no lines and no
// error: a fresh install has not logged anything yet.
//
// Parse splits one console-encoded zap line into time, level, message and
// structured fields so the panel can colour it by level:
//
//	2026-10-18T09:12:44.120-03:00	info	labels/labels.go:151	print run started	{"run": "…", "labels": 12}
//
// Lines that do not follow this layout (JSON logs, stack traces) are shown
// as-is.
package logtail
