// Package notifications delivers songbook events via pluggable notifiers.
//
// The default implementation publishes to ntfy using the topic configured in
// config.toml and gracefully degrades to a no-op when no topic is set. The
// process and watch commands publish completion and failure summaries through
// prebuilt Notification constructors so messages stay consistent without
// duplicating HTTP glue; per-category toggles in [notifications] suppress the
// ones the user does not want.
//
// Extend this package if you need alternative transports; callers depend only
// on the simple Service interface.
package notifications
