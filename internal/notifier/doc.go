// Package notifier provides notification channels for detected conference changes.
//
// The primary channel files a GitHub issue through the REST API. An optional Twitter
// channel posts a one-line announcement, and a dry-run channel prints the would-be
// issue instead of sending anything. Channels report failures as errors; the caller
// decides that they are never fatal to a run.
package notifier
