// Package replay feeds recorded action streams through a fresh store and
// collects the resulting state.
//
// A stream is a JSON Lines file of action envelopes, as produced by a scan
// session. Every stream is replayed into its own store bound to its own
// hub, so streams never share state. BatchProcessor replays many streams
// concurrently with a bounded number of goroutines.
package replay
