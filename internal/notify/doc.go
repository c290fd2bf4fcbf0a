// Package notify provides a synchronous "state changed" fan-out.
//
// Observers are plain callbacks with no payload: after being notified they
// read the current snapshot themselves. Notifications are never coalesced;
// every Notify call runs every observer exactly once.
package notify
