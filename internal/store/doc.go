// Package store implements the scan result aggregator: the single owner and
// sole writer of the canonical ScanResultData.
//
// A Store binds one handler per action kind. Each accepted action is applied
// completely under the store's write lock, the lock is released, and then
// every observer is notified exactly once. Observers read the new state with
// State, which returns a deep copy, so a snapshot never changes after it has
// been handed out.
//
// Actions are applied one at a time by a single draining goroutine. An action
// dispatched while another one is in progress is queued and applied after
// the current notification round finishes. This covers both observers that
// dispatch from inside their callback and producers on other goroutines, and
// it means no observer ever sees a half-applied transition.
//
// Contract violations (unknown category or requirement, instance positions
// out of range) reject the action: nothing is mutated and nobody is notified.
package store
