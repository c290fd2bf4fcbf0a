// Package action defines the fixed catalog of actions the aggregation engine
// consumes and the Hub that routes them to listeners.
//
// There is one concrete type per action kind. Every type validates the parts
// it can check without looking at state (category and requirement membership,
// non-negative positions); checks that need the current state happen in the
// store.
//
// The package also decodes the JSON Lines form of an action stream:
//
//	{"type":"scanCompleted","payload":{"key":"issues","selectorMap":{},"scanResult":null}}
//	{"type":"existingTabUpdated"}
//
// Decoded payloads are checked with go-playground/validator before they are
// converted into actions.
package action
