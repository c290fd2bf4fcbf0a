// Package model defines the data structures shared by the aggregation engine.
//
// This package contains the following main types:
//   - ScanResultData: the canonical state snapshot observers read
//   - CategoryResult: per-category scan payload, element results and rule index
//   - TabStopState: accumulated tab stops and the five review requirements
//   - Summary: a condensed digest used by report writers
//
// Category and RequirementID are closed enumerations. Lookups that receive a
// value outside the known set fail with ErrUnknownCategory or
// ErrUnknownRequirement instead of creating new entries.
//
// The types serialize to JSON using the wire names of the action stream.
package model
