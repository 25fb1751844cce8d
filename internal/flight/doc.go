// Package flight owns the resolver role: translate destination names through
// the mapper, then visit every destination in order, aggregating responses
// into a report. Resolution failures abort the run; per-destination failures
// are recorded and skipped.
package flight
