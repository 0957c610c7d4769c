// Package services provides domain services for rules that involve more than a single
// aggregate's own state.
//
// The package includes:
//   - CancellationPolicy: who may cancel an order, in which status and within which time window
package services
