// Package account provides the read model of identity-store accounts used by the
// order lifecycle: who the caller is, what role they hold, whether they may act and,
// for delivery agents, whether they are free to take an order.
//
// The package includes:
//   - Account: identity, notification address, role, status and availability
//   - Role, Status, Availability: the stored enumerations
//
// Key business rules:
//   - Only ACTIVE accounts may perform any operation
//   - An agent is UNAVAILABLE exactly while it holds one non-terminal order
//   - Agent availability only moves through Claim and Release
package account
