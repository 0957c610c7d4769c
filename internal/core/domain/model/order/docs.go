// Package order provides the Order aggregate and its lifecycle state machine.
//
// The package includes:
//   - Order: the aggregate root owning lines, total, delivery code and status
//   - Line: a product entry with the unit price captured from the catalog
//   - Status: the state machine pending -> assigned -> delivered, with cancelled
//     reachable from pending or assigned
//   - PaymentMode: how the order is paid (cash on delivery)
//
// Key business rules:
//   - Orders always have at least one line and a total equal to the sum of line totals
//   - Lines can only be replaced while the order is pending
//   - Assigning an agent requires a pending order without an agent and moves it to assigned
//   - Only the assigned agent can confirm delivery, once, with the exact delivery code
//   - Cancelled and delivered are terminal; cancelling twice is an error
//
// Who may perform an operation is decided outside the aggregate (package access and
// services.CancellationPolicy); the aggregate enforces the state rules.
package order
