// Package access decides who may perform which order operation.
//
// The package includes:
//   - Caller: the authenticated account reduced to id, role and status
//   - Capability predicates: CanCreateOrder, CanEditOrder, CanAssignAgent,
//     CanVerifyDelivery and CanViewOrder, each returning *errs.ForbiddenError on refusal
//   - Actor: the capacity in which an order is cancelled (OwningCustomer or Admin)
//
// Inactive accounts are refused everything. Role is treated as an opaque capability;
// how it was authenticated is not this package's concern.
package access
