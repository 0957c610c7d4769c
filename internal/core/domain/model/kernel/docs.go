// Package kernel provides the domain primitives shared by the order, account and catalog models.
//
// The package includes:
//   - ID: the integer identifier assigned by the store
//   - Money: a non-negative decimal amount with two fractional digits
//   - OTP: the six digit delivery code, generated from crypto/rand and compared in constant time
//   - Clock: the source of server time for timestamps and the cancellation window
//
// All primitives are immutable values and safe for concurrent use.
package kernel
