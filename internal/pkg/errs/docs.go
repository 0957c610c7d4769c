// Package errs provides the error taxonomy of the food-delivery service.
//
// Input errors:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: malformed or empty input.
//     All of them also match ErrValidation.
//   - ObjectNotFoundError: a referenced order, product or agent does not exist.
//
// Lifecycle errors:
//   - ForbiddenError: the caller lacks the role or ownership the operation needs
//   - StateError: the operation is not valid for the current order status
//   - WindowExpiredError: a customer cancellation after the cancellation window
//   - ConflictError: an agent or order is already claimed
//   - PreconditionError: a referenced agent exists but cannot be used
//   - InvalidOTPError: the delivery code does not authorise the transition
//   - RateLimitedError: too many delivery code attempts
//
// Each type follows the same pattern: a sentinel error variable, a struct with the details,
// a constructor, Error() for formatting and Unwrap() returning the sentinel, so callers
// classify with errors.Is and inspect details with errors.As. None of these errors are
// transient; they are surfaced to the caller and never retried.
package errs
