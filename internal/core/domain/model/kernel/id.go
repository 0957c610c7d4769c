package kernel

import (
	"strconv"

	"fooddelivery/internal/pkg/errs"
)

// ID is the integer identifier the store assigns to orders, accounts and products.
// Zero means "not persisted yet"; negative values are never valid.
//
// Example:
//
//	id, err := kernel.ParseID(c.Param("id"))
//	if err != nil {
//	    return err // *errs.ValueIsInvalidError
//	}
type ID int64

// NewID wraps a raw identifier, rejecting non-positive values.
func NewID(raw int64) (ID, error) {
	id := ID(raw)
	if err := id.Validate(); err != nil {
		return 0, err
	}
	return id, nil
}

// ParseID parses a decimal identifier, typically a path parameter.
func ParseID(s string) (ID, error) {
	raw, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	return NewID(raw)
}

// Validate reports whether the identifier refers to a persisted entity.
func (id ID) Validate() error {
	if id <= 0 {
		return errs.NewValueIsOutOfRangeError("id", int64(id), 1, "max int64")
	}
	return nil
}

// IsZero reports whether the identifier is unset.
func (id ID) IsZero() bool {
	return id == 0
}

// Int64 returns the raw identifier.
func (id ID) Int64() int64 {
	return int64(id)
}

func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}
