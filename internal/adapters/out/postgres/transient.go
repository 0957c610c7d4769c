package postgres

import (
	"database/sql/driver"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes worth retrying.
const (
	serializationFailure = "40001"
	deadlockDetected     = "40P01"
)

// IsTransient reports whether err is a serialization failure, a deadlock or a broken
// connection. Such transactions may succeed when run again from the start.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case serializationFailure, deadlockDetected:
			return true
		}
		return false
	}

	return errors.Is(err, driver.ErrBadConn)
}
