package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// StorageError wraps connectivity, query, or commit failures. It is logged
// once where detected and surfaced unchanged; the core never retries.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("storage: %s: %v", e.Op, e.Err) }
func (e *StorageError) Unwrap() error { return e.Err }

// TimeoutError marks an operation that exceeded its caller-configured
// deadline. It is distinct from StorageError so callers may choose to retry.
type TimeoutError struct {
	Op  string
	Err error
}

func (e *TimeoutError) Error() string { return fmt.Sprintf("storage: %s: timeout: %v", e.Op, e.Err) }
func (e *TimeoutError) Unwrap() error { return e.Err }

// ClassifyStorageErr maps a raw storage error into the core taxonomy. A nil
// error stays nil. Deadline and cancellation errors become TimeoutError;
// everything else becomes StorageError.
func ClassifyStorageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &TimeoutError{Op: op, Err: err}
	}
	return &StorageError{Op: op, Err: err}
}

// IsTimeout reports whether err is (or wraps) a TimeoutError.
func IsTimeout(err error) bool {
	var te *TimeoutError
	return errors.As(err, &te)
}

// IsStorageFailure reports whether err is (or wraps) a StorageError.
func IsStorageFailure(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

// IsConstraintViolation reports whether err stems from an integrity
// constraint rejection. Postgres signals SQLSTATE class 23; the sqlite driver
// used in tests only exposes message text.
func IsConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, "23")
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "FOREIGN KEY constraint failed") ||
		strings.Contains(msg, "CHECK constraint failed")
}
