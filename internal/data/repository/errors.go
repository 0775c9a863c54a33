package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrDuplicateEmail    = errors.New("email already in use")
	ErrQuantityLimit     = errors.New("item quantity limit exceeded")
)

// MaxItemQuantity caps a single cart line.
const MaxItemQuantity = 999

// StorageError wraps a driver error with the operation that failed.
type StorageError struct {
	Op        string
	Err       error
	retryable bool
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func (e *StorageError) Retryable() bool {
	return e.retryable
}

func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	retryable := errors.Is(err, context.DeadlineExceeded)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.SerializationFailure,
			pgerrcode.DeadlockDetected,
			pgerrcode.LockNotAvailable,
			pgerrcode.QueryCanceled:
			retryable = true
		}
	}

	return &StorageError{Op: op, Err: err, retryable: retryable}
}

// uniqueViolation returns the violated constraint name, or "" for other errors.
func uniqueViolation(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return pgErr.ConstraintName
	}
	return ""
}
