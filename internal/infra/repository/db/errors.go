package db

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrProductNotFound 商品不存在
	ErrProductNotFound = errors.New("product not found")
	// ErrInsufficientStock 庫存不足
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrInvalidAmount amount/quantity 必須為正數
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrTransientLockConflict 鎖競爭失敗，呼叫端可重試
	ErrTransientLockConflict = errors.New("transient lock conflict")

	ErrUserNotFound     = errors.New("user not found")
	ErrDuplicateUser    = errors.New("username or email already exists")
	ErrCategoryNotFound = errors.New("category not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrEmptyOrder       = errors.New("order has no items")
)

// postgres SQLSTATEs raised when row locking cannot make progress.
const (
	sqlstateSerializationFailure = "40001"
	sqlstateDeadlockDetected     = "40P01"
	sqlstateLockNotAvailable     = "55P03"
	sqlstateUniqueViolation      = "23505"
)

// translateLockErr maps lock-contention failures onto the one retryable
// error class; everything else passes through untouched.
func translateLockErr(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case sqlstateSerializationFailure, sqlstateDeadlockDetected, sqlstateLockNotAvailable:
			return ErrTransientLockConflict
		}
	}
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == sqlstateUniqueViolation
}
