package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/terapiemd/booking-service/pkg/dbmetrics"
)

// DefaultSerializableRetries bounds retries of a serializable transaction after a serialization failure
const DefaultSerializableRetries = 3

// Postgres SQLSTATE codes that make a serializable transaction safe to retry
const (
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

var (
	// ErrBeginTx is returned when a transaction cannot be opened
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")

	// ErrCommitTx is returned when commit fails
	ErrCommitTx = errors.New("txmanager: failed to commit transaction")

	// ErrRetriesExhausted is returned when a serializable transaction kept conflicting
	ErrRetriesExhausted = errors.New("txmanager: serialization retries exhausted")
)

// TxBeginner opens instrumented transactions (implemented by *dbmetrics.DB)
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager runs functions inside database transactions.
// The transaction travels in the context; repositories reach it through dbmetrics.GetExecutor.
type TransactionManager struct {
	db      TxBeginner
	retries int
}

// NewTransactionManager creates a manager with DefaultSerializableRetries
func NewTransactionManager(db TxBeginner) *TransactionManager {
	return &TransactionManager{db: db, retries: DefaultSerializableRetries}
}

// Do runs fn in a read-committed transaction
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted}, fn)
}

// DoSerializable runs fn in a serializable transaction, retrying on serialization failures and deadlocks
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}

	var err error
	for attempt := 0; attempt <= m.retries; attempt++ {
		err = m.run(ctx, opts, fn)
		if err == nil || !IsRetryable(err) {
			return err
		}
	}
	return fmt.Errorf("%w: %v", ErrRetriesExhausted, err)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) (err error) {
	// nested call: reuse the outer transaction
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBeginTx, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		return err
	}

	if commitErr := tx.Commit(); commitErr != nil {
		if IsRetryable(commitErr) {
			return commitErr
		}
		return fmt.Errorf("%w: %v", ErrCommitTx, commitErr)
	}
	return nil
}

// IsRetryable reports whether err carries a serialization failure or deadlock SQLSTATE
func IsRetryable(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == codeSerializationFailure || string(pqErr.Code) == codeDeadlockDetected
	}
	return false
}
