package memory

import (
	"context"
	"sync"
)

type txKey struct{}

// TxManager serializes transactional blocks with a single mutex.
// Writes are applied immediately and are not rolled back when fn fails.
type TxManager struct {
	mu sync.Mutex
}

// NewTxManager creates a TxManager
func NewTxManager() *TxManager {
	return &TxManager{}
}

// Do runs fn exclusively
func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

// DoSerializable runs fn exclusively
func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) run(ctx context.Context, fn func(ctx context.Context) error) error {
	// nested block joins the outer one
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(context.WithValue(ctx, txKey{}, struct{}{}))
}
