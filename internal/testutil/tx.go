package testutil

import (
	"context"
	"sync"
)

// Tx is a Transactor that runs fn directly and counts invocations.
type Tx struct {
	Calls int
}

// WithinTx calls fn with ctx unchanged.
func (t *Tx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.Calls++
	return fn(ctx)
}

// SerialTx runs one fn at a time, the way a row lock taken at the start of
// every transaction would.
type SerialTx struct {
	mu sync.Mutex
}

func (t *SerialTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(ctx)
}
