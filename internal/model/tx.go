package model

import "context"

// Transactor runs fn inside a database transaction carried by ctx. Stores
// called with that ctx join the transaction. Nested calls reuse the outer one.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
