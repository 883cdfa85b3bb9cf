package repository

import "context"

// TransactionManager executes fn within one storage transaction. The handle
// travels inside ctx (the Mongo driver binds the session to the callback
// context), so repository methods keep their plain signatures and work both
// inside and outside a transaction.
//
// The plan lifecycle uses this to make the Plan write and the user-mirror
// write one atomic boundary: a failure after either write rolls back both.
type TransactionManager interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}
