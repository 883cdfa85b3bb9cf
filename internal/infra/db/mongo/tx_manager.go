package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"realestate-marketplace/internal/domain/ports/repository"
)

var _ repository.TransactionManager = (*TxManager)(nil)

// TxManager runs a function inside one Mongo session transaction. The driver
// binds the session to the callback context, so repositories keep their
// plain signatures and transparently join the transaction.
type TxManager struct {
	client *mongo.Client
}

func NewTxManager(db *mongo.Database) *TxManager {
	return &TxManager{client: db.Client()}
}

func (tm *TxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	sess, err := tm.client.StartSession()
	if err != nil {
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(ctx context.Context) (interface{}, error) {
		return nil, fn(ctx)
	})
	return err
}
