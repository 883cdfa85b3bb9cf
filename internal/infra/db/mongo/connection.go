package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"realestate-marketplace/internal/config"
)

// NewDatabase connects to the document store and returns a handle to the
// configured database. Connection attempts are retried so the service can
// start before the store during container bring-up.
func NewDatabase(ctx context.Context, cfg *config.DatabaseConfig) (*mongo.Database, error) {
	var lastErr error
	for i := 0; i < cfg.RetryAttempts; i++ {
		client, err := mongo.Connect(
			options.Client().
				ApplyURI(cfg.URL).
				SetConnectTimeout(cfg.ConnectTimeout).
				SetMaxPoolSize(cfg.MaxPoolSize).
				SetRetryWrites(true).
				SetRetryReads(true),
		)
		if err == nil {
			if err = client.Ping(ctx, nil); err == nil {
				return client.Database(cfg.Name), nil
			}
			_ = client.Disconnect(ctx)
		}
		lastErr = err
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(cfg.RetryInterval):
		}
	}
	return nil, fmt.Errorf("connect mongo: %w", lastErr)
}

// EnsureIndexes creates the indexes the repositories rely on. The unique
// index on the gateway payment id is the purchase idempotency boundary and
// must exist before the service takes traffic.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := ensurePlanIndexes(ctx, db.Collection(plansCollection)); err != nil {
		return err
	}
	if err := ensureUserIndexes(ctx, db.Collection(usersCollection)); err != nil {
		return err
	}
	return ensurePropertyIndexes(ctx, db.Collection(propertiesCollection))
}
