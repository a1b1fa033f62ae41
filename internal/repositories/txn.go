package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// TxnRunner runs a function inside a single atomic write scope. The cascade
// cleanup uses it so the deletion set gathered for a scream is removed
// all-or-nothing.
type TxnRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// MongoTxnRunner implements TxnRunner on a Mongo client session
type MongoTxnRunner struct {
	client *mongo.Client
}

// NewMongoTxnRunner creates a new MongoTxnRunner
func NewMongoTxnRunner(client *mongo.Client) *MongoTxnRunner {
	return &MongoTxnRunner{client: client}
}

// WithTransaction executes fn within a session transaction
func (r *MongoTxnRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := r.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
