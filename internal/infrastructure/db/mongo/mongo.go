// Package mongo backs the mock REST API with MongoDB, one collection per
// resource.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	defaultTimeout = 10 * time.Second
	appName        = "schoolhub-mockapi"
)

// Config captures the settings needed to reach the database.
type Config struct {
	URI      string
	Database string
	// Timeout bounds connect and ping. Defaults to ten seconds.
	Timeout time.Duration
}

// Connect returns the client and the selected database once a ping succeeds.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName(appName).
		SetServerSelectionTimeout(timeout)
	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}

// lookupFields are the fields the dashboard filters or searches by exact
// value: class on people and email on users.
var lookupFields = map[string][]string{
	"Teacher": {"className"},
	"Student": {"className"},
	"users":   {"email"},
}

// EnsureIndexes creates the lookup indexes of the given resources. It is
// idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database, resources []string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	for _, resource := range resources {
		fields := lookupFields[resource]
		if len(fields) == 0 {
			continue
		}
		models := make([]mongo.IndexModel, 0, len(fields))
		for _, f := range fields {
			models = append(models, mongo.IndexModel{Keys: bson.D{{Key: f, Value: 1}}})
		}
		if _, err := db.Collection(resource).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create %s indexes: %w", resource, err)
		}
	}
	return nil
}
