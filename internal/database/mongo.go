// Package database manages the MongoDB connection lifecycle: connect with
// timeouts at process start, ping to verify, disconnect on shutdown. The
// client is injected into repositories rather than accessed as a global.
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo wraps the driver client and the selected database.
type Mongo struct {
	client *mongo.Client
	DB     *mongo.Database
}

// Connect establishes a MongoDB connection and verifies it with a ping.
func Connect(ctx context.Context, uri, database string) (*Mongo, error) {
	clientOpts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(100)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return &Mongo{
		client: client,
		DB:     client.Database(database),
	}, nil
}

// Ping verifies the connection is still alive.
func (m *Mongo) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, nil)
}

// Close disconnects the client.
func (m *Mongo) Close(ctx context.Context) error {
	if err := m.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from MongoDB: %w", err)
	}
	return nil
}
