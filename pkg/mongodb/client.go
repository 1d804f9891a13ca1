package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Client wraps the MongoDB client with an explicit open/close lifecycle:
// connected once at process start, disconnected at shutdown.
type Client struct {
	client *mongo.Client
}

// NewClient connects and verifies the connection with a ping
func NewClient(uri string) (*Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	return &Client{client: client}, nil
}

// Raw returns the underlying driver client, needed for session transactions
func (c *Client) Raw() *mongo.Client {
	return c.client
}

// Database returns a database handle
func (c *Client) Database(name string) *mongo.Database {
	return c.client.Database(name)
}

// Disconnect disconnects from MongoDB
func (c *Client) Disconnect(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}
