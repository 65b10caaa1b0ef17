package database

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

const defaultMongoDatabase = "portfolio"

// ConnectMongo connects to MongoDB and verifies the primary is reachable within ctx.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, *mongo.Database, error) {
	if uri == "" {
		return nil, nil, fmt.Errorf("mongo uri must not be empty")
	}

	name, err := MongoDatabaseName(uri)
	if err != nil {
		return nil, nil, err
	}

	opts := options.Client().ApplyURI(uri)
	if deadline, ok := ctx.Deadline(); ok {
		opts.SetServerSelectionTimeout(timeUntil(deadline))
	}

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to configure mongo client: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("unable to connect to mongo: %w", err)
	}

	return client, client.Database(name), nil
}

// MongoDatabaseName extracts the database name from a connection string,
// falling back to "portfolio" when the path is empty.
func MongoDatabaseName(uri string) (string, error) {
	parsed, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("failed to parse mongo uri: %w", err)
	}

	name := strings.Trim(parsed.Path, "/")
	if name == "" {
		return defaultMongoDatabase, nil
	}
	return name, nil
}
