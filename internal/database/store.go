package database

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"gorm.io/gorm"
)

// Driver identifies the backing store implementation.
type Driver string

const (
	DriverMongo    Driver = "mongo"
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
)

// Store is an open connection to whichever backing store the URL selected.
// Exactly one of SQL and Mongo is set.
type Store struct {
	Driver Driver
	SQL    *gorm.DB
	Mongo  *mongo.Database

	mongoClient *mongo.Client
}

// DetectDriver maps a connection URL onto a store driver by scheme.
func DetectDriver(rawURL string) (Driver, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return "", fmt.Errorf("database url must not be empty")
	}
	if strings.HasPrefix(trimmed, "file:") {
		return DriverSQLite, nil
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("failed to parse database url: %w", err)
	}

	switch strings.ToLower(parsed.Scheme) {
	case "mongodb", "mongodb+srv":
		return DriverMongo, nil
	case "postgres", "postgresql":
		return DriverPostgres, nil
	case "sqlite", "sqlite3":
		return DriverSQLite, nil
	default:
		return "", fmt.Errorf("unsupported database scheme %q", parsed.Scheme)
	}
}

// OpenStore connects to the store named by rawURL.
func OpenStore(ctx context.Context, rawURL string) (*Store, error) {
	driver, err := DetectDriver(rawURL)
	if err != nil {
		return nil, err
	}

	switch driver {
	case DriverMongo:
		client, db, err := ConnectMongo(ctx, rawURL)
		if err != nil {
			return nil, err
		}
		return &Store{Driver: driver, Mongo: db, mongoClient: client}, nil
	case DriverPostgres:
		db, err := ConnectPostgres(ctx, rawURL)
		if err != nil {
			return nil, err
		}
		return &Store{Driver: driver, SQL: db}, nil
	default:
		db, err := ConnectSQLite(ctx, sqlitePath(rawURL))
		if err != nil {
			return nil, err
		}
		return &Store{Driver: driver, SQL: db}, nil
	}
}

// Close releases the underlying connection.
func (s *Store) Close(ctx context.Context) error {
	if s == nil {
		return nil
	}
	if s.mongoClient != nil {
		return s.mongoClient.Disconnect(ctx)
	}
	if s.SQL != nil {
		sqlDB, err := s.SQL.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}

func sqlitePath(rawURL string) string {
	trimmed := strings.TrimSpace(rawURL)
	for _, prefix := range []string{"sqlite3://", "sqlite://"} {
		if strings.HasPrefix(trimmed, prefix) {
			return strings.TrimPrefix(trimmed, prefix)
		}
	}
	return trimmed
}

func timeUntil(deadline time.Time) time.Duration {
	remaining := time.Until(deadline)
	if remaining < time.Millisecond {
		return time.Millisecond
	}
	return remaining
}
