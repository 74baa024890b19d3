package testutil

import (
	"context"
	"testing"
	"time"

	"postaladdr/internal/addresses/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store gives tests direct access to the Addresses collection.
type Store struct {
	client    *mongo.Client
	addresses *mongo.Collection
}

func OpenStore(t *testing.T, uri, database string) *Store {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("connect %s: %v", uri, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		t.Fatalf("ping %s: %v", uri, err)
	}
	return &Store{client: client, addresses: client.Database(database).Collection(repository.CollectionName)}
}

// Reset deletes every address but keeps the collection, so the validator
// and indexes created by the migrations stay in place.
func (s *Store) Reset(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := s.addresses.DeleteMany(ctx, bson.M{}); err != nil {
		t.Fatalf("reset addresses: %v", err)
	}
}

// Count returns how many stored addresses match filter; nil counts all.
func (s *Store) Count(t *testing.T, filter bson.M) int64 {
	t.Helper()
	if filter == nil {
		filter = bson.M{}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	n, err := s.addresses.CountDocuments(ctx, filter)
	if err != nil {
		t.Fatalf("count addresses: %v", err)
	}
	return n
}

func (s *Store) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = s.client.Disconnect(ctx)
}
