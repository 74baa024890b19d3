package testutil

import (
	"os"
	"strings"
	"testing"
)

// Env points the suite at a running API and the database behind it.
type Env struct {
	BaseURL  string
	MongoURI string
	Database string
}

// LoadEnv reads TEST_BASE_URL, TEST_MONGO_URI and TEST_MONGO_DATABASE.
func LoadEnv() Env {
	return Env{
		BaseURL:  strings.TrimRight(lookup("TEST_BASE_URL", "http://localhost:8080"), "/"),
		MongoURI: lookup("TEST_MONGO_URI", "mongodb://localhost:27017"),
		Database: lookup("TEST_MONGO_DATABASE", "postaladdr_test"),
	}
}

func lookup(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Suite bundles the API client and the address store for one test.
type Suite struct {
	API   *API
	Store *Store
}

// Start waits for the API to report ready, empties the Addresses
// collection and registers cleanup on t.
func Start(t *testing.T) *Suite {
	t.Helper()
	env := LoadEnv()

	store := OpenStore(t, env.MongoURI, env.Database)
	api := NewAPI(env.BaseURL)
	api.WaitReady(t)

	store.Reset(t)
	t.Cleanup(func() {
		store.Reset(t)
		store.Close()
	})

	return &Suite{API: api, Store: store}
}
