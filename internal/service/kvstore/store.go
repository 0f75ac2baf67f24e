// Package kvstore adapts device-style key-value persistence onto server-side
// backends. Every installation gets its own keyspace.
package kvstore

import (
	"context"
	"errors"
)

// ErrEmptyInstallation is returned when a store is opened without an installation ID.
var ErrEmptyInstallation = errors.New("installation id is required")

// Store is a string-keyed, string-valued store. Each call is independent and
// may fail on its own.
type Store interface {
	// Get returns the stored value. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	// Remove deletes key. Removing an absent key succeeds.
	Remove(ctx context.Context, key string) error
}

// Provider hands out the Store for one installation.
type Provider interface {
	Store(installationID string) Store
}

// errStore fails every operation with err.
type errStore struct{ err error }

func (s errStore) Get(context.Context, string) (string, bool, error) { return "", false, s.err }
func (s errStore) Set(context.Context, string, string) error         { return s.err }
func (s errStore) Remove(context.Context, string) error              { return s.err }
