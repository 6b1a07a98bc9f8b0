// Package storage provides the local storage key space the app persists to.
package storage

import (
	"context"
)

// Keys under which the app keeps its state. Values are JSON documents and
// each key is always overwritten as a whole.
const (
	// SessionKey holds {"email": string} while someone is logged in.
	SessionKey = "ticketapp_session"
	// UsersKey holds the ordered list of registered credentials.
	UsersKey = "ticketapp_users"
	// TicketsKey holds the ordered list of tickets.
	TicketsKey = "ticketapp_tickets"
)

// AppKeys lists every key the app owns.
var AppKeys = []string{SessionKey, UsersKey, TicketsKey}

// Store defines a string key/value space modelled on the browser Web Storage
// API. This abstraction allows swapping storage backends (SQLite file,
// in-memory) without changing the stores built on top.
//
// There is no cross-process coordination: the last write wins.
type Store interface {
	// GetItem returns the value for key. ok is false if the key is absent.
	GetItem(ctx context.Context, key string) (value string, ok bool, err error)

	// SetItem stores value under key, replacing any previous value.
	SetItem(ctx context.Context, key, value string) error

	// RemoveItem deletes key. Removing an absent key is not an error.
	RemoveItem(ctx context.Context, key string) error

	// Keys returns all keys in sorted order.
	Keys(ctx context.Context) ([]string, error)

	// Clear removes every key.
	Clear(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}
