// Package metadata is the client's durable key/value storage. It survives
// restarts and currently holds the token issued on registration.
package metadata

import (
	"context"
	"time"
)

// Item describes a stored key without exposing its value.
type Item struct {
	Key       string
	Size      int
	UpdatedAt time.Time
}

// Repository is a string-keyed byte store. Get returns (nil, nil) for a
// missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// List returns every key ordered by name.
	List(ctx context.Context) ([]Item, error)
	Clear(ctx context.Context) error
}
