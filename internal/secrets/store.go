// Package secrets resolves named secrets from local files or AWS Secrets Manager.
package secrets

import (
	"context"
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("secret not found")

// Store provides a testable abstraction over secret backends.
type Store interface {
	Lookup(ctx context.Context, key string) (string, error)
}

// Chain tries each store in order. The first hit wins; ErrNotFound moves on to
// the next store and any other error stops the lookup.
type Chain []Store

func (c Chain) Lookup(ctx context.Context, key string) (string, error) {
	for _, store := range c {
		if store == nil {
			continue
		}
		value, err := store.Lookup(ctx, key)
		if err == nil {
			return value, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return "", fmt.Errorf("lookup %s: %w", key, err)
		}
	}
	return "", ErrNotFound
}
