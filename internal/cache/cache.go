package cache

import (
	"context"
	"errors"

	"laptopstore/internal/models"
)

var (
	// ErrCacheMiss is returned by Get when no cart is cached for the user.
	ErrCacheMiss = errors.New("cache miss")
	// ErrStale is returned by Set when the cart was invalidated after the
	// caller read its version. Nothing is written in that case.
	ErrStale = errors.New("cache version changed")
)

// CartCache stores the cart listing of a user between mutations.
//
// A fill must read Version before loading the cart from the database and
// pass it to Set, so that an invalidation in between is never overwritten
// by the older snapshot.
type CartCache interface {
	Get(ctx context.Context, userID string) ([]models.CartEntry, error)
	Version(ctx context.Context, userID string) (int64, error)
	Set(ctx context.Context, userID string, version int64, entries []models.CartEntry) error
	Delete(ctx context.Context, userID string) error
}

// NoopCache never stores anything. It is used when Redis is not configured.
type NoopCache struct{}

func (NoopCache) Get(context.Context, string) ([]models.CartEntry, error) {
	return nil, ErrCacheMiss
}

func (NoopCache) Version(context.Context, string) (int64, error) { return 0, nil }

func (NoopCache) Set(context.Context, string, int64, []models.CartEntry) error { return nil }

func (NoopCache) Delete(context.Context, string) error { return nil }
