package services

import (
	"context"
	"errors"
	"log"

	"laptopstore/internal/apperrors"
	"laptopstore/internal/cache"
	"laptopstore/internal/models"
	"laptopstore/internal/repositories"
)

// CartService handles business logic for shopping carts.
type CartService struct {
	store repositories.Store
	cache cache.CartCache
}

// NewCartService creates a new CartService. A nil cache disables caching.
func NewCartService(store repositories.Store, cartCache cache.CartCache) *CartService {
	if cartCache == nil {
		cartCache = cache.NoopCache{}
	}
	return &CartService{store: store, cache: cartCache}
}

// AddItem puts quantity of itemID into the cart of userID. Adding an item
// already in the cart increases its quantity. The returned flag is true when
// a new entry was created.
func (s *CartService) AddItem(ctx context.Context, userID, itemID string, quantity int) (*models.CartEntry, bool, error) {
	if quantity < 1 {
		return nil, false, apperrors.ErrInvalidQuantity
	}

	var (
		entry   *models.CartEntry
		created bool
	)
	err := s.store.WithinTx(ctx, func(r repositories.Repos) error {
		if err := r.Users().LockByID(ctx, userID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return apperrors.ErrUserNotFound
			}
			return apperrors.Server("could not add to cart", err)
		}

		if _, err := r.Items().GetByID(ctx, itemID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return apperrors.ErrItemNotFound
			}
			return apperrors.Server("could not add to cart", err)
		}

		existing, err := r.Carts().GetByUserAndItem(ctx, userID, itemID)
		switch {
		case err == nil:
			existing.Quantity += quantity
			if err := r.Carts().UpdateQuantity(ctx, existing.ID, existing.Quantity); err != nil {
				return apperrors.Server("could not add to cart", err)
			}
			entry = existing
			return nil
		case !errors.Is(err, repositories.ErrNotFound):
			return apperrors.Server("could not add to cart", err)
		}

		entry = &models.CartEntry{UserID: userID, ItemID: itemID, Quantity: quantity}
		if err := r.Carts().Create(ctx, entry); err != nil {
			return apperrors.Server("could not add to cart", err)
		}
		created = true
		return nil
	})
	if err != nil {
		return nil, false, classify(err, "could not add to cart")
	}

	s.invalidate(ctx, userID)
	return entry, created, nil
}

// GetCart lists the entries in the cart of userID.
func (s *CartService) GetCart(ctx context.Context, userID string) ([]models.CartEntry, error) {
	entries, err := s.cache.Get(ctx, userID)
	if err == nil {
		return entries, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		log.Printf("Cart cache read failed for user %s: %v", userID, err)
	}

	// the version is read before the database so a concurrent
	// invalidation makes the fill below a no-op
	version, versionErr := s.cache.Version(ctx, userID)
	if versionErr != nil {
		log.Printf("Cart cache version read failed for user %s: %v", userID, versionErr)
	}

	entries, err = s.store.Carts().ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Server("could not load cart", err)
	}
	if versionErr == nil {
		if err := s.cache.Set(ctx, userID, version, entries); err != nil && !errors.Is(err, cache.ErrStale) {
			log.Printf("Cart cache write failed for user %s: %v", userID, err)
		}
	}
	return entries, nil
}

// RemoveItem deletes the entry of itemID from the cart of userID.
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID string) error {
	n, err := s.store.Carts().DeleteByUserAndItem(ctx, userID, itemID)
	if err != nil {
		return apperrors.Server("could not remove cart item", err)
	}
	if n == 0 {
		return apperrors.ErrCartEntryNotFound
	}
	s.invalidate(ctx, userID)
	return nil
}

// ClearCart deletes every entry in the cart of userID. Clearing an empty
// cart is not an error.
func (s *CartService) ClearCart(ctx context.Context, userID string) error {
	if _, err := s.store.Carts().DeleteByUser(ctx, userID); err != nil {
		return apperrors.Server("could not clear cart", err)
	}
	s.invalidate(ctx, userID)
	return nil
}

func (s *CartService) invalidate(ctx context.Context, userID string) {
	if err := s.cache.Delete(ctx, userID); err != nil {
		log.Printf("Cart cache invalidation failed for user %s: %v", userID, err)
	}
}

// classify keeps classified errors and wraps anything else (e.g. a failed
// commit) as a server error.
func classify(err error, msg string) error {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return err
	}
	return apperrors.Server(msg, err)
}
