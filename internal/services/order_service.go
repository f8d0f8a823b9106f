package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"laptopstore/internal/apperrors"
	"laptopstore/internal/cache"
	"laptopstore/internal/models"
	"laptopstore/internal/repositories"
	"laptopstore/pkg/rabbitmq"

	"github.com/shopspring/decimal"
)

// OrderEventPublisher announces committed orders.
type OrderEventPublisher interface {
	PublishOrderCreated(ctx context.Context, event rabbitmq.OrderCreatedEvent) error
}

// OrderService handles business logic for checkout and order history.
type OrderService struct {
	store     repositories.Store
	cache     cache.CartCache
	publisher OrderEventPublisher
}

// NewOrderService creates a new OrderService. The cache and publisher may
// be nil.
func NewOrderService(store repositories.Store, cartCache cache.CartCache, publisher OrderEventPublisher) *OrderService {
	if cartCache == nil {
		cartCache = cache.NoopCache{}
	}
	return &OrderService{store: store, cache: cartCache, publisher: publisher}
}

// Checkout converts the whole cart of userID into a pending order. The order,
// its lines and the removal of the consumed cart entries commit together or
// not at all.
func (s *OrderService) Checkout(ctx context.Context, userID string) (*models.Order, error) {
	var order *models.Order
	err := s.store.WithinTx(ctx, func(r repositories.Repos) error {
		// concurrent checkouts and cart writes of this user queue here
		if err := r.Users().LockByID(ctx, userID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return apperrors.ErrUserNotFound
			}
			return apperrors.Server("checkout failed", err)
		}

		entries, err := r.Carts().ListByUser(ctx, userID)
		if err != nil {
			return apperrors.Server("checkout failed", err)
		}
		if len(entries) == 0 {
			return apperrors.ErrEmptyCart
		}

		itemIDs := make([]string, 0, len(entries))
		entryIDs := make([]string, 0, len(entries))
		for _, e := range entries {
			itemIDs = append(itemIDs, e.ItemID)
			entryIDs = append(entryIDs, e.ID)
		}
		items, err := r.Items().GetByIDs(ctx, itemIDs)
		if err != nil {
			return apperrors.Server("checkout failed", err)
		}

		lines, total, err := priceLines(entries, items)
		if err != nil {
			return err
		}

		o := &models.Order{
			UserID:     userID,
			TotalPrice: total,
			Status:     models.OrderStatusPending,
		}
		if err := r.Orders().Create(ctx, o); err != nil {
			return apperrors.Server("checkout failed", err)
		}
		for i := range lines {
			lines[i].OrderID = o.ID
		}
		if err := r.Orders().CreateLines(ctx, lines); err != nil {
			return apperrors.Server("checkout failed", err)
		}

		deleted, err := r.Carts().DeleteByIDs(ctx, userID, entryIDs)
		if err != nil {
			return apperrors.Server("checkout failed", err)
		}
		if deleted != int64(len(entryIDs)) {
			return apperrors.Wrap(apperrors.ErrCheckoutRace,
				fmt.Errorf("deleted %d of %d cart entries", deleted, len(entryIDs)))
		}

		o.Lines = lines
		order = o
		return nil
	})
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindServer {
			log.Printf("Checkout failed for user %s: %v", userID, err)
		}
		return nil, classify(err, "checkout failed")
	}

	if err := s.cache.Delete(ctx, userID); err != nil {
		log.Printf("Cart cache invalidation failed for user %s: %v", userID, err)
	}
	s.publishCreated(ctx, order)
	return order, nil
}

// priceLines snapshots the current price of every cart entry.
func priceLines(entries []models.CartEntry, items map[string]models.Item) ([]models.OrderLine, decimal.Decimal, error) {
	total := decimal.Zero
	lines := make([]models.OrderLine, 0, len(entries))
	for i, e := range entries {
		item, ok := items[e.ItemID]
		if !ok {
			return nil, decimal.Zero, apperrors.Wrap(apperrors.ErrCartItemMissing, fmt.Errorf("item %s", e.ItemID))
		}
		if e.Quantity < 1 {
			return nil, decimal.Zero, apperrors.ErrInvalidQuantity
		}

		price := item.Price.Mul(decimal.NewFromInt(int64(e.Quantity)))
		lines = append(lines, models.OrderLine{
			Position:  i,
			ItemID:    e.ItemID,
			Quantity:  e.Quantity,
			UnitPrice: item.Price,
			Price:     price,
		})
		total = total.Add(price)
	}
	return lines, total, nil
}

func (s *OrderService) publishCreated(ctx context.Context, order *models.Order) {
	if s.publisher == nil {
		return
	}
	event := rabbitmq.OrderCreatedEvent{
		OrderID:    order.ID,
		UserID:     order.UserID,
		Status:     string(order.Status),
		TotalPrice: order.TotalPrice.StringFixed(2),
		LineCount:  len(order.Lines),
		CreatedAt:  order.CreatedAt,
	}
	if err := s.publisher.PublishOrderCreated(ctx, event); err != nil {
		// the order is committed; a lost notification does not undo it
		log.Printf("Failed to publish order.created for order %s: %v", order.ID, err)
	}
}

// GetOrdersByUser lists the orders of userID, newest first.
func (s *OrderService) GetOrdersByUser(ctx context.Context, userID string) ([]models.Order, error) {
	orders, err := s.store.Orders().ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Server("could not list orders", err)
	}
	return orders, nil
}

// GetOrderByID returns an order owned by userID.
func (s *OrderService) GetOrderByID(ctx context.Context, userID, orderID string) (*models.Order, error) {
	order, err := s.store.Orders().GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrOrderNotFound
		}
		return nil, apperrors.Server("could not load order", err)
	}
	if order.UserID != userID {
		return nil, apperrors.ErrOrderForbidden
	}
	return order, nil
}
