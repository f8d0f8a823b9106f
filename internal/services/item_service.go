package services

import (
	"context"
	"errors"

	"laptopstore/internal/apperrors"
	"laptopstore/internal/models"
	"laptopstore/internal/repositories"
)

// Page is a caller-supplied window into a listing. A nil Limit selects the
// default page size.
type Page struct {
	Skip  int
	Limit *int
}

// ItemService handles business logic for catalog items.
type ItemService struct {
	itemRepo     repositories.ItemRepository
	categoryRepo repositories.CategoryRepository
	defaultLimit int
	maxLimit     int
}

// NewItemService creates a new ItemService. Listings return defaultLimit
// items unless asked otherwise and never more than maxLimit.
func NewItemService(itemRepo repositories.ItemRepository, categoryRepo repositories.CategoryRepository, defaultLimit, maxLimit int) *ItemService {
	return &ItemService{
		itemRepo:     itemRepo,
		categoryRepo: categoryRepo,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}
}

// ListItems retrieves a page of items, optionally restricted to a category.
func (s *ItemService) ListItems(ctx context.Context, categoryID string, page Page) ([]models.Item, error) {
	limit := s.defaultLimit
	if page.Limit != nil {
		limit = *page.Limit
	}
	if page.Skip < 0 || limit < 0 {
		return nil, apperrors.ErrInvalidPagination
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}
	if limit == 0 {
		return []models.Item{}, nil
	}

	items, err := s.itemRepo.List(ctx, repositories.ItemFilter{
		CategoryID: categoryID,
		Skip:       page.Skip,
		Limit:      limit,
	})
	if err != nil {
		return nil, apperrors.Server("could not list items", err)
	}
	return items, nil
}

// GetItemByID retrieves a live item by its ID.
func (s *ItemService) GetItemByID(ctx context.Context, id string) (*models.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrItemNotFound
		}
		return nil, apperrors.Server("could not load item", err)
	}
	return item, nil
}

// CreateItem validates and stores a new item.
func (s *ItemService) CreateItem(ctx context.Context, item *models.Item) error {
	if err := s.validate(ctx, item); err != nil {
		return err
	}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return apperrors.Server("could not create item", err)
	}
	return nil
}

// UpdateItem applies changes to an existing item. Fields absent from
// changes keep their current values.
func (s *ItemService) UpdateItem(ctx context.Context, id string, changes models.ItemChanges) (*models.Item, error) {
	item, err := s.GetItemByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !changes.Apply(item) {
		return item, nil
	}
	if err := s.validate(ctx, item); err != nil {
		return nil, err
	}

	if err := s.itemRepo.Update(ctx, item); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrItemNotFound
		}
		return nil, apperrors.Server("could not update item", err)
	}
	return item, nil
}

// DeleteItem removes an item from the catalog. Existing order lines keep
// referencing it.
func (s *ItemService) DeleteItem(ctx context.Context, id string) error {
	if err := s.itemRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrItemNotFound
		}
		return apperrors.Server("could not delete item", err)
	}
	return nil
}

func (s *ItemService) validate(ctx context.Context, item *models.Item) error {
	if !item.Price.IsPositive() {
		return apperrors.ErrInvalidPrice
	}
	// prices are stored as numeric(12,2)
	if !item.Price.Equal(item.Price.Round(2)) {
		return apperrors.ErrPriceTooPrecise
	}
	if item.StockQuantity < 0 {
		return apperrors.ErrInvalidStock
	}
	if _, err := s.categoryRepo.GetByID(ctx, item.CategoryID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrUnknownCategory
		}
		return apperrors.Server("could not check category", err)
	}
	return nil
}
