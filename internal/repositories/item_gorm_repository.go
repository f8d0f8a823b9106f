package repositories

import (
	"context"
	"fmt"

	"laptopstore/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMItemRepository is a GORM implementation of ItemRepository.
type GORMItemRepository struct {
	db *gorm.DB
}

// NewGORMItemRepository creates a new instance of GORMItemRepository.
func NewGORMItemRepository(db *gorm.DB) *GORMItemRepository {
	return &GORMItemRepository{db: db}
}

// List retrieves a page of items in creation order.
func (r *GORMItemRepository) List(ctx context.Context, filter ItemFilter) ([]models.Item, error) {
	q := r.db.WithContext(ctx).Model(&models.Item{})
	if filter.CategoryID != "" {
		q = q.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Skip > 0 {
		q = q.Offset(filter.Skip)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var items []models.Item
	if err := q.Order("created_at, id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}

// GetByID retrieves a single item by its ID.
func (r *GORMItemRepository) GetByID(ctx context.Context, id string) (*models.Item, error) {
	var item models.Item
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to get item by ID %s: %w", id, translate(err))
	}
	return &item, nil
}

// GetByIDs retrieves the live items among ids.
func (r *GORMItemRepository) GetByIDs(ctx context.Context, ids []string) (map[string]models.Item, error) {
	found := make(map[string]models.Item, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	var items []models.Item
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to get items by IDs: %w", err)
	}
	for _, item := range items {
		found[item.ID] = item
	}
	return found, nil
}

// CountByCategory counts the live items referencing categoryID.
func (r *GORMItemRepository) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Item{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count items of category %s: %w", categoryID, err)
	}
	return count, nil
}

// Create creates a new item in the database.
func (r *GORMItemRepository) Create(ctx context.Context, item *models.Item) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("failed to create item: %w", translate(err))
	}
	return nil
}

// Update writes the mutable fields of an existing item.
func (r *GORMItemRepository) Update(ctx context.Context, item *models.Item) error {
	res := r.db.WithContext(ctx).
		Model(&models.Item{}).
		Where("id = ?", item.ID).
		Updates(map[string]interface{}{
			"title":          item.Title,
			"description":    item.Description,
			"price":          item.Price,
			"stock_quantity": item.StockQuantity,
			"category_id":    item.CategoryID,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update item: %w", translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("item with ID %s not found for update: %w", item.ID, ErrNotFound)
	}
	return nil
}

// Delete soft-deletes an item by its ID.
func (r *GORMItemRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Item{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("item with ID %s not found for deletion: %w", id, ErrNotFound)
	}
	return nil
}
