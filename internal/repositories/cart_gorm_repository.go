package repositories

import (
	"context"
	"fmt"

	"laptopstore/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{db: db}
}

// ListByUser retrieves the cart entries of a user in insertion order.
func (r *GORMCartRepository) ListByUser(ctx context.Context, userID string) ([]models.CartEntry, error) {
	var entries []models.CartEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at, id").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list cart of user %s: %w", userID, err)
	}
	return entries, nil
}

// GetByUserAndItem retrieves the entry of itemID in the cart of userID.
func (r *GORMCartRepository) GetByUserAndItem(ctx context.Context, userID, itemID string) (*models.CartEntry, error) {
	var entry models.CartEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND item_id = ?", userID, itemID).
		First(&entry).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get cart entry for item %s: %w", itemID, translate(err))
	}
	return &entry, nil
}

// Create adds a new cart entry.
func (r *GORMCartRepository) Create(ctx context.Context, entry *models.CartEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to create cart entry: %w", translate(err))
	}
	return nil
}

// UpdateQuantity sets the quantity of a cart entry.
func (r *GORMCartRepository) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	res := r.db.WithContext(ctx).
		Model(&models.CartEntry{}).
		Where("id = ?", id).
		Update("quantity", quantity)
	if res.Error != nil {
		return fmt.Errorf("failed to update cart entry %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cart entry %s not found for update: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteByUserAndItem removes itemID from the cart of userID.
func (r *GORMCartRepository) DeleteByUserAndItem(ctx context.Context, userID, itemID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND item_id = ?", userID, itemID).
		Delete(&models.CartEntry{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete cart entry for item %s: %w", itemID, res.Error)
	}
	return res.RowsAffected, nil
}

// DeleteByIDs removes the listed entries of userID.
func (r *GORMCartRepository) DeleteByIDs(ctx context.Context, userID string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND id IN ?", userID, ids).
		Delete(&models.CartEntry{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete cart entries of user %s: %w", userID, res.Error)
	}
	return res.RowsAffected, nil
}

// DeleteByUser empties the cart of userID.
func (r *GORMCartRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.CartEntry{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to clear cart of user %s: %w", userID, res.Error)
	}
	return res.RowsAffected, nil
}
