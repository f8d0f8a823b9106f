package repositories

import (
	"context"
	"fmt"

	"laptopstore/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{db: db}
}

// Create inserts the order header. Lines are written with CreateLines.
func (r *GORMOrderRepository) Create(ctx context.Context, order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", translate(err))
	}
	return nil
}

// CreateLines inserts the lines of an order.
func (r *GORMOrderRepository) CreateLines(ctx context.Context, lines []models.OrderLine) error {
	if len(lines) == 0 {
		return nil
	}
	for i := range lines {
		if lines[i].ID == "" {
			lines[i].ID = uuid.New().String()
		}
	}
	if err := r.db.WithContext(ctx).Create(&lines).Error; err != nil {
		return fmt.Errorf("failed to create order lines: %w", translate(err))
	}
	return nil
}

// GetByID retrieves an order and its lines.
func (r *GORMOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to get order by ID %s: %w", id, translate(err))
	}

	lines, err := r.linesOf(ctx, []string{order.ID})
	if err != nil {
		return nil, err
	}
	order.Lines = lines[order.ID]
	return &order, nil
}

// ListByUser retrieves all orders of a user, newest first.
func (r *GORMOrderRepository) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc, id desc").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders of user %s: %w", userID, err)
	}
	if len(orders) == 0 {
		return orders, nil
	}

	ids := make([]string, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}
	lines, err := r.linesOf(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Lines = lines[orders[i].ID]
	}
	return orders, nil
}

func (r *GORMOrderRepository) linesOf(ctx context.Context, orderIDs []string) (map[string][]models.OrderLine, error) {
	var lines []models.OrderLine
	err := r.db.WithContext(ctx).
		Where("order_id IN ?", orderIDs).
		Order("order_id, position").
		Find(&lines).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load order lines: %w", err)
	}

	byOrder := make(map[string][]models.OrderLine, len(orderIDs))
	for _, l := range lines {
		byOrder[l.OrderID] = append(byOrder[l.OrderID], l)
	}
	return byOrder, nil
}
