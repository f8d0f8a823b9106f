package repositories

import (
	"context"
	"errors"

	"laptopstore/internal/models"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert or update violates a unique index.
	ErrDuplicate = errors.New("duplicate record")
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	// LockByID takes a row lock on the user until the surrounding
	// transaction ends. It serializes cart mutations of one user.
	LockByID(ctx context.Context, id string) error
}

// CategoryRepository defines the interface for category data access.
type CategoryRepository interface {
	GetAll(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id string) (*models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id string) error
}

// ItemFilter narrows an item listing.
type ItemFilter struct {
	CategoryID string
	Skip       int
	Limit      int // 0 means no limit
}

// ItemRepository defines the interface for catalog item data access.
type ItemRepository interface {
	List(ctx context.Context, filter ItemFilter) ([]models.Item, error)
	GetByID(ctx context.Context, id string) (*models.Item, error)
	// GetByIDs returns the live items among ids keyed by ID. Missing or
	// deleted items are absent from the map.
	GetByIDs(ctx context.Context, ids []string) (map[string]models.Item, error)
	CountByCategory(ctx context.Context, categoryID string) (int64, error)
	Create(ctx context.Context, item *models.Item) error
	Update(ctx context.Context, item *models.Item) error
	Delete(ctx context.Context, id string) error
}

// CartRepository defines the interface for cart entry data access.
type CartRepository interface {
	ListByUser(ctx context.Context, userID string) ([]models.CartEntry, error)
	GetByUserAndItem(ctx context.Context, userID, itemID string) (*models.CartEntry, error)
	Create(ctx context.Context, entry *models.CartEntry) error
	UpdateQuantity(ctx context.Context, id string, quantity int) error
	DeleteByUserAndItem(ctx context.Context, userID, itemID string) (int64, error)
	// DeleteByIDs removes the given entries of userID and returns how many
	// rows were actually deleted.
	DeleteByIDs(ctx context.Context, userID string, ids []string) (int64, error)
	DeleteByUser(ctx context.Context, userID string) (int64, error)
}

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	CreateLines(ctx context.Context, lines []models.OrderLine) error
	// GetByID returns the order with its lines in position order.
	GetByID(ctx context.Context, id string) (*models.Order, error)
	// ListByUser returns the user's orders, newest first, with their lines.
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
}

// Repos groups the repositories bound to one database handle.
type Repos interface {
	Users() UserRepository
	Categories() CategoryRepository
	Items() ItemRepository
	Carts() CartRepository
	Orders() OrderRepository
}

// Store hands out repositories and runs units of work atomically.
type Store interface {
	Repos
	// WithinTx runs fn with repositories bound to a single transaction.
	// The transaction commits when fn returns nil and rolls back otherwise.
	WithinTx(ctx context.Context, fn func(r Repos) error) error
}
