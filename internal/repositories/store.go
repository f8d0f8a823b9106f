package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// GORMStore is a GORM implementation of Store.
type GORMStore struct {
	db         *gorm.DB
	users      *GORMUserRepository
	categories *GORMCategoryRepository
	items      *GORMItemRepository
	carts      *GORMCartRepository
	orders     *GORMOrderRepository
}

// NewGORMStore creates a new instance of GORMStore.
func NewGORMStore(db *gorm.DB) *GORMStore {
	return &GORMStore{
		db:         db,
		users:      NewGORMUserRepository(db),
		categories: NewGORMCategoryRepository(db),
		items:      NewGORMItemRepository(db),
		carts:      NewGORMCartRepository(db),
		orders:     NewGORMOrderRepository(db),
	}
}

func (s *GORMStore) Users() UserRepository           { return s.users }
func (s *GORMStore) Categories() CategoryRepository { return s.categories }
func (s *GORMStore) Items() ItemRepository           { return s.items }
func (s *GORMStore) Carts() CartRepository           { return s.carts }
func (s *GORMStore) Orders() OrderRepository         { return s.orders }

// WithinTx runs fn inside a database transaction.
func (s *GORMStore) WithinTx(ctx context.Context, fn func(r Repos) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// repositories are rebuilt on the transaction handle
		return fn(NewGORMStore(tx))
	})
}

func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	}
	return err
}
