package services_test

import (
	"context"
	"sync"
	"testing"

	"laptopstore/internal/database"
	"laptopstore/internal/models"
	"laptopstore/internal/repositories"
	"laptopstore/pkg/rabbitmq"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestStore(t *testing.T) (*repositories.GORMStore, *gorm.DB) {
	t.Helper()
	db, err := database.Open("sqlite", "file:"+uuid.NewString()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return repositories.NewGORMStore(db), db
}

func seedUser(t *testing.T, store repositories.Store) *models.User {
	t.Helper()
	user := &models.User{
		Email:          uuid.NewString()[:8] + "@store.test",
		HashedPassword: "hash",
		IsActive:       true,
		Role:           models.RoleUser,
	}
	require.NoError(t, store.Users().Create(context.Background(), user))
	return user
}

func seedItem(t *testing.T, store repositories.Store, title, price string) *models.Item {
	t.Helper()
	ctx := context.Background()
	category := &models.Category{Name: "cat-" + uuid.NewString()[:8]}
	require.NoError(t, store.Categories().Create(ctx, category))
	item := &models.Item{
		Title:         title,
		Price:         decimal.RequireFromString(price),
		StockQuantity: 10,
		CategoryID:    category.ID,
	}
	require.NoError(t, store.Items().Create(ctx, item))
	return item
}

// recordingPublisher collects published events and optionally fails.
type recordingPublisher struct {
	mu     sync.Mutex
	events []rabbitmq.OrderCreatedEvent
	err    error
}

func (p *recordingPublisher) PublishOrderCreated(_ context.Context, event rabbitmq.OrderCreatedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) published() []rabbitmq.OrderCreatedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]rabbitmq.OrderCreatedEvent(nil), p.events...)
}
