package services_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"laptopstore/internal/apperrors"
	"laptopstore/internal/models"
	"laptopstore/internal/repositories"
	"laptopstore/internal/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
)

func newItemService() (*services.ItemService, *MockItemRepository, *MockCategoryRepository) {
	itemRepo := new(MockItemRepository)
	categoryRepo := new(MockCategoryRepository)
	return services.NewItemService(itemRepo, categoryRepo, 10, 100), itemRepo, categoryRepo
}

func intPtr(v int) *int { return &v }

func TestItemService_ListItemsPagination(t *testing.T) {
	service, itemRepo, _ := newItemService()
	ctx := context.Background()

	itemRepo.On("List", mock.Anything, repositories.ItemFilter{Skip: 0, Limit: 10}).Return([]models.Item{{ID: "1"}}, nil).Once()
	items, err := service.ListItems(ctx, "", services.Page{})
	require.NoError(t, err)
	assert.Len(t, items, 1)

	// limits above the maximum are clamped
	itemRepo.On("List", mock.Anything, repositories.ItemFilter{CategoryID: "c1", Skip: 20, Limit: 100}).Return([]models.Item{}, nil).Once()
	_, err = service.ListItems(ctx, "c1", services.Page{Skip: 20, Limit: intPtr(500)})
	require.NoError(t, err)

	items, err = service.ListItems(ctx, "", services.Page{Limit: intPtr(0)})
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = service.ListItems(ctx, "", services.Page{Skip: -1})
	assert.ErrorIs(t, err, apperrors.ErrInvalidPagination)
	_, err = service.ListItems(ctx, "", services.Page{Limit: intPtr(-5)})
	assert.ErrorIs(t, err, apperrors.ErrInvalidPagination)

	itemRepo.AssertExpectations(t)
}

func TestItemService_CreateItem(t *testing.T) {
	service, itemRepo, categoryRepo := newItemService()
	ctx := context.Background()

	item := &models.Item{Title: "XPS 13", Price: decimal.RequireFromString("1299.00"), StockQuantity: 4, CategoryID: "c1"}
	categoryRepo.On("GetByID", mock.Anything, "c1").Return(&models.Category{ID: "c1"}, nil).Once()
	itemRepo.On("Create", mock.Anything, item).Return(nil).Once()
	assert.NoError(t, service.CreateItem(ctx, item))

	// Test non-positive price
	err := service.CreateItem(ctx, &models.Item{Title: "Free", Price: decimal.Zero, CategoryID: "c1"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidPrice)

	// Test sub-cent prices
	err = service.CreateItem(ctx, &models.Item{Title: "Tiny", Price: decimal.RequireFromString("0.001"), CategoryID: "c1"})
	assert.ErrorIs(t, err, apperrors.ErrPriceTooPrecise)
	err = service.CreateItem(ctx, &models.Item{Title: "Odd", Price: decimal.RequireFromString("10.005"), CategoryID: "c1"})
	assert.ErrorIs(t, err, apperrors.ErrPriceTooPrecise)
	assert.Equal(t, 400, apperrors.HTTPStatus(err))

	// Test negative stock
	err = service.CreateItem(ctx, &models.Item{Title: "Neg", Price: decimal.NewFromInt(1), StockQuantity: -1, CategoryID: "c1"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidStock)

	// Test unknown category
	categoryRepo.On("GetByID", mock.Anything, "nope").Return(nil, repositories.ErrNotFound).Once()
	err = service.CreateItem(ctx, &models.Item{Title: "Orphan", Price: decimal.NewFromInt(1), CategoryID: "nope"})
	assert.ErrorIs(t, err, apperrors.ErrUnknownCategory)
	assert.Equal(t, 400, apperrors.HTTPStatus(err))

	itemRepo.AssertExpectations(t)
	categoryRepo.AssertExpectations(t)
}

func TestItemService_UpdateItem(t *testing.T) {
	service, itemRepo, categoryRepo := newItemService()
	ctx := context.Background()

	current := &models.Item{ID: "i1", Title: "XPS 13", Price: decimal.NewFromInt(1000), StockQuantity: 2, CategoryID: "c1"}
	newPrice := decimal.NewFromInt(900)
	itemRepo.On("GetByID", mock.Anything, "i1").Return(current, nil).Once()
	categoryRepo.On("GetByID", mock.Anything, "c1").Return(&models.Category{ID: "c1"}, nil).Once()
	itemRepo.On("Update", mock.Anything, mock.MatchedBy(func(i *models.Item) bool {
		return i.Price.Equal(newPrice) && i.Title == "XPS 13" && i.StockQuantity == 2
	})).Return(nil).Once()

	updated, err := service.UpdateItem(ctx, "i1", models.ItemChanges{Price: &newPrice})
	require.NoError(t, err)
	assert.True(t, updated.Price.Equal(newPrice))

	// Test invalid change is rejected before writing
	zero := decimal.Zero
	itemRepo.On("GetByID", mock.Anything, "i1").Return(&models.Item{ID: "i1", Price: decimal.NewFromInt(5), CategoryID: "c1"}, nil).Once()
	_, err = service.UpdateItem(ctx, "i1", models.ItemChanges{Price: &zero})
	assert.ErrorIs(t, err, apperrors.ErrInvalidPrice)

	subCent := decimal.RequireFromString("899.999")
	itemRepo.On("GetByID", mock.Anything, "i1").Return(&models.Item{ID: "i1", Price: decimal.NewFromInt(5), CategoryID: "c1"}, nil).Once()
	_, err = service.UpdateItem(ctx, "i1", models.ItemChanges{Price: &subCent})
	assert.ErrorIs(t, err, apperrors.ErrPriceTooPrecise)

	itemRepo.On("GetByID", mock.Anything, "gone").Return(nil, repositories.ErrNotFound).Once()
	_, err = service.UpdateItem(ctx, "gone", models.ItemChanges{Price: &newPrice})
	assert.ErrorIs(t, err, apperrors.ErrItemNotFound)

	itemRepo.AssertExpectations(t)
}

func TestItemService_DeleteItem(t *testing.T) {
	service, itemRepo, _ := newItemService()
	ctx := context.Background()

	itemRepo.On("Delete", mock.Anything, "i1").Return(nil).Once()
	assert.NoError(t, service.DeleteItem(ctx, "i1"))

	itemRepo.On("Delete", mock.Anything, "i2").Return(repositories.ErrNotFound).Once()
	assert.ErrorIs(t, service.DeleteItem(ctx, "i2"), apperrors.ErrItemNotFound)

	itemRepo.On("Delete", mock.Anything, "i3").Return(errors.New("disk full")).Once()
	assert.Equal(t, apperrors.KindServer, apperrors.KindOf(service.DeleteItem(ctx, "i3")))
	itemRepo.AssertExpectations(t)
}

func TestItemService_ExportItems(t *testing.T) {
	service, itemRepo, categoryRepo := newItemService()

	itemRepo.On("List", mock.Anything, repositories.ItemFilter{}).Return([]models.Item{
		{ID: "i1", Title: "XPS 13", Price: decimal.RequireFromString("1299.5"), StockQuantity: 4, CategoryID: "c1"},
		{ID: "i2", Title: "Legion 5", Price: decimal.NewFromInt(1500), StockQuantity: 1, CategoryID: "c2"},
	}, nil).Once()
	categoryRepo.On("GetAll", mock.Anything).Return([]models.Category{{ID: "c1", Name: "Ultrabooks"}, {ID: "c2", Name: "Gaming"}}, nil).Once()

	var buf bytes.Buffer
	require.NoError(t, service.ExportItems(context.Background(), &buf))

	file, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)
	sheet := file.Sheets[0]
	assert.Equal(t, "Items", sheet.Name)
	require.Len(t, sheet.Rows, 3)
	assert.Equal(t, "Title", sheet.Rows[0].Cells[1].String())
	assert.Equal(t, "XPS 13", sheet.Rows[1].Cells[1].String())
	assert.Equal(t, "1299.50", sheet.Rows[1].Cells[3].String())
	assert.Equal(t, "Gaming", sheet.Rows[2].Cells[6].String())
}
