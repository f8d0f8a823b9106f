package services_test

import (
	"context"
	"fmt"
	"testing"

	"laptopstore/internal/apperrors"
	"laptopstore/internal/models"
	"laptopstore/internal/repositories"
	"laptopstore/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCategoryService_GetAllCategories(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	service := services.NewCategoryService(categoryRepo, new(MockItemRepository))

	expected := []models.Category{{ID: "1", Name: "Gaming"}, {ID: "2", Name: "Ultrabooks"}}
	categoryRepo.On("GetAll", mock.Anything).Return(expected, nil).Once()

	categories, err := service.GetAllCategories(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, expected, categories)
	categoryRepo.AssertExpectations(t)
}

func TestCategoryService_GetCategoryByID(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	service := services.NewCategoryService(categoryRepo, new(MockItemRepository))
	ctx := context.Background()

	categoryRepo.On("GetByID", mock.Anything, "1").Return(&models.Category{ID: "1", Name: "Gaming"}, nil).Once()
	category, err := service.GetCategoryByID(ctx, "1")
	assert.NoError(t, err)
	assert.Equal(t, "Gaming", category.Name)

	categoryRepo.On("GetByID", mock.Anything, "99").
		Return(nil, fmt.Errorf("failed to get category by ID 99: %w", repositories.ErrNotFound)).Once()
	_, err = service.GetCategoryByID(ctx, "99")
	assert.ErrorIs(t, err, apperrors.ErrCategoryNotFound)
	categoryRepo.AssertExpectations(t)
}

func TestCategoryService_CreateCategory(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	service := services.NewCategoryService(categoryRepo, new(MockItemRepository))
	ctx := context.Background()
	desc := "Thin and light"

	categoryRepo.On("Create", mock.Anything, mock.MatchedBy(func(c *models.Category) bool {
		return c.Name == "Ultrabooks" && c.Description != nil && *c.Description == desc
	})).Return(nil).Once()
	category, err := service.CreateCategory(ctx, "Ultrabooks", &desc)
	require.NoError(t, err)
	assert.Equal(t, "Ultrabooks", category.Name)

	categoryRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Category")).
		Return(fmt.Errorf("failed to create category: %w", repositories.ErrDuplicate)).Once()
	_, err = service.CreateCategory(ctx, "Ultrabooks", nil)
	assert.ErrorIs(t, err, apperrors.ErrCategoryExists)
	categoryRepo.AssertExpectations(t)
}

func TestCategoryService_UpdateCategory(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	service := services.NewCategoryService(categoryRepo, new(MockItemRepository))
	ctx := context.Background()

	categoryRepo.On("GetByID", mock.Anything, "1").Return(&models.Category{ID: "1", Name: "Gaming"}, nil).Once()
	categoryRepo.On("Update", mock.Anything, mock.MatchedBy(func(c *models.Category) bool {
		return c.ID == "1" && c.Name == "Gaming Rigs" && c.Description == nil
	})).Return(nil).Once()
	category, err := service.UpdateCategory(ctx, "1", "Gaming Rigs", nil)
	require.NoError(t, err)
	assert.Equal(t, "Gaming Rigs", category.Name)

	categoryRepo.On("GetByID", mock.Anything, "99").Return(nil, repositories.ErrNotFound).Once()
	_, err = service.UpdateCategory(ctx, "99", "Anything", nil)
	assert.ErrorIs(t, err, apperrors.ErrCategoryNotFound)
	categoryRepo.AssertExpectations(t)
}

func TestCategoryService_DeleteCategory(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	itemRepo := new(MockItemRepository)
	service := services.NewCategoryService(categoryRepo, itemRepo)
	ctx := context.Background()

	// Test category still referenced by items
	categoryRepo.On("GetByID", mock.Anything, "1").Return(&models.Category{ID: "1"}, nil).Once()
	itemRepo.On("CountByCategory", mock.Anything, "1").Return(int64(2), nil).Once()
	err := service.DeleteCategory(ctx, "1")
	assert.ErrorIs(t, err, apperrors.ErrCategoryInUse)
	assert.Equal(t, 409, apperrors.HTTPStatus(err))

	// Test successful deletion
	categoryRepo.On("GetByID", mock.Anything, "2").Return(&models.Category{ID: "2"}, nil).Once()
	itemRepo.On("CountByCategory", mock.Anything, "2").Return(int64(0), nil).Once()
	categoryRepo.On("Delete", mock.Anything, "2").Return(nil).Once()
	assert.NoError(t, service.DeleteCategory(ctx, "2"))

	categoryRepo.AssertExpectations(t)
	itemRepo.AssertExpectations(t)
}
