package services

import (
	"context"
	"errors"

	"laptopstore/internal/apperrors"
	"laptopstore/internal/models"
	"laptopstore/internal/repositories"
)

// CategoryService handles business logic for catalog categories.
type CategoryService struct {
	categoryRepo repositories.CategoryRepository
	itemRepo     repositories.ItemRepository
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(categoryRepo repositories.CategoryRepository, itemRepo repositories.ItemRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo, itemRepo: itemRepo}
}

// GetAllCategories retrieves all categories.
func (s *CategoryService) GetAllCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.categoryRepo.GetAll(ctx)
	if err != nil {
		return nil, apperrors.Server("could not list categories", err)
	}
	return categories, nil
}

// GetCategoryByID retrieves a category by its ID.
func (s *CategoryService) GetCategoryByID(ctx context.Context, id string) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Server("could not load category", err)
	}
	return category, nil
}

// CreateCategory creates a new category with a unique name.
func (s *CategoryService) CreateCategory(ctx context.Context, name string, description *string) (*models.Category, error) {
	category := &models.Category{Name: name, Description: description}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, apperrors.ErrCategoryExists
		}
		return nil, apperrors.Server("could not create category", err)
	}
	return category, nil
}

// UpdateCategory renames a category and replaces its description.
func (s *CategoryService) UpdateCategory(ctx context.Context, id, name string, description *string) (*models.Category, error) {
	category, err := s.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, err
	}

	category.Name = name
	category.Description = description
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		switch {
		case errors.Is(err, repositories.ErrDuplicate):
			return nil, apperrors.ErrCategoryExists
		case errors.Is(err, repositories.ErrNotFound):
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Server("could not update category", err)
	}
	return category, nil
}

// DeleteCategory deletes a category that no live item references.
func (s *CategoryService) DeleteCategory(ctx context.Context, id string) error {
	if _, err := s.GetCategoryByID(ctx, id); err != nil {
		return err
	}

	count, err := s.itemRepo.CountByCategory(ctx, id)
	if err != nil {
		return apperrors.Server("could not delete category", err)
	}
	if count > 0 {
		return apperrors.ErrCategoryInUse
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrCategoryNotFound
		}
		return apperrors.Server("could not delete category", err)
	}
	return nil
}
