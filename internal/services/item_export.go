package services

import (
	"context"
	"io"

	"laptopstore/internal/apperrors"
	"laptopstore/internal/models"
	"laptopstore/internal/repositories"

	"github.com/tealeg/xlsx"
)

const exportTimeLayout = "2006-01-02 15:04:05"

var itemSheetHeaders = []string{
	"ID", "Title", "Description", "Price", "StockQuantity",
	"CategoryID", "Category", "CreatedAt", "UpdatedAt",
}

// ExportItems writes every live item as an xlsx workbook to w.
func (s *ItemService) ExportItems(ctx context.Context, w io.Writer) error {
	items, err := s.itemRepo.List(ctx, repositories.ItemFilter{})
	if err != nil {
		return apperrors.Server("could not export items", err)
	}
	categories, err := s.categoryRepo.GetAll(ctx)
	if err != nil {
		return apperrors.Server("could not export items", err)
	}

	file, err := buildItemWorkbook(items, categories)
	if err != nil {
		return apperrors.Server("could not export items", err)
	}
	if err := file.Write(w); err != nil {
		return apperrors.Server("could not export items", err)
	}
	return nil
}

func buildItemWorkbook(items []models.Item, categories []models.Category) (*xlsx.File, error) {
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Items")
	if err != nil {
		return nil, err
	}

	headerRow := sheet.AddRow()
	for _, h := range itemSheetHeaders {
		headerRow.AddCell().SetValue(h)
	}

	for _, item := range items {
		row := sheet.AddRow()
		row.AddCell().SetValue(item.ID)
		row.AddCell().SetValue(item.Title)
		row.AddCell().SetValue(item.Description)
		row.AddCell().SetValue(item.Price.StringFixed(2))
		row.AddCell().SetValue(item.StockQuantity)
		row.AddCell().SetValue(item.CategoryID)
		row.AddCell().SetValue(names[item.CategoryID])
		row.AddCell().SetValue(item.CreatedAt.Format(exportTimeLayout))
		row.AddCell().SetValue(item.UpdatedAt.Format(exportTimeLayout))
	}
	return file, nil
}
