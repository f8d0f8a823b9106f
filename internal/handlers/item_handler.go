package handlers

import (
	"log"
	"strconv"

	"laptopstore/internal/middleware"
	"laptopstore/internal/models"
	"laptopstore/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// ItemHandler handles HTTP requests for catalog items.
type ItemHandler struct {
	service  *services.ItemService
	validate *validator.Validate
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(service *services.ItemService) *ItemHandler {
	return &ItemHandler{
		service:  service,
		validate: newValidator(),
	}
}

// RegisterRoutes registers the item routes. Reads are public, writes and
// the export need an admin token.
func (h *ItemHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	admin := []fiber.Handler{authRequired, middleware.AdminOnly()}

	itemRoutes := router.Group("/items")
	itemRoutes.Get("/", h.HandleGetItems)
	itemRoutes.Get("/export", append(admin, h.HandleExportItems)...)
	itemRoutes.Get("/:id", h.HandleGetItemByID)
	itemRoutes.Post("/", append(admin, h.HandleCreateItem)...)
	itemRoutes.Put("/:id", append(admin, h.HandleUpdateItem)...)
	itemRoutes.Delete("/:id", append(admin, h.HandleDeleteItem)...)
}

// CreateItemRequest is the body of an item create request.
type CreateItemRequest struct {
	Title         string          `json:"title" validate:"required,min=1,max=100"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price" validate:"gt=0"`
	StockQuantity int             `json:"stock_quantity" validate:"gte=0"`
	CategoryID    string          `json:"category_id" validate:"required"`
}

// UpdateItemRequest lists the mutable item fields. Omitted fields keep
// their value.
type UpdateItemRequest struct {
	Title         *string          `json:"title" validate:"omitempty,min=1,max=100"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	StockQuantity *int             `json:"stock_quantity" validate:"omitempty,gte=0"`
	CategoryID    *string          `json:"category_id" validate:"omitempty,min=1"`
}

func (r UpdateItemRequest) changes() models.ItemChanges {
	return models.ItemChanges{
		Title:         r.Title,
		Description:   r.Description,
		Price:         r.Price,
		StockQuantity: r.StockQuantity,
		CategoryID:    r.CategoryID,
	}
}

// HandleGetItems retrieves a page of items.
func (h *ItemHandler) HandleGetItems(c *fiber.Ctx) error {
	var page services.Page
	if raw := c.Query("skip"); raw != "" {
		skip, err := strconv.Atoi(raw)
		if err != nil {
			return badRequest(c, "Invalid skip parameter", err)
		}
		page.Skip = skip
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return badRequest(c, "Invalid limit parameter", err)
		}
		page.Limit = &limit
	}

	items, err := h.service.ListItems(c.UserContext(), c.Query("category_id"), page)
	if err != nil {
		return writeError(c, "retrieve items", err)
	}
	return c.JSON(items)
}

// HandleGetItemByID retrieves a single item by its ID.
func (h *ItemHandler) HandleGetItemByID(c *fiber.Ctx) error {
	item, err := h.service.GetItemByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, "retrieve item", err)
	}
	return c.JSON(item)
}

// HandleCreateItem creates a new item.
func (h *ItemHandler) HandleCreateItem(c *fiber.Ctx) error {
	var req CreateItemRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing item request body: %v", err)
		return badRequest(c, "Invalid request body", err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	item := &models.Item{
		Title:         req.Title,
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		CategoryID:    req.CategoryID,
	}
	if err := h.service.CreateItem(c.UserContext(), item); err != nil {
		return writeError(c, "create item", err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// HandleUpdateItem updates the fields present in the request body.
func (h *ItemHandler) HandleUpdateItem(c *fiber.Ctx) error {
	var req UpdateItemRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing item request body: %v", err)
		return badRequest(c, "Invalid request body", err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	item, err := h.service.UpdateItem(c.UserContext(), c.Params("id"), req.changes())
	if err != nil {
		return writeError(c, "update item", err)
	}
	return c.JSON(item)
}

// HandleDeleteItem removes an item from the catalog.
func (h *ItemHandler) HandleDeleteItem(c *fiber.Ctx) error {
	if err := h.service.DeleteItem(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, "delete item", err)
	}
	return c.JSON(fiber.Map{"message": "Item deleted"})
}

// HandleExportItems streams the catalog as an xlsx workbook.
func (h *ItemHandler) HandleExportItems(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, "attachment; filename=items.xlsx")
	if err := h.service.ExportItems(c.UserContext(), c.Response().BodyWriter()); err != nil {
		c.Response().ResetBody()
		c.Response().Header.Del(fiber.HeaderContentDisposition)
		return writeError(c, "export items", err)
	}
	return nil
}
