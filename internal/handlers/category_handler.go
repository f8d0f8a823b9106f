package handlers

import (
	"log"

	"laptopstore/internal/middleware"
	"laptopstore/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	service  *services.CategoryService
	validate *validator.Validate
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		service:  service,
		validate: newValidator(),
	}
}

// RegisterRoutes registers the category routes. Reads are public, writes
// need an admin token.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	admin := []fiber.Handler{authRequired, middleware.AdminOnly()}

	categoryRoutes := router.Group("/categories")
	categoryRoutes.Get("/", h.HandleGetCategories)
	categoryRoutes.Get("/:id", h.HandleGetCategoryByID)
	categoryRoutes.Post("/", append(admin, h.HandleCreateCategory)...)
	categoryRoutes.Put("/:id", append(admin, h.HandleUpdateCategory)...)
	categoryRoutes.Delete("/:id", append(admin, h.HandleDeleteCategory)...)
}

// CategoryRequest is the body of category create and update requests.
type CategoryRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=50"`
	Description *string `json:"description"`
}

// HandleGetCategories retrieves all categories.
func (h *CategoryHandler) HandleGetCategories(c *fiber.Ctx) error {
	categories, err := h.service.GetAllCategories(c.UserContext())
	if err != nil {
		return writeError(c, "retrieve categories", err)
	}
	return c.JSON(categories)
}

// HandleGetCategoryByID retrieves a single category by its ID.
func (h *CategoryHandler) HandleGetCategoryByID(c *fiber.Ctx) error {
	category, err := h.service.GetCategoryByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, "retrieve category", err)
	}
	return c.JSON(category)
}

// HandleCreateCategory creates a new category.
func (h *CategoryHandler) HandleCreateCategory(c *fiber.Ctx) error {
	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing category request body: %v", err)
		return badRequest(c, "Invalid request body", err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	category, err := h.service.CreateCategory(c.UserContext(), req.Name, req.Description)
	if err != nil {
		return writeError(c, "create category", err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// HandleUpdateCategory replaces the name and description of a category.
func (h *CategoryHandler) HandleUpdateCategory(c *fiber.Ctx) error {
	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing category request body: %v", err)
		return badRequest(c, "Invalid request body", err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	category, err := h.service.UpdateCategory(c.UserContext(), c.Params("id"), req.Name, req.Description)
	if err != nil {
		return writeError(c, "update category", err)
	}
	return c.JSON(category)
}

// HandleDeleteCategory deletes a category without items.
func (h *CategoryHandler) HandleDeleteCategory(c *fiber.Ctx) error {
	if err := h.service.DeleteCategory(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, "delete category", err)
	}
	return c.JSON(fiber.Map{"message": "Category deleted"})
}
