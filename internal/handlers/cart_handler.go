package handlers

import (
	"log"
	"strconv"

	"laptopstore/internal/middleware"
	"laptopstore/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the caller's cart.
type CartHandler struct {
	service *services.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{service: service}
}

// RegisterRoutes registers the cart routes. All of them need a token.
func (h *CartHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	cartRoutes := router.Group("/cart", authRequired)
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/", h.HandleAddItem)
	cartRoutes.Post("/add/:item_id", h.HandleAddItemByPath)
	cartRoutes.Delete("/", h.HandleClearCart)
	cartRoutes.Delete("/:item_id", h.HandleRemoveItem)
}

// AddCartItemRequest is the JSON form of an add-to-cart request. The same
// fields are accepted as query parameters.
type AddCartItemRequest struct {
	ItemID   string `json:"item_id"`
	Quantity *int   `json:"quantity"`
}

// HandleAddItem adds an item to the cart.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req AddCartItemRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			log.Printf("Error parsing cart request body: %v", err)
			return badRequest(c, "Invalid request body", err)
		}
	}
	if itemID := c.Query("item_id"); itemID != "" {
		req.ItemID = itemID
	}
	if req.ItemID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  fiber.Map{"ItemID": "Field 'ItemID' failed on the 'required' tag"},
		})
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	if raw := c.Query("quantity"); raw != "" {
		q, err := strconv.Atoi(raw)
		if err != nil {
			return badRequest(c, "Invalid quantity parameter", err)
		}
		quantity = q
	}
	return h.addItem(c, req.ItemID, quantity)
}

// HandleAddItemByPath adds the item named in the path to the cart.
func (h *CartHandler) HandleAddItemByPath(c *fiber.Ctx) error {
	quantity := 1
	if raw := c.Query("quantity"); raw != "" {
		q, err := strconv.Atoi(raw)
		if err != nil {
			return badRequest(c, "Invalid quantity parameter", err)
		}
		quantity = q
	}
	return h.addItem(c, c.Params("item_id"), quantity)
}

func (h *CartHandler) addItem(c *fiber.Ctx, itemID string, quantity int) error {
	entry, created, err := h.service.AddItem(c.UserContext(), middleware.UserID(c), itemID, quantity)
	if err != nil {
		return writeError(c, "add item to cart", err)
	}
	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(entry)
}

// HandleGetCart lists the caller's cart.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	entries, err := h.service.GetCart(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return writeError(c, "retrieve cart", err)
	}
	return c.JSON(fiber.Map{
		"total": len(entries),
		"items": entries,
	})
}

// HandleRemoveItem removes one item from the cart.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	if err := h.service.RemoveItem(c.UserContext(), middleware.UserID(c), c.Params("item_id")); err != nil {
		return writeError(c, "remove item from cart", err)
	}
	return c.JSON(fiber.Map{"message": "Item removed from cart"})
}

// HandleClearCart empties the cart.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	if err := h.service.ClearCart(c.UserContext(), middleware.UserID(c)); err != nil {
		return writeError(c, "clear cart", err)
	}
	return c.JSON(fiber.Map{"message": "Cart cleared"})
}
