package handlers

import (
	"time"

	"laptopstore/internal/middleware"
	"laptopstore/internal/models"
	"laptopstore/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

// RegisterRoutes registers the order routes. All of them need a token.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	orderRoutes := router.Group("/orders", authRequired)
	orderRoutes.Post("/checkout", h.HandleCheckout)
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/history/all", h.HandleGetOrderHistory)
	orderRoutes.Get("/:order_id", h.HandleGetOrderByID)
}

// CheckoutResponse summarizes the order created by a checkout.
type CheckoutResponse struct {
	OrderID    string             `json:"order_id"`
	Status     models.OrderStatus `json:"status"`
	TotalPrice decimal.Decimal    `json:"total_price"`
	Lines      []models.OrderLine `json:"lines"`
}

// OrderSummary is one row of the order history.
type OrderSummary struct {
	ID         string             `json:"id"`
	TotalPrice decimal.Decimal    `json:"total_price"`
	Status     models.OrderStatus `json:"status"`
	CreatedAt  time.Time          `json:"created_at"`
}

// HandleCheckout turns the caller's cart into an order.
func (h *OrderHandler) HandleCheckout(c *fiber.Ctx) error {
	order, err := h.service.Checkout(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return writeError(c, "checkout", err)
	}
	return c.Status(fiber.StatusCreated).JSON(CheckoutResponse{
		OrderID:    order.ID,
		Status:     order.Status,
		TotalPrice: order.TotalPrice,
		Lines:      order.Lines,
	})
}

// HandleGetOrders lists the caller's orders with their lines.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetOrdersByUser(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return writeError(c, "retrieve orders", err)
	}
	return c.JSON(orders)
}

// HandleGetOrderHistory lists the caller's orders without lines.
func (h *OrderHandler) HandleGetOrderHistory(c *fiber.Ctx) error {
	orders, err := h.service.GetOrdersByUser(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return writeError(c, "retrieve order history", err)
	}

	summaries := make([]OrderSummary, len(orders))
	for i, o := range orders {
		summaries[i] = OrderSummary{
			ID:         o.ID,
			TotalPrice: o.TotalPrice,
			Status:     o.Status,
			CreatedAt:  o.CreatedAt,
		}
	}
	return c.JSON(fiber.Map{
		"total":  len(summaries),
		"orders": summaries,
	})
}

// HandleGetOrderByID retrieves one of the caller's orders.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	order, err := h.service.GetOrderByID(c.UserContext(), middleware.UserID(c), c.Params("order_id"))
	if err != nil {
		return writeError(c, "retrieve order", err)
	}
	return c.JSON(order)
}
