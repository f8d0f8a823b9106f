package handlers

import (
	"log"

	"laptopstore/internal/middleware"
	"laptopstore/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    newValidator(),
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Get("/me", authRequired, h.HandleMe)
}

// RegisterRequest represents the request body for registration.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// HandleRegister handles new user registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing register request body: %v", err)
		return badRequest(c, "Invalid request body", err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	user, err := h.authService.RegisterUser(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return writeError(c, "register user", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "User created",
		"user":   user,
	})
}

// LoginRequest represents the request body for login. Password-form
// clients send the email in the username field.
type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password" validate:"required"`
}

// HandleLogin handles user login and issues a JWT token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing login request body: %v", err)
		return badRequest(c, "Invalid request body", err)
	}
	if req.Email == "" {
		req.Email = req.Username
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}
	if req.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  fiber.Map{"Email": "Field 'Email' failed on the 'required' tag"},
		})
	}

	token, err := h.authService.LoginUser(c.UserContext(), req.Email, req.Password)
	if err != nil {
		log.Printf("Login failed for %s: %v", req.Email, err)
		return writeError(c, "log in", err)
	}

	return c.JSON(fiber.Map{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// HandleMe returns the authenticated user.
func (h *AuthHandler) HandleMe(c *fiber.Ctx) error {
	user, err := h.authService.GetUser(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return writeError(c, "load user", err)
	}
	return c.JSON(user)
}
