package handlers

import (
	"errors"
	"fmt"
	"log"
	"reflect"

	"laptopstore/internal/apperrors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// newValidator returns a validator that also understands decimal amounts,
// so tags such as gt=0 apply to prices.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// validationFailed renders the field errors of a failed validation.
func validationFailed(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return badRequest(c, "Validation failed", err)
	}

	errorMessages := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}

func badRequest(c *fiber.Ctx, message string, err error) error {
	body := fiber.Map{"message": message}
	if err != nil {
		body["error"] = err.Error()
	}
	return c.Status(fiber.StatusBadRequest).JSON(body)
}

// writeError maps a service error to its status code. Server errors are
// logged and their cause is not exposed.
func writeError(c *fiber.Ctx, op string, err error) error {
	status := apperrors.HTTPStatus(err)
	if status >= fiber.StatusInternalServerError {
		log.Printf("Error %s: %v", op, err)
		return c.Status(status).JSON(fiber.Map{
			"message": fmt.Sprintf("Could not %s", op),
			"error":   apperrors.Message(err),
		})
	}
	return c.Status(status).JSON(fiber.Map{
		"message": apperrors.Message(err),
	})
}

// ErrorHandler renders errors that escape the handlers, such as unknown
// routes or recovered panics, in the same JSON shape.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "internal server error"
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status = fiberErr.Code
		message = fiberErr.Message
	} else {
		log.Printf("Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(status).JSON(fiber.Map{"message": message})
}
