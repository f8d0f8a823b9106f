// Package apperrors classifies failures so that handlers can map them to
// HTTP statuses without inspecting error strings.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the class of a failure.
type Kind int

const (
	KindServer Kind = iota
	KindClient
	KindNotFound
	KindAuth
	KindForbidden
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindClient:
		return "client"
	case KindNotFound:
		return "not_found"
	case KindAuth:
		return "auth"
	case KindForbidden:
		return "forbidden"
	case KindConflict:
		return "conflict"
	default:
		return "server"
	}
}

// Error is a classified application error. Message is safe to show to
// callers; Err carries the underlying cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches two classified errors of the same kind and message, which lets
// the package-level sentinels below be used with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Message == e.Message
}

func newError(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

// Client reports invalid input.
func Client(msg string) *Error { return newError(KindClient, msg, nil) }

// NotFound reports a missing resource.
func NotFound(msg string) *Error { return newError(KindNotFound, msg, nil) }

// Auth reports a missing, invalid or expired credential.
func Auth(msg string) *Error { return newError(KindAuth, msg, nil) }

// Forbidden reports a valid credential acting on something it does not own.
func Forbidden(msg string) *Error { return newError(KindForbidden, msg, nil) }

// Conflict reports a uniqueness violation or a lost race with another request.
func Conflict(msg string) *Error { return newError(KindConflict, msg, nil) }

// Server wraps a persistence or infrastructure failure.
func Server(msg string, err error) *Error { return newError(KindServer, msg, err) }

// Wrap attaches a cause to a sentinel while keeping errors.Is matching it.
func Wrap(sentinel *Error, err error) *Error {
	return newError(sentinel.Kind, sentinel.Message, err)
}

// KindOf returns the kind of err. Unclassified errors are server errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindServer
}

// HTTPStatus maps err to a response status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindClient:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindAuth:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the caller-facing message of err.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal server error"
}

var (
	ErrInvalidCredentials = Auth("invalid credentials")
	ErrInvalidToken       = Auth("invalid or expired token")
	ErrInactiveUser       = Auth("user is inactive")
	ErrEmailTaken         = Conflict("email already registered")
	ErrUserNotFound       = Auth("user no longer exists")

	ErrCategoryNotFound  = NotFound("category not found")
	ErrCategoryExists    = Conflict("category name already exists")
	ErrCategoryInUse     = Conflict("category still has items")
	ErrUnknownCategory   = Client("category does not exist")
	ErrItemNotFound      = NotFound("item not found")
	ErrInvalidPrice      = Client("price must be greater than zero")
	ErrPriceTooPrecise   = Client("price must not have more than two decimal places")
	ErrInvalidStock      = Client("stock quantity must not be negative")
	ErrInvalidPagination = Client("skip and limit must not be negative")

	ErrInvalidQuantity   = Client("quantity must be at least 1")
	ErrCartEntryNotFound = NotFound("item is not in the cart")

	ErrEmptyCart       = Client("cart is empty")
	ErrCartItemMissing = Client("cart references an item that no longer exists")
	ErrCheckoutRace    = Conflict("cart changed during checkout")
	ErrOrderNotFound   = NotFound("order not found")
	ErrOrderForbidden  = Forbidden("order belongs to another user")
)
