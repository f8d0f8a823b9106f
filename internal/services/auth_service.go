package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"laptopstore/internal/apperrors"
	"laptopstore/internal/models"
	"laptopstore/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Claims are the JWT claims issued by AuthService. The subject holds the
// user ID.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Identity is the authenticated caller resolved from a bearer token.
type Identity struct {
	UserID string
	Email  string
	Role   string
}

// IsAdmin reports whether the caller holds the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == models.RoleAdmin
}

// AuthService handles business logic for authentication and authorization.
type AuthService struct {
	userRepo    repositories.UserRepository
	jwtSecret   []byte
	tokenTTL    time.Duration
	adminEmails map[string]struct{}
}

// NewAuthService creates a new AuthService. Users registering with one of
// adminEmails receive the admin role.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, tokenTTL time.Duration, adminEmails []string) *AuthService {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		admins[strings.ToLower(e)] = struct{}{}
	}
	return &AuthService{
		userRepo:    userRepo,
		jwtSecret:   []byte(jwtSecret),
		tokenTTL:    tokenTTL,
		adminEmails: admins,
	}
}

// RegisterUser hashes the password and stores a new active user.
func (s *AuthService) RegisterUser(ctx context.Context, email, password string) (*models.User, error) {
	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrEmailTaken
	}
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, apperrors.Server("could not register user", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Server("could not register user", fmt.Errorf("failed to hash password: %w", err))
	}

	role := models.RoleUser
	if _, ok := s.adminEmails[strings.ToLower(email)]; ok {
		role = models.RoleAdmin
	}

	user := &models.User{
		Email:          email,
		HashedPassword: string(hashedPassword),
		IsActive:       true,
		Role:           role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, apperrors.ErrEmailTaken
		}
		return nil, apperrors.Server("could not register user", err)
	}
	return user, nil
}

// LoginUser authenticates a user and returns a signed access token.
func (s *AuthService) LoginUser(ctx context.Context, email, password string) (string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			// do not reveal whether the email exists
			return "", apperrors.ErrInvalidCredentials
		}
		return "", apperrors.Server("could not log in", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return "", apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return "", apperrors.ErrInactiveUser
	}

	return s.issueToken(user, time.Now())
}

func (s *AuthService) issueToken(user *models.User, now time.Time) (string, error) {
	claims := Claims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", apperrors.Server("could not issue token", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a bearer token and resolves the caller.
func (s *AuthService) ValidateToken(tokenString string) (Identity, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return Identity{}, apperrors.Wrap(apperrors.ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return Identity{}, apperrors.ErrInvalidToken
	}

	return Identity{
		UserID: claims.Subject,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}

// GetUser returns the user behind an identity.
func (s *AuthService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Server("could not load user", err)
	}
	return user, nil
}
