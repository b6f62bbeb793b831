package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"kanban_backend/internal/domain"

	"github.com/go-playground/validator/v10"
)

const (
	MaxEmailLen = 255
	MaxNameLen  = 100
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type UserStore interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type AuthService struct {
	users UserStore
}

func NewAuthService(users UserStore) *AuthService {
	return &AuthService{users: users}
}

// Register creates an account and returns it with a fresh token.
func (s *AuthService) Register(ctx context.Context, email, name, password string) (*domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateEmail(email); err != nil {
		return nil, "", err
	}
	name, err := domain.RequiredText("name", "Name", name)
	if err != nil {
		return nil, "", err
	}
	if utf8.RuneCountInString(name) > MaxNameLen {
		return nil, "", domain.Invalid("name", fmt.Sprintf("Name must be at most %d characters", MaxNameLen))
	}
	if n := utf8.RuneCountInString(password); n < MinPasswordLen || len(password) > MaxPasswordLen {
		return nil, "", domain.Invalid("password", fmt.Sprintf("Password must be between %d and %d characters", MinPasswordLen, MaxPasswordLen))
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, "", err
	}
	u := &domain.User{Email: email, Name: name, PasswordHash: hash}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, "", domain.Invalid("email", "Email is already registered")
		}
		return nil, "", err
	}

	token, err := GenerateJWT(u.ID)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Login returns domain.ErrUnauthorized for unknown emails and wrong passwords alike.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", domain.Invalid("email", "Email and password are required")
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", domain.ErrUnauthorized
		}
		return nil, "", err
	}
	ok, err := CheckPassword(u.PasswordHash, password)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		return nil, "", domain.ErrUnauthorized
	}

	token, err := GenerateJWT(u.ID)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *AuthService) User(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

func validateEmail(email string) error {
	if email == "" {
		return domain.Invalid("email", "Email is required")
	}
	if len(email) > MaxEmailLen {
		return domain.Invalid("email", fmt.Sprintf("Email must be at most %d characters", MaxEmailLen))
	}
	if validate.Var(email, "email") != nil {
		return domain.Invalid("email", "Email is not valid")
	}
	return nil
}
