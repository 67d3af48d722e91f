package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 7 * 24 * time.Hour

type Service struct {
	Users  UserStore
	Secret []byte
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

func (r RegisterRequest) validate() error {
	if r.Name == "" {
		return ValidationError{Field: "name", Reason: "required"}
	}
	if r.Email == "" {
		return ValidationError{Field: "email", Reason: "required"}
	}
	if r.Password == "" {
		return ValidationError{Field: "password", Reason: "required"}
	}
	if !r.Role.Valid() {
		return ValidationError{Field: "role", Reason: "must be buyer or seller"}
	}
	return nil
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (User, error) {
	if err := req.validate(); err != nil {
		return User{}, err
	}
	if _, err := s.Users.GetByEmail(ctx, req.Email); err == nil {
		return User{}, ErrEmailTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return User{}, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}
	return s.Users.Create(ctx, User{
		Name:         req.Name,
		Email:        req.Email,
		Role:         req.Role,
		PasswordHash: string(hash),
	})
}

// Login verifies credentials and issues a signed token. Both unknown email
// and wrong password return the same error.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", ErrUnauthorized
		}
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", ErrUnauthorized
	}
	claims := jwt.MapClaims{
		"email": u.Email,
		"exp":   time.Now().Add(tokenTTL).Unix(),
		"iat":   time.Now().Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(s.Secret)
}

// Verify resolves a bearer token to the caller identity.
func (s *Service) Verify(ctx context.Context, token string) (Identity, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.Secret, nil
	})
	if err != nil || !parsed.Valid {
		return Identity{}, ErrUnauthorized
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrUnauthorized
	}
	email, _ := claims["email"].(string)
	if email == "" {
		return Identity{}, ErrUnauthorized
	}
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return Identity{}, ErrUnauthorized
	}
	return Identity{ID: u.ID, Email: u.Email, Role: u.Role}, nil
}
