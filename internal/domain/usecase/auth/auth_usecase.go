package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"fintrack/internal/domain/entity"
	errs "fintrack/internal/domain/error"
	"fintrack/internal/domain/port/core"
	"fintrack/internal/domain/port/persistence"
)

// MinPasswordLength is the minimum accepted password length
const MinPasswordLength = 6

// Claims is the JWT payload issued at login. The user id is the only
// field the rest of the system trusts; name and email ride along for
// display.
type Claims struct {
	UserID uint64 `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

// UseCase implements registration, login and identity lookup. All core
// operations downstream take the authenticated user id as an explicit
// parameter; this package is the only place tokens are minted or parsed.
type UseCase struct {
	users        persistence.UserRepository
	timeProvider core.TimeProvider
	logger       core.Logger
	secret       []byte
	tokenTTL     time.Duration
}

// NewUseCase creates a new auth use case
func NewUseCase(users persistence.UserRepository, timeProvider core.TimeProvider, logger core.Logger, secret string, tokenTTL time.Duration) *UseCase {
	return &UseCase{
		users:        users,
		timeProvider: timeProvider,
		logger:       logger,
		secret:       []byte(secret),
		tokenTTL:     tokenTTL,
	}
}

// Register creates a new user with a bcrypt credential hash
func (u *UseCase) Register(ctx context.Context, name, email, password string) (*entity.User, error) {
	if len(password) < MinPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", errs.ErrValidation, MinPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrInternalServer, err.Error())
	}

	user, err := entity.NewUser(name, email, string(hash), u.timeProvider.Now())
	if err != nil {
		return nil, err
	}

	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}

	u.logger.Info("User registered", map[string]any{
		"user_id": user.ID,
		"email":   user.Email,
	})
	return user, nil
}

// Login verifies credentials and issues a signed token. A missing user
// and a wrong password produce the same error.
func (u *UseCase) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", fmt.Errorf("%w: email and password are required", errs.ErrValidation)
	}

	user, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errs.ErrUserNotFound) {
			return "", errs.ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", errs.ErrInvalidCredentials
	}

	now := u.timeProvider.Now()
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(u.tokenTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(u.secret)
	if err != nil {
		return "", fmt.Errorf("%w: %s", errs.ErrInternalServer, err.Error())
	}

	u.logger.Info("User logged in", map[string]any{
		"user_id": user.ID,
	})
	return token, nil
}

// Me returns the authenticated user's profile
func (u *UseCase) Me(ctx context.Context, userID uint64) (*entity.User, error) {
	return u.users.GetByID(ctx, userID)
}

// ParseToken validates a bearer token and returns its claims. Used by the
// HTTP auth middleware.
func (u *UseCase) ParseToken(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return u.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, errs.ErrInvalidCredentials
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || claims.UserID == 0 {
		return nil, errs.ErrInvalidCredentials
	}
	return claims, nil
}
