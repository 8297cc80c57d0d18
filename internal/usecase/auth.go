package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/erzhanov/jobtrack/internal/domain"
	"github.com/erzhanov/jobtrack/internal/email"
	"github.com/erzhanov/jobtrack/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultTokenTTL = 7 * 24 * time.Hour
	defaultUsername = "New user"
)

type AuthUsecase struct {
	users      repository.UserRepository
	email      email.Sender
	logger     *slog.Logger
	jwtKey     []byte
	tokenTTL   time.Duration
	bcryptCost int
}

type AuthOption func(*AuthUsecase)

func WithTokenTTL(ttl time.Duration) AuthOption {
	return func(u *AuthUsecase) { u.tokenTTL = ttl }
}

func WithBcryptCost(cost int) AuthOption {
	return func(u *AuthUsecase) { u.bcryptCost = cost }
}

func NewAuthUsecase(users repository.UserRepository, emailSender email.Sender, jwtKey []byte, logger *slog.Logger, opts ...AuthOption) *AuthUsecase {
	u := &AuthUsecase{
		users:      users,
		email:      emailSender,
		logger:     logger.With("component", "auth_usecase"),
		jwtKey:     jwtKey,
		tokenTTL:   defaultTokenTTL,
		bcryptCost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

type AuthResult struct {
	User  *domain.User
	Token string
}

// Register creates an account and signs the caller in. The plaintext
// password never leaves this function: only its bcrypt hash is stored.
func (u *AuthUsecase) Register(ctx context.Context, name, emailAddr, password string) (*AuthResult, error) {
	if name == "" {
		name = defaultUsername
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), u.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := u.users.Create(ctx, name, emailAddr, string(hash))
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	token, err := u.issueToken(user.ID)
	if err != nil {
		return nil, err
	}

	// Best-effort: a failed welcome email must not fail registration.
	subject := "Welcome to jobtrack"
	body := fmt.Sprintf("<p>Hi %s,</p><p>Your account is ready. Good luck with the search!</p>", user.Username)
	if err := u.email.Send(ctx, user.Email, subject, body); err != nil {
		u.logger.WarnContext(ctx, "welcome email", "error", err)
	}

	return &AuthResult{User: user, Token: token}, nil
}

// Login verifies the password against the stored hash and issues a fresh
// token. Previously issued tokens stay valid until they expire.
func (u *AuthUsecase) Login(ctx context.Context, emailAddr, password string) (*AuthResult, error) {
	user, err := u.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := u.issueToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token}, nil
}

// Profile loads the public profile for an already-verified user id.
// Backs GET /auth/verify after the middleware has validated the token.
func (u *AuthUsecase) Profile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func (u *AuthUsecase) issueToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":  userID,
		"iat": now.Unix(),
		"exp": now.Add(u.tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(u.jwtKey)
	if err != nil {
		return "", fmt.Errorf("sign jwt: %w", err)
	}
	return signed, nil
}
