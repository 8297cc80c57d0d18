package repository

import (
	"context"

	"github.com/erzhanov/jobtrack/internal/domain"
)

type UserRepository interface {
	// Create inserts a new user and returns the stored record.
	// Returns domain.ErrDuplicateEmail if the email is taken.
	Create(ctx context.Context, username, email, passwordHash string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
