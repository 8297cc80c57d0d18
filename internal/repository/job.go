package repository

import (
	"context"

	"github.com/erzhanov/jobtrack/internal/domain"
)

type ListJobsInput struct {
	UserID string
	Search string        // substring match on position/company, "" = no filter
	Status domain.Status // empty = all statuses
	Sort   string        // latest | oldest | a-z | anything else = newest-first
}

// FieldUpdate is one allow-listed column assignment of a partial update.
// Column is a storage column name, never raw caller input.
type FieldUpdate struct {
	Column string
	Value  any
}

// UseCase depends on interface, not concrete implementation.
// This way we get: 1) can swap DB later without touching usecase 2) We can pass a mock implementation of interface in tests
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) (*domain.Job, error)
	List(ctx context.Context, input ListJobsInput) ([]*domain.Job, error)

	// UpdateFields applies the given assignments to the row matching
	// id AND owner. Zero matching rows yields domain.ErrJobNotFound.
	UpdateFields(ctx context.Context, jobID, userID string, fields []FieldUpdate) (*domain.Job, error)
	Delete(ctx context.Context, jobID, userID string) error

	// OpenApplications aggregates still-open applications per user for
	// the weekly digest.
	OpenApplications(ctx context.Context) ([]*domain.DigestEntry, error)
}
