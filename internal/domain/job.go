package domain

import (
	"errors"
	"time"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusInterview Status = "interview"
	StatusDeclined  Status = "declined"
	StatusOffered   Status = "offered"
)

// Valid reports whether s is one of the known application states.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInterview, StatusDeclined, StatusOffered:
		return true
	}
	return false
}

var (
	// ErrJobNotFound covers both "no such job" and "job owned by someone
	// else" — the two cases are deliberately indistinguishable so that a
	// caller cannot probe for other users' record IDs.
	ErrJobNotFound = errors.New("job not found or not permitted")

	ErrNoFields      = errors.New("no fields to update")
	ErrNoValidFields = errors.New("no valid fields to update")
	ErrInvalidStatus = errors.New("invalid job status")
	ErrInvalidDate   = errors.New("invalid date, expected YYYY-MM-DD")
)

type Job struct {
	ID          string
	Company     string
	Position    string
	Status      Status
	JobType     string
	JobLocation string
	DateApplied time.Time
	Description *string

	CreatedBy string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DigestEntry is one row of the weekly open-applications digest:
// a user and how many of their applications are still in play.
type DigestEntry struct {
	UserID    string
	Username  string
	Email     string
	Pending   int
	Interview int
}
