package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/erzhanov/jobtrack/internal/domain"
	"github.com/erzhanov/jobtrack/internal/repository"
)

const dateLayout = "2006-01-02"

// updatableFields is the fixed allow-list for partial updates, mapping
// wire field names to storage columns. Anything else in a PATCH body is
// dropped without error — notably the owner column can never be written.
var updatableFields = []struct {
	name   string
	column string
}{
	{"company", "company"},
	{"position", "position"},
	{"status", "status"},
	{"jobType", "job_type"},
	{"jobLocation", "job_location"},
	{"dateApplied", "date_applied"},
}

type JobUsecase struct {
	repo repository.JobRepository
}

func NewJobUsecase(repo repository.JobRepository) *JobUsecase {
	return &JobUsecase{repo: repo}
}

type CreateJobInput struct {
	UserID      string
	Company     string
	Position    string
	Status      string
	JobType     string
	JobLocation string
	DateApplied string // YYYY-MM-DD, empty = today
}

func (u *JobUsecase) CreateJob(ctx context.Context, input CreateJobInput) (*domain.Job, error) {
	status := domain.StatusPending
	if input.Status != "" {
		status = domain.Status(input.Status)
		if !status.Valid() {
			return nil, domain.ErrInvalidStatus
		}
	}

	dateApplied := time.Now()
	if input.DateApplied != "" {
		var err error
		dateApplied, err = time.Parse(dateLayout, input.DateApplied)
		if err != nil {
			return nil, domain.ErrInvalidDate
		}
	}

	// Owner comes from the authenticated caller, never the request body.
	job := &domain.Job{
		Company:     input.Company,
		Position:    input.Position,
		Status:      status,
		JobType:     input.JobType,
		JobLocation: input.JobLocation,
		DateApplied: dateApplied,
		CreatedBy:   input.UserID,
	}

	created, err := u.repo.Create(ctx, job)
	if err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}
	return created, nil
}

type ListJobsInput struct {
	UserID string
	Search string
	Status string
	Sort   string
}

func (u *JobUsecase) ListJobs(ctx context.Context, input ListJobsInput) ([]*domain.Job, error) {
	status := domain.Status(input.Status)
	if input.Status == "all" {
		status = ""
	}

	jobs, err := u.repo.List(ctx, repository.ListJobsInput{
		UserID: input.UserID,
		Search: input.Search,
		Status: status,
		Sort:   input.Sort,
	})
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return jobs, nil
}

// UpdateFields applies a partial update. The body may carry any keys;
// only allow-listed ones are kept, in a fixed order. An empty body and a
// body with zero recognized keys are distinct errors.
func (u *JobUsecase) UpdateFields(ctx context.Context, jobID, userID string, fields map[string]any) (*domain.Job, error) {
	if len(fields) == 0 {
		return nil, domain.ErrNoFields
	}

	updates := make([]repository.FieldUpdate, 0, len(updatableFields))
	for _, f := range updatableFields {
		value, ok := fields[f.name]
		if !ok {
			continue
		}

		switch f.name {
		case "status":
			s, ok := value.(string)
			if !ok || !domain.Status(s).Valid() {
				return nil, domain.ErrInvalidStatus
			}
			value = s
		case "dateApplied":
			s, ok := value.(string)
			if !ok {
				return nil, domain.ErrInvalidDate
			}
			parsed, err := time.Parse(dateLayout, s)
			if err != nil {
				return nil, domain.ErrInvalidDate
			}
			value = parsed
		}

		updates = append(updates, repository.FieldUpdate{Column: f.column, Value: value})
	}

	if len(updates) == 0 {
		return nil, domain.ErrNoValidFields
	}

	job, err := u.repo.UpdateFields(ctx, jobID, userID, updates)
	if err != nil {
		return nil, fmt.Errorf("update job: %w", err)
	}
	return job, nil
}

func (u *JobUsecase) DeleteJob(ctx context.Context, jobID, userID string) error {
	return u.repo.Delete(ctx, jobID, userID)
}
