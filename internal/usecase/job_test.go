package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/erzhanov/jobtrack/internal/domain"
	"github.com/erzhanov/jobtrack/internal/repository"
	"github.com/erzhanov/jobtrack/internal/usecase"
)

// fakeJobRepo captures what the usecase hands to the storage layer.
type fakeJobRepo struct {
	createdJob   *domain.Job
	listInput    repository.ListJobsInput
	updateFields []repository.FieldUpdate
	updateJobID  string
	updateUserID string
	updateErr    error
	deleteErr    error
}

func (r *fakeJobRepo) Create(_ context.Context, job *domain.Job) (*domain.Job, error) {
	r.createdJob = job
	return job, nil
}

func (r *fakeJobRepo) List(_ context.Context, input repository.ListJobsInput) ([]*domain.Job, error) {
	r.listInput = input
	return nil, nil
}

func (r *fakeJobRepo) UpdateFields(_ context.Context, jobID, userID string, fields []repository.FieldUpdate) (*domain.Job, error) {
	r.updateJobID = jobID
	r.updateUserID = userID
	r.updateFields = fields
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	return &domain.Job{ID: jobID, CreatedBy: userID}, nil
}

func (r *fakeJobRepo) Delete(_ context.Context, _, _ string) error {
	return r.deleteErr
}

func (r *fakeJobRepo) OpenApplications(_ context.Context) ([]*domain.DigestEntry, error) {
	return nil, nil
}

// ---- CreateJob ----

func TestCreateJob_DefaultsStatusToPending(t *testing.T) {
	repo := &fakeJobRepo{}
	uc := usecase.NewJobUsecase(repo)

	job, err := uc.CreateJob(context.Background(), usecase.CreateJobInput{
		UserID:   "user-1",
		Company:  "Acme",
		Position: "Eng",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if job.Status != domain.StatusPending {
		t.Fatalf("status = %q, want pending", job.Status)
	}
}

func TestCreateJob_OwnerIsForcedToCaller(t *testing.T) {
	repo := &fakeJobRepo{}
	uc := usecase.NewJobUsecase(repo)

	_, err := uc.CreateJob(context.Background(), usecase.CreateJobInput{
		UserID:   "user-1",
		Company:  "Acme",
		Position: "Eng",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if repo.createdJob.CreatedBy != "user-1" {
		t.Fatalf("created_by = %q, want user-1", repo.createdJob.CreatedBy)
	}
}

func TestCreateJob_InvalidStatus(t *testing.T) {
	uc := usecase.NewJobUsecase(&fakeJobRepo{})

	_, err := uc.CreateJob(context.Background(), usecase.CreateJobInput{
		UserID:   "user-1",
		Company:  "Acme",
		Position: "Eng",
		Status:   "ghosted",
	})
	if !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("err = %v, want ErrInvalidStatus", err)
	}
}

func TestCreateJob_ParsesDateApplied(t *testing.T) {
	repo := &fakeJobRepo{}
	uc := usecase.NewJobUsecase(repo)

	_, err := uc.CreateJob(context.Background(), usecase.CreateJobInput{
		UserID:      "user-1",
		Company:     "Acme",
		Position:    "Eng",
		DateApplied: "2026-08-15",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	want := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	if !repo.createdJob.DateApplied.Equal(want) {
		t.Fatalf("date_applied = %v, want %v", repo.createdJob.DateApplied, want)
	}
}

func TestCreateJob_BadDate(t *testing.T) {
	uc := usecase.NewJobUsecase(&fakeJobRepo{})

	_, err := uc.CreateJob(context.Background(), usecase.CreateJobInput{
		UserID:      "user-1",
		Company:     "Acme",
		Position:    "Eng",
		DateApplied: "15/08/2026",
	})
	if !errors.Is(err, domain.ErrInvalidDate) {
		t.Fatalf("err = %v, want ErrInvalidDate", err)
	}
}

// ---- ListJobs ----

func TestListJobs_AllMeansNoStatusFilter(t *testing.T) {
	repo := &fakeJobRepo{}
	uc := usecase.NewJobUsecase(repo)

	if _, err := uc.ListJobs(context.Background(), usecase.ListJobsInput{
		UserID: "user-1",
		Status: "all",
	}); err != nil {
		t.Fatalf("list: %v", err)
	}
	if repo.listInput.Status != "" {
		t.Fatalf("status filter = %q, want empty", repo.listInput.Status)
	}
	if repo.listInput.UserID != "user-1" {
		t.Fatalf("user id = %q, want user-1", repo.listInput.UserID)
	}
}

func TestListJobs_PassesFilters(t *testing.T) {
	repo := &fakeJobRepo{}
	uc := usecase.NewJobUsecase(repo)

	if _, err := uc.ListJobs(context.Background(), usecase.ListJobsInput{
		UserID: "user-1",
		Search: "engineer",
		Status: "interview",
		Sort:   "a-z",
	}); err != nil {
		t.Fatalf("list: %v", err)
	}
	if repo.listInput.Search != "engineer" || repo.listInput.Status != domain.StatusInterview || repo.listInput.Sort != "a-z" {
		t.Fatalf("list input = %+v", repo.listInput)
	}
}

// ---- UpdateFields ----

func TestUpdateFields_EmptyBody(t *testing.T) {
	uc := usecase.NewJobUsecase(&fakeJobRepo{})

	_, err := uc.UpdateFields(context.Background(), "job-1", "user-1", map[string]any{})
	if !errors.Is(err, domain.ErrNoFields) {
		t.Fatalf("err = %v, want ErrNoFields", err)
	}
}

func TestUpdateFields_NothingRecognized(t *testing.T) {
	uc := usecase.NewJobUsecase(&fakeJobRepo{})

	_, err := uc.UpdateFields(context.Background(), "job-1", "user-1", map[string]any{
		"createdBy": "someone-else",
		"salary":    "lots",
	})
	if !errors.Is(err, domain.ErrNoValidFields) {
		t.Fatalf("err = %v, want ErrNoValidFields", err)
	}
}

func TestUpdateFields_UnknownKeysAreDroppedSilently(t *testing.T) {
	repo := &fakeJobRepo{}
	uc := usecase.NewJobUsecase(repo)

	_, err := uc.UpdateFields(context.Background(), "job-1", "user-1", map[string]any{
		"company":   "Globex",
		"createdBy": "someone-else", // must never reach the repo
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if len(repo.updateFields) != 1 {
		t.Fatalf("got %d field updates, want 1: %+v", len(repo.updateFields), repo.updateFields)
	}
	if repo.updateFields[0].Column != "company" || repo.updateFields[0].Value != "Globex" {
		t.Fatalf("field update = %+v", repo.updateFields[0])
	}
}

func TestUpdateFields_MapsWireNamesToColumns(t *testing.T) {
	repo := &fakeJobRepo{}
	uc := usecase.NewJobUsecase(repo)

	_, err := uc.UpdateFields(context.Background(), "job-1", "user-1", map[string]any{
		"jobType":     "contract",
		"jobLocation": "Remote",
		"dateApplied": "2026-08-15",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	got := map[string]any{}
	for _, f := range repo.updateFields {
		got[f.Column] = f.Value
	}
	if got["job_type"] != "contract" {
		t.Fatalf("job_type = %v", got["job_type"])
	}
	if got["job_location"] != "Remote" {
		t.Fatalf("job_location = %v", got["job_location"])
	}
	date, ok := got["date_applied"].(time.Time)
	if !ok || !date.Equal(time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("date_applied = %v", got["date_applied"])
	}
}

func TestUpdateFields_InvalidStatusValue(t *testing.T) {
	uc := usecase.NewJobUsecase(&fakeJobRepo{})

	_, err := uc.UpdateFields(context.Background(), "job-1", "user-1", map[string]any{
		"status": "ghosted",
	})
	if !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("err = %v, want ErrInvalidStatus", err)
	}
}

func TestUpdateFields_NotFoundOrForbiddenPropagates(t *testing.T) {
	repo := &fakeJobRepo{updateErr: domain.ErrJobNotFound}
	uc := usecase.NewJobUsecase(repo)

	_, err := uc.UpdateFields(context.Background(), "job-1", "user-2", map[string]any{
		"company": "Globex",
	})
	if !errors.Is(err, domain.ErrJobNotFound) {
		t.Fatalf("err = %v, want ErrJobNotFound", err)
	}
}

// ---- DeleteJob ----

func TestDeleteJob_NotFoundOrForbidden(t *testing.T) {
	repo := &fakeJobRepo{deleteErr: domain.ErrJobNotFound}
	uc := usecase.NewJobUsecase(repo)

	err := uc.DeleteJob(context.Background(), "job-1", "user-2")
	if !errors.Is(err, domain.ErrJobNotFound) {
		t.Fatalf("err = %v, want ErrJobNotFound", err)
	}
}
