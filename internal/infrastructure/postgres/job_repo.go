package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/erzhanov/jobtrack/internal/domain"
	"github.com/erzhanov/jobtrack/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const jobColumns = `id, company, position, status, job_type, job_location,
	       date_applied, description, created_by, created_at, updated_at`

type JobRepository struct {
	pool *pgxpool.Pool
}

func NewJobRepository(pool *pgxpool.Pool) *JobRepository {
	return &JobRepository{pool: pool}
}

func (r *JobRepository) Create(ctx context.Context, job *domain.Job) (*domain.Job, error) {
	query := `
		INSERT INTO jobs (company, position, status, job_type, job_location, date_applied, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + jobColumns

	row := r.pool.QueryRow(ctx, query,
		job.Company,
		job.Position,
		job.Status,
		job.JobType,
		job.JobLocation,
		job.DateApplied,
		job.CreatedBy,
	)
	return scanJob(row)
}

func (r *JobRepository) List(ctx context.Context, input repository.ListJobsInput) ([]*domain.Job, error) {
	args := []any{input.UserID}
	where := []string{"created_by = $1"}

	if input.Search != "" {
		args = append(args, "%"+input.Search+"%")
		where = append(where, fmt.Sprintf("(position ILIKE $%d OR company ILIKE $%d)", len(args), len(args)))
	}
	if input.Status != "" {
		args = append(args, input.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}

	var orderBy string
	switch input.Sort {
	case "latest":
		orderBy = "date_applied DESC"
	case "oldest":
		orderBy = "date_applied ASC"
	case "a-z":
		orderBy = "position ASC"
	default:
		orderBy = "created_at DESC"
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM jobs
		WHERE %s
		ORDER BY %s`,
		jobColumns, strings.Join(where, " AND "), orderBy)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*domain.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

func (r *JobRepository) UpdateFields(ctx context.Context, jobID, userID string, fields []repository.FieldUpdate) (*domain.Job, error) {
	if len(fields) == 0 {
		return nil, domain.ErrNoValidFields
	}

	// Column names come from the usecase's fixed allow-list; only the
	// values are caller-supplied, and those travel as parameters.
	args := make([]any, 0, len(fields)+2)
	set := make([]string, 0, len(fields)+1)
	for _, f := range fields {
		args = append(args, f.Value)
		set = append(set, fmt.Sprintf("%s = $%d", f.Column, len(args)))
	}
	set = append(set, "updated_at = NOW()")

	args = append(args, jobID, userID)
	query := fmt.Sprintf(`
		UPDATE jobs
		SET %s
		WHERE id = $%d AND created_by = $%d
		RETURNING `+jobColumns,
		strings.Join(set, ", "), len(args)-1, len(args))

	return scanJob(r.pool.QueryRow(ctx, query, args...))
}

func (r *JobRepository) Delete(ctx context.Context, jobID, userID string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM jobs WHERE id = $1 AND created_by = $2`,
		jobID, userID)
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

func (r *JobRepository) OpenApplications(ctx context.Context) ([]*domain.DigestEntry, error) {
	query := `
		SELECT u.id, u.username, u.email,
		       COUNT(*) FILTER (WHERE j.status = 'pending'),
		       COUNT(*) FILTER (WHERE j.status = 'interview')
		FROM users u
		JOIN jobs j ON j.created_by = u.id
		WHERE j.status IN ('pending', 'interview')
		GROUP BY u.id, u.username, u.email
		ORDER BY u.email`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("open applications: %w", err)
	}
	defer rows.Close()

	var entries []*domain.DigestEntry
	for rows.Next() {
		var e domain.DigestEntry
		if err := rows.Scan(&e.UserID, &e.Username, &e.Email, &e.Pending, &e.Interview); err != nil {
			return nil, fmt.Errorf("scan digest entry: %w", err)
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

// pgx.Row and pgx.Rows both implement this.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*domain.Job, error) {
	var j domain.Job
	err := row.Scan(
		&j.ID, &j.Company, &j.Position, &j.Status, &j.JobType, &j.JobLocation,
		&j.DateApplied, &j.Description, &j.CreatedBy, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("scan job: %w", err)
	}
	return &j, nil
}
