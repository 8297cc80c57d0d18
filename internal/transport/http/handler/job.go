package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/erzhanov/jobtrack/internal/domain"
	"github.com/erzhanov/jobtrack/internal/usecase"
	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

// jobUsecaser is the subset of JobUsecase the handler needs.
type jobUsecaser interface {
	CreateJob(ctx context.Context, input usecase.CreateJobInput) (*domain.Job, error)
	ListJobs(ctx context.Context, input usecase.ListJobsInput) ([]*domain.Job, error)
	UpdateFields(ctx context.Context, jobID, userID string, fields map[string]any) (*domain.Job, error)
	DeleteJob(ctx context.Context, jobID, userID string) error
}

type JobHandler struct {
	jobUsecase jobUsecaser
	logger     *slog.Logger
}

func NewJobHandler(jobUsecase jobUsecaser, logger *slog.Logger) *JobHandler {
	return &JobHandler{jobUsecase: jobUsecase, logger: logger.With("component", "job_handler")}
}

type createJobRequest struct {
	Company     string `json:"company"     binding:"required,max=256"`
	Position    string `json:"position"    binding:"required,max=256"`
	Status      string `json:"status"      binding:"omitempty,oneof=pending interview declined offered"`
	JobType     string `json:"jobType"     binding:"omitempty,max=128"`
	JobLocation string `json:"jobLocation" binding:"omitempty,max=256"`
	DateApplied string `json:"dateApplied" binding:"omitempty,datetime=2006-01-02"`
}

type jobResponse struct {
	ID          string        `json:"id"`
	Company     string        `json:"company"`
	Position    string        `json:"position"`
	Status      domain.Status `json:"status"`
	JobType     string        `json:"jobType"`
	JobLocation string        `json:"jobLocation"`
	DateApplied string        `json:"dateApplied"`
	Description *string       `json:"description,omitempty"`
	CreatedBy   string        `json:"createdBy"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

func toJobResponse(j *domain.Job) jobResponse {
	return jobResponse{
		ID:          j.ID,
		Company:     j.Company,
		Position:    j.Position,
		Status:      j.Status,
		JobType:     j.JobType,
		JobLocation: j.JobLocation,
		DateApplied: j.DateApplied.Format(dateLayout),
		Description: j.Description,
		CreatedBy:   j.CreatedBy,
		CreatedAt:   j.CreatedAt,
		UpdatedAt:   j.UpdatedAt,
	}
}

// GET /jobs?search=&status=&sort=
func (h *JobHandler) List(c *gin.Context) {
	jobs, err := h.jobUsecase.ListJobs(c.Request.Context(), usecase.ListJobsInput{
		UserID: c.GetString("userID"),
		Search: c.Query("search"),
		Status: c.Query("status"),
		Sort:   c.Query("sort"),
	})
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "list jobs", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	items := make([]jobResponse, len(jobs))
	for i, j := range jobs {
		items[i] = toJobResponse(j)
	}
	c.JSON(http.StatusOK, items)
}

// POST /jobs
func (h *JobHandler) Create(c *gin.Context) {
	var req createJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	job, err := h.jobUsecase.CreateJob(c.Request.Context(), usecase.CreateJobInput{
		UserID:      c.GetString("userID"),
		Company:     req.Company,
		Position:    req.Position,
		Status:      req.Status,
		JobType:     req.JobType,
		JobLocation: req.JobLocation,
		DateApplied: req.DateApplied,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidStatus})
		case errors.Is(err, domain.ErrInvalidDate):
			c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidDate})
		default:
			h.logger.ErrorContext(c.Request.Context(), "create job", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		}
		return
	}

	c.JSON(http.StatusOK, toJobResponse(job))
}

// PATCH /jobs/:id
// The body is an arbitrary JSON object; the usecase keeps only the
// allow-listed fields, so unknown keys are dropped rather than rejected.
func (h *JobHandler) Update(c *gin.Context) {
	jobID := c.Param("id")

	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	job, err := h.jobUsecase.UpdateFields(c.Request.Context(), jobID, c.GetString("userID"), fields)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoFields):
			c.JSON(http.StatusBadRequest, gin.H{"error": errNoFields})
		case errors.Is(err, domain.ErrNoValidFields):
			c.JSON(http.StatusBadRequest, gin.H{"error": errNoValidFields})
		case errors.Is(err, domain.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidStatus})
		case errors.Is(err, domain.ErrInvalidDate):
			c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidDate})
		case errors.Is(err, domain.ErrJobNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": errJobNotFound})
		default:
			h.logger.ErrorContext(c.Request.Context(), "update job", "job_id", jobID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		}
		return
	}

	c.JSON(http.StatusOK, toJobResponse(job))
}

// DELETE /jobs/:id
func (h *JobHandler) Delete(c *gin.Context) {
	jobID := c.Param("id")

	if err := h.jobUsecase.DeleteJob(c.Request.Context(), jobID, c.GetString("userID")); err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errJobNotFound})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "delete job", "job_id", jobID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Job deleted!"})
}
