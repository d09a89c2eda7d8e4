package domain

import (
	"context"
	"errors"
	"time"
)

// Common domain errors
var (
	ErrNotFound             = errors.New("resource not found")
	ErrDuplicateApplication = errors.New("application already exists for this job and candidate")
)

// Job statuses. Closing is one-way: a CLOSED job never returns to ACTIVE.
const (
	JobStatusActive = "ACTIVE"
	JobStatusClosed = "CLOSED"
)

// ExperienceRange is the required experience window in whole years
type ExperienceRange struct {
	Min int `json:"min" validate:"gte=0"`
	Max int `json:"max" validate:"gtefield=Min"`
}

// SalaryRange is optional on a posting
type SalaryRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type Job struct {
	ID          int64           `json:"id"`
	RecruiterID string          `json:"recruiter_id"`
	Title       string          `json:"title" validate:"required,min=3,max=200"`
	Description string          `json:"description" validate:"required,min=20,max=5000"`
	Skills      []string        `json:"skills" validate:"required,min=1,dive,required"`
	Location    string          `json:"location" validate:"required,max=200"`
	Experience  ExperienceRange `json:"experience"`
	Salary      *SalaryRange    `json:"salary,omitempty"`
	Status      string          `json:"status"` // ACTIVE | CLOSED
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// IsOwnedBy reports whether the job belongs to the given recruiter
func (j *Job) IsOwnedBy(recruiterID string) bool {
	return j.RecruiterID == recruiterID
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id int64) (*Job, error)
	FetchActive(ctx context.Context, limit, offset int) ([]Job, int64, error)
	FetchByRecruiterID(ctx context.Context, recruiterID string, limit, offset int) ([]Job, int64, error)
	Update(ctx context.Context, job *Job) error
	UpdateStatus(ctx context.Context, id int64, status string) error
}

type JobUsecase interface {
	CreateJob(ctx context.Context, recruiterID string, job *Job) error
	GetJobDetails(ctx context.Context, id int64) (*Job, error)
	ListActiveJobs(ctx context.Context, page, pageSize int) ([]Job, int64, error)
	ListJobsByRecruiter(ctx context.Context, recruiterID string, page, pageSize int) ([]Job, int64, error)
	UpdateJob(ctx context.Context, recruiterID string, job *Job) error
	CloseJob(ctx context.Context, recruiterID string, id int64) error
}
