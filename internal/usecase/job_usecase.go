package usecase

import (
	"context"
	"time"

	"go-jobportal-backend/internal/domain"
	"go-jobportal-backend/pkg/apperror"
	"go-jobportal-backend/pkg/audit"
	"go-jobportal-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type jobUsecase struct {
	jobRepo  domain.JobRepository
	validate *validator.Validate
	auditLog *audit.Logger
}

func NewJobUsecase(jobRepo domain.JobRepository, validate *validator.Validate, auditLog *audit.Logger) domain.JobUsecase {
	if auditLog == nil {
		auditLog = audit.Default()
	}
	return &jobUsecase{
		jobRepo:  jobRepo,
		validate: validate,
		auditLog: auditLog,
	}
}

func (u *jobUsecase) CreateJob(ctx context.Context, recruiterID string, job *domain.Job) error {
	job.RecruiterID = recruiterID
	job.Status = domain.JobStatusActive

	if err := u.validateJob(job); err != nil {
		return err
	}

	job.CreatedAt = time.Now()
	job.UpdatedAt = time.Now()

	if err := u.jobRepo.Create(ctx, job); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (u *jobUsecase) GetJobDetails(ctx context.Context, id int64) (*domain.Job, error) {
	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFound("Job not found")
	}
	return job, nil
}

// ListActiveJobs returns only ACTIVE postings, for public/candidate pages.
// The filter is enforced server-side; clients cannot bypass it.
func (u *jobUsecase) ListActiveJobs(ctx context.Context, page, pageSize int) ([]domain.Job, int64, error) {
	limit, offset := pagination(page, pageSize)
	return u.jobRepo.FetchActive(ctx, limit, offset)
}

// ListJobsByRecruiter returns the recruiter's own postings, any status
func (u *jobUsecase) ListJobsByRecruiter(ctx context.Context, recruiterID string, page, pageSize int) ([]domain.Job, int64, error) {
	limit, offset := pagination(page, pageSize)
	return u.jobRepo.FetchByRecruiterID(ctx, recruiterID, limit, offset)
}

// UpdateJob modifies a posting's content. Only the owner may update, and the
// status never changes through this path: closing has its own operation and
// a CLOSED job stays closed.
func (u *jobUsecase) UpdateJob(ctx context.Context, recruiterID string, job *domain.Job) error {
	existing, err := u.jobRepo.GetByID(ctx, job.ID)
	if err != nil {
		return apperror.NotFound("Job not found")
	}
	if !existing.IsOwnedBy(recruiterID) {
		return apperror.Forbidden("You can only update your own jobs")
	}

	job.RecruiterID = existing.RecruiterID
	job.Status = existing.Status

	if err := u.validateJob(job); err != nil {
		return err
	}

	job.UpdatedAt = time.Now()

	if err := u.jobRepo.Update(ctx, job); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

// CloseJob is the one-way ACTIVE -> CLOSED transition. Closing an already
// closed job is an accepted no-op.
func (u *jobUsecase) CloseJob(ctx context.Context, recruiterID string, id int64) error {
	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		return apperror.NotFound("Job not found")
	}
	if !job.IsOwnedBy(recruiterID) {
		return apperror.Forbidden("You can only close your own jobs")
	}
	if job.Status == domain.JobStatusClosed {
		return nil
	}

	if err := u.jobRepo.UpdateStatus(ctx, id, domain.JobStatusClosed); err != nil {
		return apperror.Internal(err)
	}

	u.auditLog.Log(audit.Event{
		Event:   audit.EventJobClosed,
		ActorID: recruiterID,
		JobID:   id,
	})
	return nil
}

func (u *jobUsecase) validateJob(job *domain.Job) error {
	if err := u.validate.Struct(job); err != nil {
		return apperror.BadRequest(validation.Message(err))
	}
	if job.Experience.Min > job.Experience.Max {
		return apperror.BadRequest("Maximum experience must be greater than or equal to minimum experience")
	}
	if job.Salary != nil && job.Salary.Min > job.Salary.Max {
		return apperror.BadRequest("Minimum salary cannot be greater than maximum salary")
	}
	return nil
}

func pagination(page, pageSize int) (limit, offset int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	return pageSize, (page - 1) * pageSize
}
