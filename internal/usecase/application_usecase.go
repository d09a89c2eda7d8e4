package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-jobportal-backend/internal/domain"
	"go-jobportal-backend/internal/scoring"
	"go-jobportal-backend/pkg/apperror"
	"go-jobportal-backend/pkg/audit"

	"github.com/tiendc/go-deepcopy"
)

type applicationUsecase struct {
	applicationRepo domain.ApplicationRepository
	jobRepo         domain.JobRepository
	candidateRepo   domain.CandidateRepository
	resumeExtractor domain.ResumeTextExtractor
	auditLog        *audit.Logger
	exportMaxRows   int
}

// NewApplicationUsecase creates a new application usecase. resumeExtractor
// may be nil when free-text resume support is disabled.
func NewApplicationUsecase(
	appRepo domain.ApplicationRepository,
	jobRepo domain.JobRepository,
	candidateRepo domain.CandidateRepository,
	resumeExtractor domain.ResumeTextExtractor,
	auditLog *audit.Logger,
	exportMaxRows int,
) domain.ApplicationUsecase {
	if exportMaxRows <= 0 {
		exportMaxRows = 10000
	}
	if auditLog == nil {
		auditLog = audit.Default()
	}
	return &applicationUsecase{
		applicationRepo: appRepo,
		jobRepo:         jobRepo,
		candidateRepo:   candidateRepo,
		resumeExtractor: resumeExtractor,
		auditLog:        auditLog,
		exportMaxRows:   exportMaxRows,
	}
}

// SubmitApplication creates an application for an active job: the candidate
// profile is frozen into a snapshot, scored, and stored in APPLIED state.
// The duplicate pre-check is advisory; the repository's unique index is the
// authority and its violation surfaces as the same conflict signal.
func (uc *applicationUsecase) SubmitApplication(ctx context.Context, candidateID string, jobID int64, resumeURL string) (*domain.Application, error) {
	// 1. Validate job exists and accepts applications
	job, err := uc.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, apperror.NotFound("Job not found")
	}
	if job.Status != domain.JobStatusActive {
		return nil, apperror.JobNotActive("This job is no longer accepting applications")
	}

	// 2. Load the profile to snapshot and score
	profile, err := uc.candidateRepo.GetByUserID(ctx, candidateID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.Internal(err)
	}
	if profile == nil && resumeURL == "" {
		return nil, apperror.BadRequest("Complete your profile or attach a resume before applying")
	}

	// 3. Duplicate pre-check (advisory, see Create below for the race case)
	exists, err := uc.applicationRepo.Exists(ctx, jobID, candidateID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, apperror.DuplicateApplication("You have already applied to this job")
	}

	// 4. Freeze the profile: a deep, independent copy so later edits cannot
	// change this application's score explanation
	var snapshot domain.CandidateProfile
	if profile != nil {
		if err := deepcopy.Copy(&snapshot, profile); err != nil {
			return nil, apperror.Internal(err)
		}
	}

	// 5. Score
	result := uc.score(ctx, profile, job, resumeURL)

	var resumeURLPtr *string
	if resumeURL != "" {
		resumeURLPtr = &resumeURL
	}

	app := &domain.Application{
		JobID:           jobID,
		CandidateID:     candidateID,
		ResumeURL:       resumeURLPtr,
		ProfileSnapshot: snapshot,
		Status:          domain.StatusApplied,
		Score:           result.Score,
		Breakdown:       result.Breakdown,
		AppliedAt:       time.Now(),
	}

	if err := uc.applicationRepo.Create(ctx, app); err != nil {
		// Two concurrent submissions can both pass the pre-check; the unique
		// (job, candidate) index decides, and the loser gets the same
		// conflict signal as the pre-check path
		if errors.Is(err, domain.ErrDuplicateApplication) {
			return nil, apperror.DuplicateApplication("You have already applied to this job")
		}
		return nil, apperror.Internal(err)
	}

	uc.auditLog.Log(audit.Event{
		Event:         audit.EventApplicationSubmitted,
		ActorID:       candidateID,
		ApplicationID: app.ID,
		JobID:         jobID,
		ToStatus:      app.Status,
		Score:         app.Score,
	})

	return app, nil
}

// score picks the feature source. The structured profile is primary; the
// free-text variant only covers candidates without a stored profile, and a
// failed text fetch degrades to a zero score with an error-tagged breakdown
// so the submission itself never blocks on an unscoreable resume.
func (uc *applicationUsecase) score(ctx context.Context, profile *domain.CandidateProfile, job *domain.Job, resumeURL string) scoring.Result {
	if profile != nil {
		return scoring.Evaluate(scoring.ExtractFeatures(profile, job), job.Experience)
	}

	if uc.resumeExtractor == nil {
		result := scoring.ErrorResult(job.Experience, errors.New("resume text extraction not configured"))
		uc.auditLog.Log(audit.Event{Event: audit.EventScoringDegraded, JobID: job.ID, Detail: result.Breakdown.Error})
		return result
	}

	text, err := uc.resumeExtractor.ExtractText(ctx, resumeURL)
	if err != nil {
		result := scoring.ErrorResult(job.Experience, err)
		uc.auditLog.Log(audit.Event{Event: audit.EventScoringDegraded, JobID: job.ID, Detail: result.Breakdown.Error})
		return result
	}

	return scoring.Evaluate(scoring.ExtractTextFeatures(text, job), job.Experience)
}

// GetMyApplications returns the candidate's own applications, newest first,
// optionally narrowed to one status
func (uc *applicationUsecase) GetMyApplications(ctx context.Context, candidateID string, status string) ([]domain.Application, error) {
	if status != "" && !domain.ValidApplicationStatus(status) {
		return nil, apperror.BadRequest("Invalid status. Must be one of: " + strings.Join(domain.ApplicationStatuses, ", "))
	}
	apps, err := uc.applicationRepo.GetByCandidateID(ctx, candidateID, domain.ApplicationFilter{Status: status})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return apps, nil
}

// GetMyApplication returns one application, only to the candidate who owns it
func (uc *applicationUsecase) GetMyApplication(ctx context.Context, candidateID string, applicationID int64) (*domain.Application, error) {
	app, err := uc.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, apperror.NotFound("Application not found")
	}
	if app.CandidateID != candidateID {
		return nil, apperror.Forbidden("You can only view your own applications")
	}
	return app, nil
}

// ListByJobID returns the applications for a job the recruiter owns
func (uc *applicationUsecase) ListByJobID(ctx context.Context, recruiterID string, jobID int64, filter domain.ApplicationFilter) ([]domain.Application, error) {
	if filter.Status != "" && !domain.ValidApplicationStatus(filter.Status) {
		return nil, apperror.BadRequest("Invalid status. Must be one of: " + strings.Join(domain.ApplicationStatuses, ", "))
	}
	if _, err := uc.ownedJob(ctx, recruiterID, jobID); err != nil {
		return nil, err
	}
	apps, err := uc.applicationRepo.GetByJobID(ctx, jobID, filter)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return apps, nil
}

// UpdateApplicationStatus moves an application through the status table on
// behalf of the recruiter who owns the job
func (uc *applicationUsecase) UpdateApplicationStatus(ctx context.Context, recruiterID string, applicationID int64, status string) (*domain.Application, error) {
	if !domain.ValidApplicationStatus(status) {
		return nil, apperror.BadRequest("Invalid status. Must be one of: " + strings.Join(domain.ApplicationStatuses, ", "))
	}

	app, err := uc.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, apperror.NotFound("Application not found")
	}

	if _, err := uc.ownedJob(ctx, recruiterID, app.JobID); err != nil {
		return nil, err
	}

	if !domain.CanTransition(app.Status, status) {
		uc.auditLog.Log(audit.Event{
			Event:         audit.EventTransitionDenied,
			ActorID:       recruiterID,
			ApplicationID: applicationID,
			JobID:         app.JobID,
			FromStatus:    app.Status,
			ToStatus:      status,
		})
		if app.Status == domain.StatusHired {
			return nil, apperror.InvalidTransition("Cannot change status of a hired candidate")
		}
		if app.Status == domain.StatusRejected && status == domain.StatusHired {
			return nil, apperror.InvalidTransition("Cannot hire a rejected candidate directly. Shortlist them first.")
		}
		return nil, apperror.InvalidTransition("Transition from " + app.Status + " to " + status + " is not allowed")
	}

	// Compare-and-set on the current status so a concurrent update cannot
	// slip past the transition check
	if err := uc.applicationRepo.UpdateStatus(ctx, applicationID, app.Status, status); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.InvalidTransition("Application status changed concurrently, please retry")
		}
		return nil, apperror.Internal(err)
	}

	uc.auditLog.Log(audit.Event{
		Event:         audit.EventStatusChanged,
		ActorID:       recruiterID,
		ApplicationID: applicationID,
		JobID:         app.JobID,
		FromStatus:    app.Status,
		ToStatus:      status,
	})

	app.Status = status
	app.UpdatedAt = time.Now()
	return app, nil
}

// ownedJob loads a job and enforces recruiter ownership. A job owned by
// someone else is access-denied, a missing job is not-found; the two are
// deliberately distinct signals.
func (uc *applicationUsecase) ownedJob(ctx context.Context, recruiterID string, jobID int64) (*domain.Job, error) {
	job, err := uc.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, apperror.NotFound("Job not found")
	}
	if !job.IsOwnedBy(recruiterID) {
		return nil, apperror.Forbidden("You can only access applications for your own jobs")
	}
	return job, nil
}
