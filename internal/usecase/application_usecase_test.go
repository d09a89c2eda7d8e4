package usecase_test

import (
	"context"
	"errors"
	"testing"

	"go-jobportal-backend/internal/domain"
	"go-jobportal-backend/internal/usecase"
	"go-jobportal-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Mock Repositories

type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) Create(ctx context.Context, app *domain.Application) error {
	return m.Called(ctx, app).Error(0)
}

func (m *MockApplicationRepo) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *MockApplicationRepo) GetByJobID(ctx context.Context, jobID int64, filter domain.ApplicationFilter) ([]domain.Application, error) {
	args := m.Called(ctx, jobID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}

func (m *MockApplicationRepo) GetByCandidateID(ctx context.Context, candidateID string, filter domain.ApplicationFilter) ([]domain.Application, error) {
	args := m.Called(ctx, candidateID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}

func (m *MockApplicationRepo) Exists(ctx context.Context, jobID int64, candidateID string) (bool, error) {
	args := m.Called(ctx, jobID, candidateID)
	return args.Bool(0), args.Error(1)
}

func (m *MockApplicationRepo) UpdateStatus(ctx context.Context, id int64, fromStatus, toStatus string) error {
	return m.Called(ctx, id, fromStatus, toStatus).Error(0)
}

type MockJobRepo struct {
	mock.Mock
}

func (m *MockJobRepo) Create(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}

func (m *MockJobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobRepo) FetchActive(ctx context.Context, limit, offset int) ([]domain.Job, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Job), args.Get(1).(int64), args.Error(2)
}

func (m *MockJobRepo) FetchByRecruiterID(ctx context.Context, recruiterID string, limit, offset int) ([]domain.Job, int64, error) {
	args := m.Called(ctx, recruiterID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Job), args.Get(1).(int64), args.Error(2)
}

func (m *MockJobRepo) Update(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}

func (m *MockJobRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

type MockCandidateRepo struct {
	mock.Mock
}

func (m *MockCandidateRepo) GetByUserID(ctx context.Context, userID string) (*domain.CandidateProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CandidateProfile), args.Error(1)
}

func (m *MockCandidateRepo) Create(ctx context.Context, profile *domain.CandidateProfile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockCandidateRepo) Update(ctx context.Context, profile *domain.CandidateProfile) error {
	return m.Called(ctx, profile).Error(0)
}

type MockResumeExtractor struct {
	mock.Mock
}

func (m *MockResumeExtractor) ExtractText(ctx context.Context, resumeURL string) (string, error) {
	args := m.Called(ctx, resumeURL)
	return args.String(0), args.Error(1)
}

// Fixtures

func activeJob() *domain.Job {
	return &domain.Job{
		ID:          10,
		RecruiterID: "recruiter1",
		Title:       "Backend Engineer",
		Description: "Build and operate our Go services in production.",
		Skills:      []string{"Go", "PostgreSQL", "Docker", "Kubernetes"},
		Location:    "Jakarta",
		Experience:  domain.ExperienceRange{Min: 2, Max: 5},
		Status:      domain.JobStatusActive,
	}
}

func candidateProfile() *domain.CandidateProfile {
	return &domain.CandidateProfile{
		ID:       1,
		UserID:   "cand1",
		Headline: "Backend Engineer in Jakarta",
		About:    "Go developer with a university degree.",
		Skills:   []string{"Go", "PostgreSQL"},
		Education: []domain.Education{
			{School: "ITB", Degree: "Bachelor", FieldOfStudy: "CS"},
		},
	}
}

func newApplicationUC(appRepo *MockApplicationRepo, jobRepo *MockJobRepo, candRepo *MockCandidateRepo, extractor domain.ResumeTextExtractor) domain.ApplicationUsecase {
	return usecase.NewApplicationUsecase(appRepo, jobRepo, candRepo, extractor, nil, 0)
}

func TestSubmitApplicationGuards(t *testing.T) {
	ctx := context.Background()

	t.Run("Should fail when job does not exist", func(t *testing.T) {
		appRepo, jobRepo, candRepo := new(MockApplicationRepo), new(MockJobRepo), new(MockCandidateRepo)
		jobRepo.On("GetByID", ctx, int64(10)).Return(nil, domain.ErrNotFound)

		uc := newApplicationUC(appRepo, jobRepo, candRepo, nil)
		_, err := uc.SubmitApplication(ctx, "cand1", 10, "")
		assert.Error(t, err)
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})

	t.Run("Should fail when job is closed", func(t *testing.T) {
		appRepo, jobRepo, candRepo := new(MockApplicationRepo), new(MockJobRepo), new(MockCandidateRepo)
		job := activeJob()
		job.Status = domain.JobStatusClosed
		jobRepo.On("GetByID", ctx, int64(10)).Return(job, nil)

		uc := newApplicationUC(appRepo, jobRepo, candRepo, nil)
		_, err := uc.SubmitApplication(ctx, "cand1", 10, "")
		assert.Error(t, err)
		assert.Equal(t, apperror.KindJobNotActive, apperror.KindOf(err))
	})

	t.Run("Should fail when candidate has no profile and no resume", func(t *testing.T) {
		appRepo, jobRepo, candRepo := new(MockApplicationRepo), new(MockJobRepo), new(MockCandidateRepo)
		jobRepo.On("GetByID", ctx, int64(10)).Return(activeJob(), nil)
		candRepo.On("GetByUserID", ctx, "cand1").Return(nil, domain.ErrNotFound)

		uc := newApplicationUC(appRepo, jobRepo, candRepo, nil)
		_, err := uc.SubmitApplication(ctx, "cand1", 10, "")
		assert.Error(t, err)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})

	t.Run("Should reject a duplicate caught by the pre-check", func(t *testing.T) {
		appRepo, jobRepo, candRepo := new(MockApplicationRepo), new(MockJobRepo), new(MockCandidateRepo)
		jobRepo.On("GetByID", ctx, int64(10)).Return(activeJob(), nil)
		candRepo.On("GetByUserID", ctx, "cand1").Return(candidateProfile(), nil)
		appRepo.On("Exists", ctx, int64(10), "cand1").Return(true, nil)

		uc := newApplicationUC(appRepo, jobRepo, candRepo, nil)
		_, err := uc.SubmitApplication(ctx, "cand1", 10, "")
		assert.Error(t, err)
		assert.Equal(t, apperror.KindDuplicateApplication, apperror.KindOf(err))
		appRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should reject a duplicate that races past the pre-check", func(t *testing.T) {
		appRepo, jobRepo, candRepo := new(MockApplicationRepo), new(MockJobRepo), new(MockCandidateRepo)
		jobRepo.On("GetByID", ctx, int64(10)).Return(activeJob(), nil)
		candRepo.On("GetByUserID", ctx, "cand1").Return(candidateProfile(), nil)
		appRepo.On("Exists", ctx, int64(10), "cand1").Return(false, nil)
		appRepo.On("Create", ctx, mock.AnythingOfType("*domain.Application")).Return(domain.ErrDuplicateApplication)

		uc := newApplicationUC(appRepo, jobRepo, candRepo, nil)
		_, err := uc.SubmitApplication(ctx, "cand1", 10, "")
		assert.Error(t, err)
		// Same conflict signal on both paths
		assert.Equal(t, apperror.KindDuplicateApplication, apperror.KindOf(err))
	})
}

func TestSubmitApplicationScoring(t *testing.T) {
	ctx := context.Background()

	t.Run("Should score the profile and store an APPLIED application", func(t *testing.T) {
		appRepo, jobRepo, candRepo := new(MockApplicationRepo), new(MockJobRepo), new(MockCandidateRepo)
		jobRepo.On("GetByID", ctx, int64(10)).Return(activeJob(), nil)
		candRepo.On("GetByUserID", ctx, "cand1").Return(candidateProfile(), nil)
		appRepo.On("Exists", ctx, int64(10), "cand1").Return(false, nil)
		appRepo.On("Create", ctx, mock.AnythingOfType("*domain.Application")).Return(nil)

		uc := newApplicationUC(appRepo, jobRepo, candRepo, nil)
		app, err := uc.SubmitApplication(ctx, "cand1", 10, "")
		assert.NoError(t, err)
		assert.Equal(t, domain.StatusApplied, app.Status)

		// Skills 2/4 -> 25, experience 0y of min 2 -> 0, education entry -> 10,
		// keywords "backend"+"engineer"+"jakarta" of {backend,engineer,jakarta} -> 10
		assert.Equal(t, 25, app.Breakdown.SkillsScore)
		assert.Equal(t, 10, app.Breakdown.ProfileScore)
		assert.Equal(t, 10, app.Breakdown.KeywordScore)
		assert.Equal(t, 45, app.Score)
		assert.Empty(t, app.Breakdown.Error)
	})

	t.Run("Should freeze a snapshot independent of later profile edits", func(t *testing.T) {
		appRepo, jobRepo, candRepo := new(MockApplicationRepo), new(MockJobRepo), new(MockCandidateRepo)
		profile := candidateProfile()
		jobRepo.On("GetByID", ctx, int64(10)).Return(activeJob(), nil)
		candRepo.On("GetByUserID", ctx, "cand1").Return(profile, nil)
		appRepo.On("Exists", ctx, int64(10), "cand1").Return(false, nil)
		appRepo.On("Create", ctx, mock.AnythingOfType("*domain.Application")).Return(nil)

		uc := newApplicationUC(appRepo, jobRepo, candRepo, nil)
		app, err := uc.SubmitApplication(ctx, "cand1", 10, "")
		assert.NoError(t, err)

		profile.Headline = "Changed after applying"
		profile.Skills[0] = "Rust"
		profile.Education[0].School = "Elsewhere"

		assert.Equal(t, "Backend Engineer in Jakarta", app.ProfileSnapshot.Headline)
		assert.Equal(t, "Go", app.ProfileSnapshot.Skills[0])
		assert.Equal(t, "ITB", app.ProfileSnapshot.Education[0].School)
	})

	t.Run("Should fall back to resume text when no profile is stored", func(t *testing.T) {
		appRepo, jobRepo, candRepo := new(MockApplicationRepo), new(MockJobRepo), new(MockCandidateRepo)
		extractor := new(MockResumeExtractor)
		jobRepo.On("GetByID", ctx, int64(10)).Return(activeJob(), nil)
		candRepo.On("GetByUserID", ctx, "cand1").Return(nil, domain.ErrNotFound)
		appRepo.On("Exists", ctx, int64(10), "cand1").Return(false, nil)
		appRepo.On("Create", ctx, mock.AnythingOfType("*domain.Application")).Return(nil)
		extractor.On("ExtractText", ctx, "https://cdn.example.com/cv.txt").
			Return("Backend engineer in Jakarta, 3 years with Go and PostgreSQL and Docker and Kubernetes, university degree", nil)

		uc := newApplicationUC(appRepo, jobRepo, candRepo, extractor)
		app, err := uc.SubmitApplication(ctx, "cand1", 10, "https://cdn.example.com/cv.txt")
		assert.NoError(t, err)
		assert.Equal(t, 50, app.Breakdown.SkillsScore)
		assert.Equal(t, 30, app.Breakdown.ExperienceScore)
		assert.Empty(t, app.Breakdown.Error)
	})

	t.Run("Should degrade to a zero score when extraction fails", func(t *testing.T) {
		appRepo, jobRepo, candRepo := new(MockApplicationRepo), new(MockJobRepo), new(MockCandidateRepo)
		extractor := new(MockResumeExtractor)
		jobRepo.On("GetByID", ctx, int64(10)).Return(activeJob(), nil)
		candRepo.On("GetByUserID", ctx, "cand1").Return(nil, domain.ErrNotFound)
		appRepo.On("Exists", ctx, int64(10), "cand1").Return(false, nil)
		appRepo.On("Create", ctx, mock.AnythingOfType("*domain.Application")).Return(nil)
		extractor.On("ExtractText", ctx, "https://cdn.example.com/cv.pdf").
			Return("", errors.New("unsupported content type"))

		uc := newApplicationUC(appRepo, jobRepo, candRepo, extractor)
		app, err := uc.SubmitApplication(ctx, "cand1", 10, "https://cdn.example.com/cv.pdf")
		// Submission still goes through, scoring degrades
		assert.NoError(t, err)
		assert.Equal(t, domain.StatusApplied, app.Status)
		assert.Equal(t, 0, app.Score)
		assert.NotEmpty(t, app.Breakdown.Error)
	})
}

func TestApplicationOwnership(t *testing.T) {
	ctx := context.Background()

	t.Run("Candidate should not read another candidate's application", func(t *testing.T) {
		appRepo, jobRepo, candRepo := new(MockApplicationRepo), new(MockJobRepo), new(MockCandidateRepo)
		appRepo.On("GetByID", ctx, int64(7)).Return(&domain.Application{ID: 7, CandidateID: "cand2"}, nil)

		uc := newApplicationUC(appRepo, jobRepo, candRepo, nil)
		_, err := uc.GetMyApplication(ctx, "cand1", 7)
		assert.Error(t, err)
		assert.Equal(t, apperror.KindAccessDenied, apperror.KindOf(err))
	})

	t.Run("Recruiter listing a foreign job gets access denied, not found stays distinct", func(t *testing.T) {
		appRepo, jobRepo, candRepo := new(MockApplicationRepo), new(MockJobRepo), new(MockCandidateRepo)
		jobRepo.On("GetByID", ctx, int64(10)).Return(activeJob(), nil)
		jobRepo.On("GetByID", ctx, int64(99)).Return(nil, domain.ErrNotFound)

		uc := newApplicationUC(appRepo, jobRepo, candRepo, nil)

		_, err := uc.ListByJobID(ctx, "recruiter2", 10, domain.ApplicationFilter{})
		assert.Equal(t, apperror.KindAccessDenied, apperror.KindOf(err))

		_, err = uc.ListByJobID(ctx, "recruiter2", 99, domain.ApplicationFilter{})
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})

	t.Run("Should reject an unknown status filter", func(t *testing.T) {
		appRepo, jobRepo, candRepo := new(MockApplicationRepo), new(MockJobRepo), new(MockCandidateRepo)
		uc := newApplicationUC(appRepo, jobRepo, candRepo, nil)

		_, err := uc.ListByJobID(ctx, "recruiter1", 10, domain.ApplicationFilter{Status: "pending"})
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

		_, err = uc.GetMyApplications(ctx, "cand1", "pending")
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})
}

func TestUpdateApplicationStatus(t *testing.T) {
	ctx := context.Background()

	setup := func(current string) (*MockApplicationRepo, *MockJobRepo, domain.ApplicationUsecase) {
		appRepo, jobRepo, candRepo := new(MockApplicationRepo), new(MockJobRepo), new(MockCandidateRepo)
		appRepo.On("GetByID", ctx, int64(7)).Return(&domain.Application{ID: 7, JobID: 10, CandidateID: "cand1", Status: current}, nil)
		jobRepo.On("GetByID", ctx, int64(10)).Return(activeJob(), nil)
		return appRepo, jobRepo, newApplicationUC(appRepo, jobRepo, candRepo, nil)
	}

	t.Run("Should apply an allowed transition with a compare-and-set", func(t *testing.T) {
		appRepo, _, uc := setup(domain.StatusApplied)
		appRepo.On("UpdateStatus", ctx, int64(7), domain.StatusApplied, domain.StatusShortlisted).Return(nil)

		app, err := uc.UpdateApplicationStatus(ctx, "recruiter1", 7, domain.StatusShortlisted)
		assert.NoError(t, err)
		assert.Equal(t, domain.StatusShortlisted, app.Status)
		appRepo.AssertExpectations(t)
	})

	t.Run("Should reject any change away from HIRED", func(t *testing.T) {
		appRepo, _, uc := setup(domain.StatusHired)
		_, err := uc.UpdateApplicationStatus(ctx, "recruiter1", 7, domain.StatusRejected)
		assert.Error(t, err)
		assert.Equal(t, apperror.KindInvalidTransition, apperror.KindOf(err))
		assert.Contains(t, err.Error(), "hired candidate")
		appRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should reject REJECTED directly to HIRED but allow re-shortlisting", func(t *testing.T) {
		_, _, uc := setup(domain.StatusRejected)
		_, err := uc.UpdateApplicationStatus(ctx, "recruiter1", 7, domain.StatusHired)
		assert.Equal(t, apperror.KindInvalidTransition, apperror.KindOf(err))
		assert.Contains(t, err.Error(), "Shortlist them first")

		appRepo, _, uc := setup(domain.StatusRejected)
		appRepo.On("UpdateStatus", ctx, int64(7), domain.StatusRejected, domain.StatusShortlisted).Return(nil)
		app, err := uc.UpdateApplicationStatus(ctx, "recruiter1", 7, domain.StatusShortlisted)
		assert.NoError(t, err)
		assert.Equal(t, domain.StatusShortlisted, app.Status)
	})

	t.Run("Should reject an unrecognized target status", func(t *testing.T) {
		_, _, uc := setup(domain.StatusApplied)
		_, err := uc.UpdateApplicationStatus(ctx, "recruiter1", 7, "hired")
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})

	t.Run("Should deny a recruiter who does not own the job", func(t *testing.T) {
		_, _, uc := setup(domain.StatusApplied)
		_, err := uc.UpdateApplicationStatus(ctx, "recruiter2", 7, domain.StatusShortlisted)
		assert.Equal(t, apperror.KindAccessDenied, apperror.KindOf(err))
	})

	t.Run("Should surface a concurrent status change as an invalid transition", func(t *testing.T) {
		appRepo, _, uc := setup(domain.StatusApplied)
		appRepo.On("UpdateStatus", ctx, int64(7), domain.StatusApplied, domain.StatusInterview).Return(domain.ErrNotFound)

		_, err := uc.UpdateApplicationStatus(ctx, "recruiter1", 7, domain.StatusInterview)
		assert.Equal(t, apperror.KindInvalidTransition, apperror.KindOf(err))
		assert.Contains(t, err.Error(), "concurrently")
	})
}
