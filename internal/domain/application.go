package domain

import (
	"context"
	"time"
)

// ScoreBreakdown is the auditable explanation behind an application's score.
// Recruiter dashboards and the export sort on it, so the field set is a
// contract rather than an implementation detail.
type ScoreBreakdown struct {
	SkillsScore        int             `json:"skills_score"`
	SkillsWeight       int             `json:"skills_weight"`
	MatchedSkills      []string        `json:"matched_skills"`
	UnmatchedSkills    []string        `json:"unmatched_skills"`
	ExperienceScore    int             `json:"experience_score"`
	ExperienceWeight   int             `json:"experience_weight"`
	FoundExperience    float64         `json:"found_experience"`
	RequiredExperience ExperienceRange `json:"required_experience"`
	KeywordScore       int             `json:"keyword_score"`
	KeywordWeight      int             `json:"keyword_weight"`
	KeywordMatches     int             `json:"keyword_matches"`
	TotalKeywords      int             `json:"total_keywords"`
	ProfileScore       int             `json:"profile_score"`
	ProfileWeight      int             `json:"profile_weight"`
	EducationEvidence  string          `json:"education_evidence,omitempty"`
	Error              string          `json:"error,omitempty"`
}

// Application represents a candidate's application to a job posting.
// ProfileSnapshot is a frozen deep copy taken at submission time; later
// profile edits must not change historical scores or their explanations.
type Application struct {
	ID              int64            `json:"id"`
	JobID           int64            `json:"job_id"`
	CandidateID     string           `json:"candidate_id"`
	ResumeURL       *string          `json:"resume_url,omitempty"`
	ProfileSnapshot CandidateProfile `json:"profile_snapshot"`
	Status          string           `json:"status"`
	Score           int              `json:"score"`
	Breakdown       ScoreBreakdown   `json:"breakdown"`
	AppliedAt       time.Time        `json:"applied_at"`
	UpdatedAt       time.Time        `json:"updated_at"`

	// Joined data for list responses
	JobTitle    *string `json:"job_title,omitempty"`
	JobLocation *string `json:"job_location,omitempty"`
}

// ApplicationFilter narrows list queries
type ApplicationFilter struct {
	Status      string
	SortByScore bool
}

// ApplicationRepository defines data access methods for applications.
// Create must surface the unique (job_id, candidate_id) index violation as
// ErrDuplicateApplication so concurrent submissions collapse to one record.
type ApplicationRepository interface {
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id int64) (*Application, error)
	GetByJobID(ctx context.Context, jobID int64, filter ApplicationFilter) ([]Application, error)
	GetByCandidateID(ctx context.Context, candidateID string, filter ApplicationFilter) ([]Application, error)
	Exists(ctx context.Context, jobID int64, candidateID string) (bool, error)
	UpdateStatus(ctx context.Context, id int64, fromStatus, toStatus string) error
}

// ResumeTextExtractor is the external text-extraction collaborator. Fetching
// and parsing resume files is not this core's job; it only consumes the
// resulting plain text, and a failure degrades scoring instead of blocking
// the submission.
type ResumeTextExtractor interface {
	ExtractText(ctx context.Context, resumeURL string) (string, error)
}

// ApplicationUsecase defines business logic for applications
type ApplicationUsecase interface {
	// Candidate operations
	SubmitApplication(ctx context.Context, candidateID string, jobID int64, resumeURL string) (*Application, error)
	GetMyApplications(ctx context.Context, candidateID string, status string) ([]Application, error)
	GetMyApplication(ctx context.Context, candidateID string, applicationID int64) (*Application, error)

	// Recruiter operations
	ListByJobID(ctx context.Context, recruiterID string, jobID int64, filter ApplicationFilter) ([]Application, error)
	UpdateApplicationStatus(ctx context.Context, recruiterID string, applicationID int64, status string) (*Application, error)
	ExportByJobID(ctx context.Context, recruiterID string, jobID int64, format string) ([]byte, string, error)
}
