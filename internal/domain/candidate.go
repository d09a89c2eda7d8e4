package domain

import (
	"context"
	"time"
)

// WorkExperience is a single employment entry on a candidate profile.
// EndDate is nil while Current is true.
type WorkExperience struct {
	Title       string     `json:"title" validate:"required,max=200"`
	Company     string     `json:"company" validate:"required,max=200"`
	Location    string     `json:"location,omitempty" validate:"max=200"`
	StartDate   time.Time  `json:"start_date" validate:"required"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Current     bool       `json:"current"`
	Description string     `json:"description,omitempty" validate:"max=2000"`
}

type Education struct {
	School       string `json:"school" validate:"required,max=200"`
	Degree       string `json:"degree,omitempty" validate:"max=200"`
	FieldOfStudy string `json:"field_of_study,omitempty" validate:"max=200"`
}

type CandidateProfile struct {
	ID         int64            `json:"id"`
	UserID     string           `json:"user_id" validate:"required"`
	Headline   string           `json:"headline" validate:"required,min=3,max=200"`
	About      string           `json:"about" validate:"max=2000"`
	Skills     []string         `json:"skills" validate:"required,min=1,dive,required"`
	Experience []WorkExperience `json:"experience" validate:"dive"`
	Education  []Education      `json:"education" validate:"dive"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

type CandidateRepository interface {
	GetByUserID(ctx context.Context, userID string) (*CandidateProfile, error)
	Create(ctx context.Context, profile *CandidateProfile) error
	Update(ctx context.Context, profile *CandidateProfile) error
}

type CandidateUsecase interface {
	GetProfile(ctx context.Context, userID string) (*CandidateProfile, error)
	UpdateProfile(ctx context.Context, profile *CandidateProfile) error
}
