package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go-jobportal-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type candidateRepo struct {
	db *pgxpool.Pool
}

func NewCandidateRepository(db *pgxpool.Pool) domain.CandidateRepository {
	return &candidateRepo{db: db}
}

func (r *candidateRepo) GetByUserID(ctx context.Context, userID string) (*domain.CandidateProfile, error) {
	query := `SELECT id, user_id, headline, COALESCE(about, ''), skills, experience, education, created_at, updated_at
              FROM candidate_profiles WHERE user_id = $1`

	var p domain.CandidateProfile
	var skills []string
	var experienceJSON, educationJSON []byte

	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.ID, &p.UserID, &p.Headline, &p.About,
		pq.Array(&skills), &experienceJSON, &educationJSON,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	p.Skills = skills
	if len(experienceJSON) > 0 {
		if err := json.Unmarshal(experienceJSON, &p.Experience); err != nil {
			return nil, fmt.Errorf("decode experience: %w", err)
		}
	}
	if len(educationJSON) > 0 {
		if err := json.Unmarshal(educationJSON, &p.Education); err != nil {
			return nil, fmt.Errorf("decode education: %w", err)
		}
	}
	return &p, nil
}

func (r *candidateRepo) Create(ctx context.Context, profile *domain.CandidateProfile) error {
	experienceJSON, educationJSON, err := profileJSON(profile)
	if err != nil {
		return err
	}

	query := `INSERT INTO candidate_profiles (user_id, headline, about, skills, experience, education, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW()) RETURNING id`
	return r.db.QueryRow(ctx, query,
		profile.UserID, profile.Headline, profile.About,
		pq.Array(profile.Skills), experienceJSON, educationJSON,
	).Scan(&profile.ID)
}

func (r *candidateRepo) Update(ctx context.Context, profile *domain.CandidateProfile) error {
	experienceJSON, educationJSON, err := profileJSON(profile)
	if err != nil {
		return err
	}

	query := `UPDATE candidate_profiles SET headline=$1, about=$2, skills=$3, experience=$4, education=$5, updated_at=NOW()
              WHERE user_id=$6`
	tag, err := r.db.Exec(ctx, query,
		profile.Headline, profile.About, pq.Array(profile.Skills),
		experienceJSON, educationJSON, profile.UserID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func profileJSON(profile *domain.CandidateProfile) ([]byte, []byte, error) {
	experienceJSON, err := json.Marshal(profile.Experience)
	if err != nil {
		return nil, nil, fmt.Errorf("encode experience: %w", err)
	}
	educationJSON, err := json.Marshal(profile.Education)
	if err != nil {
		return nil, nil, fmt.Errorf("encode education: %w", err)
	}
	return experienceJSON, educationJSON, nil
}
