package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-jobportal-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

type applicationRepo struct {
	db *pgxpool.Pool
}

func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

// Create inserts a new application. The (job_id, candidate_id) unique index
// is the authority on duplicates; its violation comes back as
// domain.ErrDuplicateApplication so the usecase pre-check and the race path
// converge on one signal.
func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	snapshotJSON, err := json.Marshal(app.ProfileSnapshot)
	if err != nil {
		return fmt.Errorf("encode profile snapshot: %w", err)
	}
	breakdownJSON, err := json.Marshal(app.Breakdown)
	if err != nil {
		return fmt.Errorf("encode breakdown: %w", err)
	}

	query := `
		INSERT INTO applications (job_id, candidate_id, resume_url, profile_snapshot, status, score, breakdown, applied_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	now := time.Now()
	if app.AppliedAt.IsZero() {
		app.AppliedAt = now
	}
	app.UpdatedAt = now
	if app.Status == "" {
		app.Status = domain.StatusApplied
	}

	err = r.db.QueryRow(ctx, query,
		app.JobID, app.CandidateID, app.ResumeURL, snapshotJSON,
		app.Status, app.Score, breakdownJSON, app.AppliedAt, app.UpdatedAt,
	).Scan(&app.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrDuplicateApplication
		}
		return err
	}
	return nil
}

// GetByID retrieves an application with its frozen snapshot and breakdown,
// plus the job title and location for display
func (r *applicationRepo) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	query := applicationSelect + ` WHERE a.id = $1`

	app, err := scanApplication(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return app, nil
}

// GetByJobID lists a job's applications, optionally filtered to one status.
// The default order is newest first; SortByScore puts the strongest matches
// on top for recruiter review.
func (r *applicationRepo) GetByJobID(ctx context.Context, jobID int64, filter domain.ApplicationFilter) ([]domain.Application, error) {
	query := applicationSelect + ` WHERE a.job_id = $1`
	args := []any{jobID}

	if filter.Status != "" {
		query += ` AND a.status = $2`
		args = append(args, filter.Status)
	}
	if filter.SortByScore {
		query += ` ORDER BY a.score DESC, a.applied_at ASC`
	} else {
		query += ` ORDER BY a.applied_at DESC`
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectApplications(rows)
}

func (r *applicationRepo) GetByCandidateID(ctx context.Context, candidateID string, filter domain.ApplicationFilter) ([]domain.Application, error) {
	query := applicationSelect + ` WHERE a.candidate_id = $1`
	args := []any{candidateID}

	if filter.Status != "" {
		query += ` AND a.status = $2`
		args = append(args, filter.Status)
	}
	query += ` ORDER BY a.applied_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectApplications(rows)
}

func (r *applicationRepo) Exists(ctx context.Context, jobID int64, candidateID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = $1 AND candidate_id = $2)`,
		jobID, candidateID,
	).Scan(&exists)
	return exists, err
}

// UpdateStatus is a compare-and-set on the current status. Zero rows means
// the row is gone or no longer in fromStatus, either way the caller's
// transition check is stale.
func (r *applicationRepo) UpdateStatus(ctx context.Context, id int64, fromStatus, toStatus string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE applications SET status=$1, updated_at=NOW() WHERE id=$2 AND status=$3`,
		toStatus, id, fromStatus,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

const applicationSelect = `
	SELECT
		a.id, a.job_id, a.candidate_id, a.resume_url, a.profile_snapshot,
		a.status, a.score, a.breakdown, a.applied_at, a.updated_at,
		j.title as job_title, j.location as job_location
	FROM applications a
	LEFT JOIN jobs j ON a.job_id = j.id`

func scanApplication(row pgx.Row) (*domain.Application, error) {
	var app domain.Application
	var snapshotJSON, breakdownJSON []byte

	err := row.Scan(
		&app.ID, &app.JobID, &app.CandidateID, &app.ResumeURL, &snapshotJSON,
		&app.Status, &app.Score, &breakdownJSON, &app.AppliedAt, &app.UpdatedAt,
		&app.JobTitle, &app.JobLocation,
	)
	if err != nil {
		return nil, err
	}

	if len(snapshotJSON) > 0 {
		if err := json.Unmarshal(snapshotJSON, &app.ProfileSnapshot); err != nil {
			return nil, fmt.Errorf("decode profile snapshot: %w", err)
		}
	}
	if len(breakdownJSON) > 0 {
		if err := json.Unmarshal(breakdownJSON, &app.Breakdown); err != nil {
			return nil, fmt.Errorf("decode breakdown: %w", err)
		}
	}
	return &app, nil
}

func collectApplications(rows pgx.Rows) ([]domain.Application, error) {
	var apps []domain.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *app)
	}
	return apps, rows.Err()
}
