package postgres

import (
	"context"
	"errors"

	"go-jobportal-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	query := `INSERT INTO jobs (recruiter_id, title, description, skills, location, experience_min, experience_max, salary_min, salary_max, status, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`

	salaryMin, salaryMax := salaryColumns(job.Salary)
	return r.db.QueryRow(ctx, query,
		job.RecruiterID, job.Title, job.Description, pq.Array(job.Skills), job.Location,
		job.Experience.Min, job.Experience.Max, salaryMin, salaryMax,
		job.Status, job.CreatedAt, job.UpdatedAt,
	).Scan(&job.ID)
}

func (r *jobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	query := `SELECT id, recruiter_id, title, description, skills, location, experience_min, experience_max, salary_min, salary_max, status, created_at, updated_at
              FROM jobs WHERE id = $1`

	job, err := scanJob(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return job, nil
}

func (r *jobRepo) FetchActive(ctx context.Context, limit, offset int) ([]domain.Job, int64, error) {
	query := `SELECT id, recruiter_id, title, description, skills, location, experience_min, experience_max, salary_min, salary_max, status, created_at, updated_at
              FROM jobs WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, domain.JobStatusActive, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	jobs, err := collectJobs(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs WHERE status = $1`, domain.JobStatusActive).Scan(&total); err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

func (r *jobRepo) FetchByRecruiterID(ctx context.Context, recruiterID string, limit, offset int) ([]domain.Job, int64, error) {
	query := `SELECT id, recruiter_id, title, description, skills, location, experience_min, experience_max, salary_min, salary_max, status, created_at, updated_at
              FROM jobs WHERE recruiter_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, recruiterID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	jobs, err := collectJobs(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs WHERE recruiter_id = $1`, recruiterID).Scan(&total); err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

func (r *jobRepo) Update(ctx context.Context, job *domain.Job) error {
	query := `UPDATE jobs SET title=$1, description=$2, skills=$3, location=$4, experience_min=$5, experience_max=$6, salary_min=$7, salary_max=$8, updated_at=$9
              WHERE id=$10`

	salaryMin, salaryMax := salaryColumns(job.Salary)
	tag, err := r.db.Exec(ctx, query,
		job.Title, job.Description, pq.Array(job.Skills), job.Location,
		job.Experience.Min, job.Experience.Max, salaryMin, salaryMax,
		job.UpdatedAt, job.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *jobRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	tag, err := r.db.Exec(ctx, `UPDATE jobs SET status=$1, updated_at=NOW() WHERE id=$2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func salaryColumns(s *domain.SalaryRange) (*float64, *float64) {
	if s == nil {
		return nil, nil
	}
	return &s.Min, &s.Max
}

func scanJob(row pgx.Row) (*domain.Job, error) {
	var job domain.Job
	var skills []string
	var salaryMin, salaryMax *float64

	err := row.Scan(
		&job.ID, &job.RecruiterID, &job.Title, &job.Description, pq.Array(&skills), &job.Location,
		&job.Experience.Min, &job.Experience.Max, &salaryMin, &salaryMax,
		&job.Status, &job.CreatedAt, &job.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	job.Skills = skills
	if salaryMin != nil && salaryMax != nil {
		job.Salary = &domain.SalaryRange{Min: *salaryMin, Max: *salaryMax}
	}
	return &job, nil
}

func collectJobs(rows pgx.Rows) ([]domain.Job, error) {
	var jobs []domain.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}
