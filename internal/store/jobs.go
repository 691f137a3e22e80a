package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/candidate"
)

// Job is an open position. Requirements holds the "; " separated required skills.
type Job struct {
	ID           string    `json:"id" yaml:"id"`
	Title        string    `json:"title" yaml:"title" validate:"required"`
	Company      string    `json:"company" yaml:"company" validate:"required"`
	Location     string    `json:"location,omitempty" yaml:"location,omitempty"`
	Type         string    `json:"job_type,omitempty" yaml:"job_type,omitempty" validate:"omitempty,oneof=Full-time Part-time Contract Internship Remote"`
	Salary       string    `json:"salary,omitempty" yaml:"salary,omitempty"`
	Deadline     string    `json:"deadline,omitempty" yaml:"deadline,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Description  string    `json:"description,omitempty" yaml:"description,omitempty"`
	Requirements string    `json:"requirements" yaml:"requirements"`
	PostedAt     time.Time `json:"posted_at" yaml:"posted_at"`
}

// Requirement parses the job's required skills.
func (j Job) Requirement() candidate.Requirement {
	return candidate.ParseRequirement(j.Requirements)
}

// CreateJob validates and stores a job, assigning its id and posting time.
func (s *Store) CreateJob(ctx context.Context, job Job) (Job, error) {
	job.Title = strings.TrimSpace(job.Title)
	job.Company = strings.TrimSpace(job.Company)
	if err := s.validate.Struct(job); err != nil {
		return Job{}, fmt.Errorf("validating job: %w", err)
	}

	job.Requirements = candidate.ParseRequirement(job.Requirements).String()
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	if job.PostedAt.IsZero() {
		job.PostedAt = s.now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO jobs (id, title, company, location, job_type, salary, deadline, description, requirements, posted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		job.ID, job.Title, job.Company, job.Location, job.Type, job.Salary, job.Deadline, job.Description, job.Requirements, job.PostedAt,
	)
	if err != nil {
		return Job{}, fmt.Errorf("inserting job: %w", err)
	}

	s.logger.Info("job created", zap.String("job_id", job.ID), zap.String("title", job.Title))
	return job, nil
}

const jobColumns = `id, title, company, location, job_type, salary, deadline, description, requirements, posted_at`

func scanJob(row interface{ Scan(...any) error }) (Job, error) {
	var j Job
	err := row.Scan(&j.ID, &j.Title, &j.Company, &j.Location, &j.Type, &j.Salary, &j.Deadline, &j.Description, &j.Requirements, &j.PostedAt)
	return j, err
}

func (s *Store) GetJob(ctx context.Context, id string) (Job, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = ?`, id)
	job, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Job{}, fmt.Errorf("job %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Job{}, fmt.Errorf("getting job %s: %w", id, err)
	}
	return job, nil
}

// ListJobs returns every job, newest first.
func (s *Store) ListJobs(ctx context.Context) ([]Job, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+jobColumns+` FROM jobs ORDER BY posted_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("listing jobs: %w", err)
	}
	defer rows.Close()

	jobs := []Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning job: %w", err)
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}
