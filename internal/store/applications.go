package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/candidate"
)

type Status string

const (
	StatusApplied          Status = "Applied"
	StatusInterviewInvited Status = "Interview Invited"
	StatusOfferSent        Status = "Offer Sent"
	StatusRejected         Status = "Rejected"
)

var transitions = map[Status][]Status{
	StatusApplied:          {StatusInterviewInvited, StatusRejected},
	StatusInterviewInvited: {StatusOfferSent, StatusRejected},
}

// Statuses lists every known status in workflow order.
func Statuses() []Status {
	return []Status{StatusApplied, StatusInterviewInvited, StatusOfferSent, StatusRejected}
}

// ParseStatus matches a status case-insensitively.
func ParseStatus(s string) (Status, error) {
	for _, status := range Statuses() {
		if strings.EqualFold(strings.TrimSpace(s), string(status)) {
			return status, nil
		}
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// CanTransition reports whether an application may move from one status to another.
func CanTransition(from, to Status) bool {
	return slices.Contains(transitions[from], to)
}

// Next returns the statuses reachable from s.
func (s Status) Next() []Status {
	return slices.Clone(transitions[s])
}

// Interview is the slot recorded when a candidate is invited.
type Interview struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
	Time string `json:"time" validate:"required,datetime=15:04"`
}

type Application struct {
	ID            string            `json:"id" yaml:"id"`
	JobID         string            `json:"job_id" yaml:"job_id" validate:"required"`
	Profile       candidate.Profile `json:"profile" yaml:"profile" validate:"-"`
	Filename      string            `json:"filename,omitempty" yaml:"filename,omitempty"`
	Status        Status            `json:"status" yaml:"status"`
	Saved         bool              `json:"saved" yaml:"saved"`
	InterviewDate string            `json:"interview_date,omitempty" yaml:"interview_date,omitempty"`
	InterviewTime string            `json:"interview_time,omitempty" yaml:"interview_time,omitempty"`
	AppliedAt     time.Time         `json:"applied_at" yaml:"applied_at"`
}

// Filter narrows ListApplications. Zero values match everything.
type Filter struct {
	JobID     string
	Statuses  []Status
	SavedOnly bool
}

// SubmitApplication stores a new application. Status defaults to Applied and the
// application time to now. A second application with the same email for the same
// job fails with ErrDuplicateApplication; profiles without an email are never duplicates.
func (s *Store) SubmitApplication(ctx context.Context, app Application) (Application, error) {
	if err := s.validate.Struct(app); err != nil {
		return Application{}, fmt.Errorf("validating application: %w", err)
	}
	if app.Status == "" {
		app.Status = StatusApplied
	}
	if _, err := ParseStatus(string(app.Status)); err != nil {
		return Application{}, err
	}
	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	if app.AppliedAt.IsZero() {
		app.AppliedAt = s.now()
	}
	if app.Profile.Skills == nil {
		app.Profile.Skills = []string{}
	}

	skills, err := json.Marshal(app.Profile.Skills)
	if err != nil {
		return Application{}, fmt.Errorf("encoding skills: %w", err)
	}

	err = s.withTx(ctx, func(tx *sql.Tx) error {
		var exists int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM jobs WHERE id = ?`, app.JobID).Scan(&exists); err != nil {
			return fmt.Errorf("checking job: %w", err)
		}
		if exists == 0 {
			return fmt.Errorf("job %s: %w", app.JobID, ErrNotFound)
		}

		dup, err := hasApplication(ctx, tx, app.JobID, app.Profile.Email)
		if err != nil {
			return err
		}
		if dup {
			return ErrDuplicateApplication
		}

		p := app.Profile
		_, err = tx.ExecContext(ctx, `
			INSERT INTO applications (id, job_id, name, email, phone, skills, education_level, experience,
				filename, status, saved, interview_date, interview_time, applied_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			app.ID, app.JobID, p.Name, p.Email, p.Phone, string(skills), p.EducationLevel, p.Experience,
			app.Filename, string(app.Status), app.Saved, app.InterviewDate, app.InterviewTime, app.AppliedAt,
		)
		if isUniqueViolation(err) {
			return ErrDuplicateApplication
		}
		if err != nil {
			return fmt.Errorf("inserting application: %w", err)
		}
		return nil
	})
	if err != nil {
		return Application{}, err
	}

	s.logger.Info("application submitted",
		zap.String("application_id", app.ID),
		zap.String("job_id", app.JobID),
		zap.String("status", string(app.Status)),
	)
	return app, nil
}

func hasApplication(ctx context.Context, tx *sql.Tx, jobID, email string) (bool, error) {
	if email == "" || email == candidate.NotFound {
		return false, nil
	}
	var n int
	err := tx.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM applications WHERE job_id = ? AND lower(email) = lower(?)`, jobID, email,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking duplicate application: %w", err)
	}
	return n > 0, nil
}

const applicationColumns = `id, job_id, name, email, phone, skills, education_level, experience,
	filename, status, saved, interview_date, interview_time, applied_at`

func scanApplication(row interface{ Scan(...any) error }) (Application, error) {
	var (
		a      Application
		skills string
		status string
	)
	err := row.Scan(&a.ID, &a.JobID, &a.Profile.Name, &a.Profile.Email, &a.Profile.Phone, &skills,
		&a.Profile.EducationLevel, &a.Profile.Experience, &a.Filename, &status, &a.Saved,
		&a.InterviewDate, &a.InterviewTime, &a.AppliedAt)
	if err != nil {
		return Application{}, err
	}
	a.Status = Status(status)

	if err := json.Unmarshal([]byte(skills), &a.Profile.Skills); err != nil {
		return Application{}, fmt.Errorf("decoding skills of application %s: %w", a.ID, err)
	}
	if a.Profile.Skills == nil {
		a.Profile.Skills = []string{}
	}
	return a, nil
}

func (s *Store) GetApplication(ctx context.Context, id string) (Application, error) {
	return getApplication(ctx, s.db, id)
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getApplication(ctx context.Context, q queryRower, id string) (Application, error) {
	row := q.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = ?`, id)
	app, err := scanApplication(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Application{}, fmt.Errorf("application %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Application{}, fmt.Errorf("getting application %s: %w", id, err)
	}
	return app, nil
}

// ListApplications returns matching applications in submission order.
func (s *Store) ListApplications(ctx context.Context, f Filter) ([]Application, error) {
	var (
		where []string
		args  []any
	)
	if f.JobID != "" {
		where = append(where, "job_id = ?")
		args = append(args, f.JobID)
	}
	if len(f.Statuses) > 0 {
		placeholders := make([]string, len(f.Statuses))
		for i, st := range f.Statuses {
			placeholders[i] = "?"
			args = append(args, string(st))
		}
		where = append(where, "status IN ("+strings.Join(placeholders, ", ")+")")
	}
	if f.SavedOnly {
		where = append(where, "saved = 1")
	}

	query := `SELECT ` + applicationColumns + ` FROM applications`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY applied_at, rowid`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing applications: %w", err)
	}
	defer rows.Close()

	apps := []Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning application: %w", err)
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

// UpdateStatus moves an application along the workflow. Inviting to an interview
// requires the interview slot; other transitions ignore it.
func (s *Store) UpdateStatus(ctx context.Context, id string, to Status, interview *Interview) (Application, error) {
	if to == StatusInterviewInvited {
		if interview == nil {
			return Application{}, fmt.Errorf("%w: interview slot is required", ErrInvalidTransition)
		}
		if err := s.validate.Struct(interview); err != nil {
			return Application{}, fmt.Errorf("validating interview slot: %w", err)
		}
	}

	var updated Application
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		app, err := getApplication(ctx, tx, id)
		if err != nil {
			return err
		}
		if !CanTransition(app.Status, to) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, app.Status, to)
		}

		app.Status = to
		if to == StatusInterviewInvited {
			app.InterviewDate = interview.Date
			app.InterviewTime = interview.Time
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE applications SET status = ?, interview_date = ?, interview_time = ? WHERE id = ?`,
			string(app.Status), app.InterviewDate, app.InterviewTime, app.ID,
		)
		if err != nil {
			return fmt.Errorf("updating application status: %w", err)
		}
		updated = app
		return nil
	})
	if err != nil {
		return Application{}, err
	}

	s.logger.Info("application status changed",
		zap.String("application_id", id),
		zap.String("status", string(to)),
	)
	return updated, nil
}

// SetSaved marks or unmarks an application as saved for later.
func (s *Store) SetSaved(ctx context.Context, id string, saved bool) error {
	res, err := s.db.ExecContext(ctx, `UPDATE applications SET saved = ? WHERE id = ?`, saved, id)
	if err != nil {
		return fmt.Errorf("updating saved flag: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating saved flag: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("application %s: %w", id, ErrNotFound)
	}
	return nil
}
