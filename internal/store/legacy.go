package store

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/candidate"
)

const legacyTimeLayout = "2006-01-02 15:04:05"

// legacyRow is one line of the results.csv file written by the earlier screening tool.
type legacyRow struct {
	Name            string `mapstructure:"name"`
	Email           string `mapstructure:"email"`
	Phone           string `mapstructure:"phone"`
	Skills          string `mapstructure:"skills"`
	EducationLevel  string `mapstructure:"education_level"`
	Experience      string `mapstructure:"experience"`
	Filename        string `mapstructure:"filename"`
	Status          string `mapstructure:"status"`
	InterviewDate   string `mapstructure:"interview_date"`
	InterviewTime   string `mapstructure:"interview_time"`
	Saved           bool   `mapstructure:"saved"`
	Company         string `mapstructure:"company"`
	JobID           string `mapstructure:"job_id"`
	JobTitle        string `mapstructure:"job_title"`
	ApplicationDate string `mapstructure:"application_date"`
}

// ImportStats summarises a legacy import.
type ImportStats struct {
	Imported    int `json:"imported" yaml:"imported"`
	Duplicates  int `json:"duplicates" yaml:"duplicates"`
	JobsCreated int `json:"jobs_created" yaml:"jobs_created"`
}

// ImportLegacyCSV loads applications from a results.csv export. Jobs referenced by
// the rows are created when missing; rows that duplicate an existing application are skipped.
func (s *Store) ImportLegacyCSV(ctx context.Context, r io.Reader) (ImportStats, error) {
	var stats ImportStats

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return stats, nil
	}
	if err != nil {
		return stats, fmt.Errorf("reading csv header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}

	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return stats, fmt.Errorf("reading csv line %d: %w", line, err)
		}

		row, err := decodeLegacyRow(header, record)
		if err != nil {
			return stats, fmt.Errorf("decoding csv line %d: %w", line, err)
		}

		created, err := s.ensureLegacyJob(ctx, row)
		if err != nil {
			return stats, fmt.Errorf("csv line %d: %w", line, err)
		}
		if created {
			stats.JobsCreated++
		}

		app, err := row.application()
		if err != nil {
			return stats, fmt.Errorf("csv line %d: %w", line, err)
		}

		_, err = s.SubmitApplication(ctx, app)
		if errors.Is(err, ErrDuplicateApplication) {
			stats.Duplicates++
			s.logger.Debug("skipping duplicate legacy application", zap.Int("line", line), zap.String("email", row.Email))
			continue
		}
		if err != nil {
			return stats, fmt.Errorf("csv line %d: %w", line, err)
		}
		stats.Imported++
	}

	s.logger.Info("legacy import finished",
		zap.Int("imported", stats.Imported),
		zap.Int("duplicates", stats.Duplicates),
		zap.Int("jobs_created", stats.JobsCreated),
	)
	return stats, nil
}

func decodeLegacyRow(header, record []string) (legacyRow, error) {
	raw := make(map[string]string, len(header))
	for i, key := range header {
		if i < len(record) {
			raw[key] = strings.TrimSpace(record[i])
		}
	}

	var row legacyRow
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &row,
	})
	if err != nil {
		return row, err
	}
	if err := decoder.Decode(raw); err != nil {
		return row, err
	}
	return row, nil
}

func (s *Store) ensureLegacyJob(ctx context.Context, row legacyRow) (bool, error) {
	if row.JobID == "" || row.JobID == "N/A" {
		return false, errors.New("row has no job id")
	}

	_, err := s.GetJob(ctx, row.JobID)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return false, err
	}

	title := orDefault(row.JobTitle, "Imported job")
	company := orDefault(row.Company, "N/A")
	if _, err := s.CreateJob(ctx, Job{ID: row.JobID, Title: title, Company: company}); err != nil {
		return false, err
	}
	return true, nil
}

func (r legacyRow) application() (Application, error) {
	status := StatusApplied
	if r.Status != "" {
		parsed, err := ParseStatus(r.Status)
		if err != nil {
			return Application{}, err
		}
		status = parsed
	}

	var appliedAt time.Time
	if r.ApplicationDate != "" {
		t, err := time.ParseInLocation(legacyTimeLayout, r.ApplicationDate, time.UTC)
		if err != nil {
			return Application{}, fmt.Errorf("parsing application date: %w", err)
		}
		appliedAt = t
	}

	return Application{
		JobID: r.JobID,
		Profile: candidate.Profile{
			Name:           orDefault(r.Name, candidate.UnknownName),
			Email:          orDefault(r.Email, candidate.NotFound),
			Phone:          orDefault(r.Phone, candidate.NotFound),
			EducationLevel: orDefault(r.EducationLevel, candidate.NotFound),
			Experience:     orDefault(r.Experience, candidate.NotFound),
			Skills:         candidate.ParseSkills(r.Skills),
		},
		Filename:      r.Filename,
		Status:        status,
		Saved:         r.Saved,
		InterviewDate: r.InterviewDate,
		InterviewTime: r.InterviewTime,
		AppliedAt:     appliedAt,
	}, nil
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
