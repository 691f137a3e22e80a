// Package intake runs the résumé submission workflow: decode the upload, extract a
// profile, match skills against the shared vocabulary, then commit the application
// and fold the confirmed skills back into the vocabulary.
package intake

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/candidate"
	"github.com/spigell/resume-screener/internal/extract"
	"github.com/spigell/resume-screener/internal/logger"
	"github.com/spigell/resume-screener/internal/skills"
	"github.com/spigell/resume-screener/internal/store"
)

const (
	DefaultWorkers = 4
	previewLength  = 120
)

// Decoder turns a file into text.
type Decoder interface {
	DecodeFile(path string) (string, error)
	Decode(mime string, data []byte) (string, error)
}

// Applications is the part of the store used by submissions.
type Applications interface {
	GetJob(ctx context.Context, id string) (store.Job, error)
	SubmitApplication(ctx context.Context, app store.Application) (store.Application, error)
}

type Config struct {
	NameStrategy extract.NameStrategy
	Match        skills.MatchOptions
	Workers      int
}

type Service struct {
	decoder Decoder
	vocab   *skills.Store
	apps    Applications
	cfg     Config
	logger  *zap.Logger
}

// Draft is an extracted profile awaiting applicant confirmation.
type Draft struct {
	Filename string            `json:"filename" yaml:"filename"`
	Profile  candidate.Profile `json:"profile" yaml:"profile"`
}

func New(decoder Decoder, vocab *skills.Store, apps Applications, cfg Config, log *zap.Logger) *Service {
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.NameStrategy == "" {
		cfg.NameStrategy = extract.NameLabeledOrCapitalized
	}
	return &Service{
		decoder: decoder,
		vocab:   vocab,
		apps:    apps,
		cfg:     cfg,
		logger:  logger.WithFields(log),
	}
}

// Analyze extracts a profile from text and matches it against the current vocabulary.
func (s *Service) Analyze(text string) (candidate.Profile, error) {
	vocab, err := s.vocab.Load()
	if err != nil {
		return candidate.Profile{}, fmt.Errorf("loading vocabulary: %w", err)
	}
	return s.analyze(text, vocab), nil
}

func (s *Service) analyze(text string, vocab *skills.Vocabulary) candidate.Profile {
	profile := extract.Extract(text, extract.WithNameStrategy(s.cfg.NameStrategy))
	profile.Skills = skills.Match(text, vocab, s.cfg.Match)

	s.logger.Debug("profile extracted",
		zap.String("preview", logger.Preview(text, previewLength)),
		zap.String("name", profile.Name),
		zap.String("education", profile.EducationLevel),
		zap.Int("skills", len(profile.Skills)),
	)
	return profile
}

// AnalyzeFile decodes a résumé file and analyzes its text.
func (s *Service) AnalyzeFile(path string) (Draft, error) {
	text, err := s.decoder.DecodeFile(path)
	if err != nil {
		return Draft{}, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}

	profile, err := s.Analyze(text)
	if err != nil {
		return Draft{}, err
	}
	return Draft{Filename: filepath.Base(path), Profile: profile}, nil
}

// AnalyzeUpload decodes raw uploaded bytes and analyzes their text.
func (s *Service) AnalyzeUpload(filename, mime string, data []byte) (Draft, error) {
	text, err := s.decoder.Decode(mime, data)
	if err != nil {
		return Draft{}, fmt.Errorf("decoding %s: %w", filename, err)
	}

	profile, err := s.Analyze(text)
	if err != nil {
		return Draft{}, err
	}
	return Draft{Filename: filename, Profile: profile}, nil
}

// Submit validates the confirmed draft, stores the application and adds the
// profile's skills to the vocabulary.
func (s *Service) Submit(ctx context.Context, jobID string, draft Draft) (store.Application, error) {
	if err := draft.Profile.Validate(); err != nil {
		return store.Application{}, err
	}

	if _, err := s.apps.GetJob(ctx, jobID); err != nil {
		return store.Application{}, err
	}

	app, err := s.apps.SubmitApplication(ctx, store.Application{
		JobID:    jobID,
		Profile:  draft.Profile,
		Filename: draft.Filename,
	})
	if err != nil {
		return store.Application{}, fmt.Errorf("submitting application: %w", err)
	}

	added, err := s.vocab.Merge(draft.Profile.Skills...)
	if err != nil {
		return app, fmt.Errorf("updating vocabulary: %w", err)
	}

	s.logger.Info("application received",
		append(logger.ApplicationFields(jobID, app.ID),
			zap.String("filename", draft.Filename),
			zap.Strings("new_skills", added),
		)...,
	)
	return app, nil
}
