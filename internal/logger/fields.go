package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldJob is the structured log field key for a job id.
	FieldJob = "job_id"
	// FieldApplication is the structured log field key for an application id.
	FieldApplication = "application_id"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches fields to the logger, falling back to a no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// ApplicationFields describes the job and application a log entry is about.
// Empty ids are left out.
func ApplicationFields(jobID, applicationID string) []zap.Field {
	return StringFields(
		StringField{Key: FieldJob, Value: jobID},
		StringField{Key: FieldApplication, Value: applicationID},
	)
}

// WithApplicationFields attaches ApplicationFields to the logger.
func WithApplicationFields(logger *zap.Logger, jobID, applicationID string) *zap.Logger {
	return WithFields(logger, ApplicationFields(jobID, applicationID)...)
}
