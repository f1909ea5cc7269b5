package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldURL is the structured log field key for the posting URL.
	FieldURL = "posting_url"
	// FieldTitle is the structured log field key for the posting title.
	FieldTitle = "posting_title"
	// FieldCompany is the structured log field key for the hiring company.
	FieldCompany = "company"
	// FieldProvider is the structured log field key for the AI provider name.
	FieldProvider = "ai_provider"
	// FieldModel is the structured log field key for the AI model identifier.
	FieldModel = "ai_model"
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

// WithFields safely attaches the provided fields to the logger.
// If the logger is nil or no fields are supplied, the input logger is returned
// unchanged, defaulting to a no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// PostingFields describes a posting. Empty values are skipped, so a sparse
// posting still logs cleanly.
func PostingFields(url, title, company string) []zap.Field {
	return StringFields(
		StringField{Key: FieldURL, Value: url},
		StringField{Key: FieldTitle, Value: title},
		StringField{Key: FieldCompany, Value: company},
	)
}

// WithPosting attaches the posting fields to the provided logger.
func WithPosting(logger *zap.Logger, url, title, company string) *zap.Logger {
	return WithFields(logger, PostingFields(url, title, company)...)
}

// AIFields returns the fields that describe the AI provider and model.
func AIFields(provider, model string) []zap.Field {
	return StringFields(
		StringField{Key: FieldProvider, Value: provider},
		StringField{Key: FieldModel, Value: model},
	)
}
