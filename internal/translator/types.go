// Package translator defines the external translation capability and its
// adapters. The pipeline treats translation as opaque: one request in, one
// translated text out. Rate limiting, retries, and prompt construction all
// live behind this boundary so the driver stays sequential and simple.
package translator

import (
	"context"
	"time"

	"github.com/dverbin/doctran/internal"
)

// ServiceConfig carries credentials and endpoint settings shared by all
// adapters. Unused fields are ignored by adapters that do not need them.
type ServiceConfig struct {
	Credentials string        `mapstructure:"credentials" json:"credentials"`
	APIKey      string        `mapstructure:"api_key" json:"api_key"`
	Model       string        `mapstructure:"model" json:"model"`
	BaseURL     string        `mapstructure:"base_url" json:"base_url"`
	Timeout     time.Duration `mapstructure:"timeout" json:"timeout"`
	ProjectID   string        `mapstructure:"project_id" json:"project_id"`
}

// TranslateRequest is one translation unit plus everything the adapter
// needs to render its instructions: languages, register, terminology, and
// the rolling context from the previous unit.
type TranslateRequest struct {
	Text       string        `json:"text"`
	SourceLang string        `json:"source_lang"`
	TargetLang string        `json:"target_lang"`
	Tone       internal.Tone `json:"tone,omitempty"`
	Domain     string        `json:"domain,omitempty"`
	Glossary   string        `json:"glossary,omitempty"`
	Context    string        `json:"context,omitempty"`

	// PreserveMarkers asks the model to keep [PHn] placeholder markers
	// intact; only LLM-backed services honor it.
	PreserveMarkers bool `json:"preserve_markers,omitempty"`
}

// ServiceResult is the outcome of one capability call.
type ServiceResult struct {
	ServiceName    string            `json:"service_name"`
	TranslatedText string            `json:"translated_text"`
	Metadata       map[string]string `json:"metadata,omitempty"`
	Latency        time.Duration     `json:"latency"`
	Error          string            `json:"error,omitempty"`
}

// TranslationService is the capability boundary: exactly one call per
// translation unit; any retry policy wraps the implementation (see
// WithRetry) rather than leaking into the driver.
type TranslationService interface {
	Name() string
	Translate(ctx context.Context, cfg ServiceConfig, req TranslateRequest) (*ServiceResult, error)
	IsAvailable(ctx context.Context) error
}
