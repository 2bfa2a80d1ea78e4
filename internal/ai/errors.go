package ai

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType categorizes provider failures.
type ErrorType string

const (
	ErrTypeProvider       ErrorType = "provider"
	ErrTypeConfiguration  ErrorType = "configuration"
	ErrTypeAuthentication ErrorType = "authentication"
	ErrTypeRateLimit      ErrorType = "rate_limit"
	ErrTypeNetwork        ErrorType = "network"
	ErrTypeTimeout        ErrorType = "timeout"
	ErrTypeValidation     ErrorType = "validation"
	ErrTypeRegistration   ErrorType = "registration"
	ErrTypeNotFound       ErrorType = "not_found"
	ErrTypeInternal       ErrorType = "internal"
)

// ProviderError is a failure reported by or while talking to a provider.
type ProviderError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Provider   string    `json:"provider,omitempty"`
	StatusCode int       `json:"status_code,omitempty"`
	Cause      error     `json:"-"`

	// Retryable marks failures worth another attempt
	Retryable bool `json:"retryable"`
}

func (e *ProviderError) Error() string {
	parts := make([]string, 0, 5)
	if e.Provider != "" {
		parts = append(parts, "provider="+e.Provider)
	}
	parts = append(parts, "type="+string(e.Type))
	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.StatusCode))
	}
	parts = append(parts, e.Message)
	if e.Cause != nil {
		parts = append(parts, "cause="+e.Cause.Error())
	}
	return strings.Join(parts, ": ")
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// Is matches any *ProviderError target of the same Type.
func (e *ProviderError) Is(target error) bool {
	pe, ok := target.(*ProviderError)
	return ok && e.Type == pe.Type
}

func (e *ProviderError) IsRetryable() bool {
	return e.Retryable
}

// ValidationError rejects a request before it is sent.
type ValidationError struct {
	Field   string `json:"field"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

// RateLimitError is returned once a provider keeps answering 429.
type RateLimitError struct {
	Provider   string `json:"provider"`
	RetryAfter int    `json:"retry_after"` // seconds
	Type       string `json:"type"`
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded for provider '%s' (%s): retry after %d seconds",
		e.Provider, e.Type, e.RetryAfter)
}

// ConfigurationError reports an unusable provider setting.
type ConfigurationError struct {
	Provider string `json:"provider"`
	Field    string `json:"field"`
	Message  string `json:"message"`
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error for provider '%s', field '%s': %s",
		e.Provider, e.Field, e.Message)
}

func NewProviderError(errType ErrorType, message, provider string) *ProviderError {
	return NewProviderErrorWithCause(errType, message, provider, nil)
}

func NewProviderErrorWithCause(errType ErrorType, message, provider string, cause error) *ProviderError {
	retryable := false
	switch errType {
	case ErrTypeRateLimit, ErrTypeTimeout, ErrTypeNetwork:
		retryable = true
	}
	return &ProviderError{
		Type:      errType,
		Message:   message,
		Provider:  provider,
		Cause:     cause,
		Retryable: retryable,
	}
}

// NewHTTPError wraps a non-2xx response. 5xx statuses are retryable.
func NewHTTPError(errType ErrorType, status int, message, provider string) *ProviderError {
	pe := NewProviderError(errType, message, provider)
	pe.StatusCode = status
	if status >= 500 {
		pe.Retryable = true
	}
	return pe
}

func NewValidationError(field, value, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

func NewRateLimitError(provider string, retryAfter int, limitType string) *RateLimitError {
	return &RateLimitError{Provider: provider, RetryAfter: retryAfter, Type: limitType}
}

func NewConfigurationError(provider, field, message string) *ConfigurationError {
	return &ConfigurationError{Provider: provider, Field: field, Message: message}
}

// IsRetryableError reports whether err is worth another attempt.
func IsRetryableError(err error) bool {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.IsRetryable()
	}
	var rle *RateLimitError
	return errors.As(err, &rle)
}

func IsRateLimitError(err error) bool {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Type == ErrTypeRateLimit
	}
	var rle *RateLimitError
	return errors.As(err, &rle)
}

func IsConfigurationError(err error) bool {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Type == ErrTypeConfiguration
	}
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

func IsValidationError(err error) bool {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Type == ErrTypeValidation
	}
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNetworkError reports a transport failure: the provider never answered.
func IsNetworkError(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Type == ErrTypeNetwork
}

// Reason names the category of err for log fields and metric labels.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case IsRateLimitError(err):
		return "rate_limit"
	case IsNetworkError(err):
		return "network"
	case IsConfigurationError(err):
		return "configuration"
	case IsValidationError(err):
		return "validation"
	case errors.Is(err, &ProviderError{Type: ErrTypeTimeout}):
		return "timeout"
	case errors.Is(err, &ProviderError{Type: ErrTypeAuthentication}):
		return "authentication"
	default:
		return "provider"
	}
}
