// internal/common/errors/errors.go

// Package errors provides standardized error handling for the recommendation
// pipeline.
package errors

import (
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// A single provider query timed out, returned a non-2xx status or failed
	// at transport level. Recovered locally: the query contributes nothing.
	ErrCodeProviderUnavailable ErrorCode = "PROVIDER_UNAVAILABLE"

	// No usable title/author could be extracted from the initial search.
	// The only error class that terminates the whole operation.
	ErrCodeMalformedSeed ErrorCode = "MALFORMED_SEED"

	// Acquisition plus fallback yielded zero qualifying candidates. Not a
	// failure: surfaced as a successful empty result with a message.
	ErrCodeNoCandidatesFound ErrorCode = "NO_CANDIDATES_FOUND"

	// A per-candidate parse problem (publication year, series capture group).
	// Recovered locally by skipping the affected component.
	ErrCodeParseAmbiguity ErrorCode = "PARSE_AMBIGUITY"

	// The cache store could not be reached; queries degrade to pass-through.
	ErrCodeCacheUnavailable ErrorCode = "CACHE_UNAVAILABLE"

	// The inbound request carried no query string.
	ErrCodeInvalidQuery ErrorCode = "INVALID_QUERY"

	// The response envelope failed schema validation before being returned.
	ErrCodeEnvelopeInvalid ErrorCode = "ENVELOPE_INVALID"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewProviderUnavailableError creates a retryable provider transport error.
func NewProviderUnavailableError(source string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeProviderUnavailable,
		Message:   "Search provider unreachable",
		Details:   fmt.Sprintf("source: %s, error: %v", source, err),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewMalformedSeedError creates the terminal seed-extraction error.
func NewMalformedSeedError(query string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMalformedSeed,
		Message:   "No usable seed book found for query",
		Details:   fmt.Sprintf("query: %s", query),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNoCandidatesFoundError marks an empty (but successful) result.
func NewNoCandidatesFoundError(query string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNoCandidatesFound,
		Message:   "No qualifying candidates after filtering",
		Details:   fmt.Sprintf("query: %s", query),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewParseAmbiguityError creates a locally-recovered parse error.
func NewParseAmbiguityError(field, value string) *StandardError {
	return &StandardError{
		Code:      ErrCodeParseAmbiguity,
		Message:   "Could not parse candidate field",
		Details:   fmt.Sprintf("field: %s, value: %s", field, value),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCacheUnavailableError creates a retryable cache store error.
func NewCacheUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCacheUnavailable,
		Message:   "Cache store unreachable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidQueryError creates the boundary validation error.
func NewInvalidQueryError() *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidQuery,
		Message:   "Query string is required",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewEnvelopeInvalidError creates a response schema validation error.
func NewEnvelopeInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeEnvelopeInvalid,
		Message:   "Response envelope failed schema validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Helpers
// ==========================

// IsCode reports whether err is a *StandardError carrying the given code.
func IsCode(err error, code ErrorCode) bool {
	se, ok := err.(*StandardError)
	return ok && se.Code == code
}

// WithMetadata attaches metadata to an error and returns it for chaining.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}
