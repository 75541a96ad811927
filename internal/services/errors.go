package services

import (
	"errors"
	"strings"
)

// credentialRejected is the text Gemini puts in errors for a bad API key.
const credentialRejected = "API key not valid"

type ValidationError struct{ Message string }

func (e *ValidationError) Error() string { return e.Message }

// UpstreamAuthError means the model service rejected the configured credential.
type UpstreamAuthError struct{ Err error }

func (e *UpstreamAuthError) Error() string { return "upstream rejected credential: " + e.Err.Error() }

func (e *UpstreamAuthError) Unwrap() error { return e.Err }

// UpstreamError is any other model service failure.
type UpstreamError struct{ Err error }

func (e *UpstreamError) Error() string { return "upstream error: " + e.Err.Error() }

func (e *UpstreamError) Unwrap() error { return e.Err }

// PersistenceError is a failed ChatRecord write.
type PersistenceError struct{ Err error }

func (e *PersistenceError) Error() string { return "persistence error: " + e.Err.Error() }

func (e *PersistenceError) Unwrap() error { return e.Err }

// ClassifyUpstreamError turns a model client failure into an UpstreamAuthError
// or UpstreamError. Errors that are already classified are returned as is.
func ClassifyUpstreamError(err error) error {
	if err == nil {
		return nil
	}

	var authErr *UpstreamAuthError
	var upErr *UpstreamError
	if errors.As(err, &authErr) || errors.As(err, &upErr) {
		return err
	}

	if strings.Contains(err.Error(), credentialRejected) {
		return &UpstreamAuthError{Err: err}
	}
	return &UpstreamError{Err: err}
}
