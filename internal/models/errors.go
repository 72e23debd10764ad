package models

import "errors"

var (
	// ErrInvalidAIResponse is returned when model output cannot be parsed as slides
	ErrInvalidAIResponse = errors.New("Invalid JSON response from AI. Please try again.")

	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrLLMUnavailable   = errors.New("no language model configured")
	ErrImageUnavailable = errors.New("image unavailable")
)

// ErrStorageDisabled is returned by history operations when deck storage is off
var ErrStorageDisabled = errors.New("deck storage is disabled")
