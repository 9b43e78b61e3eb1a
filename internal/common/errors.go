// Package common defines shared constants and sentinel errors used across
// the sync engine. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Payload validation errors.
	ErrMissingID = errors.New("record has no id")

	// Generic internal flow control.
	ErrorInternal = errors.New("internal error")
)
