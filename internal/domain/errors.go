package domain

import (
	"errors"
	"fmt"
)

// Error taxonomy for the studio workflow. Every failure surfaced to a client
// is wrapped in exactly one of these sentinels before it is stored on the
// session; nothing reaches the HTTP layer unclassified.
var (
	// ErrValidation covers locally detectable input problems: no assets,
	// an unclassified asset, a missing reference image, or an absent
	// credential. Never produced by an external call.
	ErrValidation = errors.New("validation failed")

	// ErrPermissionDenied marks failures traced to an authorization
	// rejection from the generation service (HTTP 403 or a
	// PERMISSION_DENIED status). It triggers the credential re-entry
	// prompt; generic failures do not.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrGeneration covers every other transport or response failure of
	// the generation calls, including empty responses and poll timeouts.
	ErrGeneration = errors.New("generation failed")

	// ErrDownload marks failures while exporting a produced artifact to a
	// local file. It never affects workflow state.
	ErrDownload = errors.New("download failed")
)

// IsPermissionDenied reports whether err is classified as an authorization
// rejection rather than a generic generation failure.
func IsPermissionDenied(err error) bool {
	return errors.Is(err, ErrPermissionDenied)
}

// IsValidation reports whether err was raised before any external call.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// ValidationError builds a classified local validation failure.
func ValidationError(reason string) error {
	return fmt.Errorf("%w: %s", ErrValidation, reason)
}

// GenerationError builds a classified generic generation failure.
func GenerationError(reason string) error {
	return fmt.Errorf("%w: %s", ErrGeneration, reason)
}
