package resolver

import "errors"

var (
	// ErrInvalidIdentifier is returned for ids that are neither new-style
	// (2402.10949) nor old-style (hep-th/9901001).
	ErrInvalidIdentifier = errors.New("invalid arXiv identifier")

	// ErrValidation is returned when the upstream record is unusable.
	ErrValidation = errors.New("upstream record failed validation")
)
