package arxiv

import (
	"errors"
	"fmt"
)

// Common errors returned by the OAI-PMH client.
var (
	// ErrNotFound indicates the repository has no record for the identifier.
	ErrNotFound = errors.New("record not found in arXiv")

	// ErrUnavailable indicates a network or remote service failure.
	ErrUnavailable = errors.New("arXiv metadata service unavailable")

	// ErrTimeout indicates the lookup exceeded its deadline.
	ErrTimeout = errors.New("arXiv metadata request timed out")

	// ErrInvalidResponse indicates a response that could not be decoded.
	ErrInvalidResponse = errors.New("invalid response from arXiv")
)

// OAI-PMH error codes, see http://www.openarchives.org/OAI/openarchivesprotocol.html#ErrorConditions
const (
	CodeIDDoesNotExist          = "idDoesNotExist"
	CodeBadArgument             = "badArgument"
	CodeCannotDisseminateFormat = "cannotDisseminateFormat"
)

// OAIError is an error condition reported inside an OAI-PMH response.
type OAIError struct {
	Code       string
	Message    string
	Identifier string
}

func (e *OAIError) Error() string {
	return fmt.Sprintf("OAI-PMH error %s: %s (identifier: %s)", e.Code, e.Message, e.Identifier)
}

// Unwrap maps the OAI-PMH error code onto the package sentinels.
func (e *OAIError) Unwrap() error {
	if e.Code == CodeIDDoesNotExist {
		return ErrNotFound
	}
	return ErrUnavailable
}

// HTTPError is a non-2xx response from the metadata service.
type HTTPError struct {
	StatusCode int
	Identifier string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("arXiv returned HTTP %d (identifier: %s)", e.StatusCode, e.Identifier)
}

func (e *HTTPError) Unwrap() error {
	if e.StatusCode == 404 {
		return ErrNotFound
	}
	return ErrUnavailable
}

// IsNotFound returns true if the error indicates an unknown identifier.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsTimeout returns true if the lookup ran past its deadline.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}
