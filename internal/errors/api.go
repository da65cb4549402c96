package errors

import (
	"errors"
	"fmt"
)

// ===== REMOTE CALL ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrUnauthorized     = errors.New("unauthorized access")
	ErrForbidden        = errors.New("forbidden - insufficient permissions")
	ErrValidationFailed = errors.New("validation failed")

	// Course / catalog specific errors
	ErrCourseNotFound = errors.New("course not found")

	// Enrollment specific errors
	ErrEnrollmentNotFound = errors.New("enrollment not found")
	ErrNotEnrolled        = errors.New("not enrolled in this course")

	// Quiz specific errors
	ErrQuizNotFound        = errors.New("quiz not found")
	ErrAttemptNotFound     = errors.New("no attempt recorded for this quiz")
	ErrQuizHasNoQuestions  = errors.New("quiz has no questions to answer")
	ErrQuizNotAllAnswered  = errors.New("all questions must be answered before submitting")
	ErrQuizNotInProgress   = errors.New("quiz session is not in progress")
	ErrQuizAlreadyStarted  = errors.New("quiz session already started")
	ErrSubmissionInFlight  = errors.New("quiz submission already in flight")

	// Assignment specific errors
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrSubmissionNotFound = errors.New("submission not found")

	// Payment specific errors
	ErrOrderNotFound = errors.New("order not found")
)

// FallbackRemoteMessage is shown when the server provides no usable message.
const FallbackRemoteMessage = "something went wrong, please try again"

// APIError is a remote failure carrying the server-provided message and HTTP
// status. It is surfaced to the user as a dismissible banner, never a fatal
// condition.
type APIError struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

// UserMessage returns the human-readable text for the error banner.
func (e *APIError) UserMessage() string {
	if e.Message == "" {
		return FallbackRemoteMessage
	}
	return e.Message
}

func NewAPIError(statusCode int, message string) *APIError {
	return &APIError{StatusCode: statusCode, Message: message}
}

// ===== ERROR PREDICATES =====

// IsNotFound checks if error represents a "not found" condition. Not-found is
// a distinguished state (no attempt yet, no enrollment yet), not a failure.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrCourseNotFound) ||
		errors.Is(err, ErrEnrollmentNotFound) ||
		errors.Is(err, ErrQuizNotFound) ||
		errors.Is(err, ErrAttemptNotFound) ||
		errors.Is(err, ErrAssignmentNotFound) ||
		errors.Is(err, ErrSubmissionNotFound) ||
		errors.Is(err, ErrOrderNotFound) {
		return true
	}
	var ae *APIError
	return errors.As(err, &ae) && ae.StatusCode == 404
}

// IsValidation checks if error represents a local validation failure, caught
// before any request was sent.
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) {
		return true
	}
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return true
	}
	var single *ValidationError
	return errors.As(err, &single)
}

// IsRemote checks if error came back from the server.
func IsRemote(err error) bool {
	var ae *APIError
	return errors.As(err, &ae)
}

// IsUnauthorized checks if error represents an auth failure.
func IsUnauthorized(err error) bool {
	if errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrForbidden) {
		return true
	}
	var ae *APIError
	return errors.As(err, &ae) && (ae.StatusCode == 401 || ae.StatusCode == 403)
}

// UserMessage extracts banner text from any error, falling back to a generic
// message for unexpected failures.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.UserMessage()
	}
	if IsValidation(err) {
		return err.Error()
	}
	return FallbackRemoteMessage
}
