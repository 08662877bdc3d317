package apperr

import (
	"errors"
	"fmt"
)

// AppError represents a failure detected while handling a user action.
//
// Application errors include:
//   - Duplicate username/email: Sign-up collides with an existing user
//   - Invalid credentials: Login with unknown user or wrong password
//   - Missing required field: A form was submitted without a mandatory value
//   - Task not found: A row operation referenced an id no longer present
//   - Store write failure: The backing table could not be rewritten
//
// AppError includes structured fields for rendering inline on the page.
type AppError struct {
	// Code identifies the error category.
	Code Code

	// Message is a human-readable description shown to the user.
	Message string

	// Username identifies the affected account, if any.
	Username string

	// Field names the offending form field (for missing-field errors).
	Field string
}

// Code categorizes application errors.
type Code string

const (
	// CodeDuplicateUsername indicates the username is already registered.
	CodeDuplicateUsername Code = "DUPLICATE_USERNAME"

	// CodeDuplicateEmail indicates the email is already registered.
	CodeDuplicateEmail Code = "DUPLICATE_EMAIL"

	// CodeInvalidCredentials indicates a failed login attempt.
	CodeInvalidCredentials Code = "INVALID_CREDENTIALS"

	// CodeMissingField indicates a required form field was empty.
	CodeMissingField Code = "MISSING_REQUIRED_FIELD"

	// CodeTaskNotFound indicates a task id that is not in the pending set.
	CodeTaskNotFound Code = "TASK_NOT_FOUND"

	// CodeStoreWrite indicates the backing table could not be written.
	CodeStoreWrite Code = "STORE_WRITE_FAILURE"
)

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Username != "" {
		return fmt.Sprintf("%s: %s (user=%s)", e.Code, e.Message, e.Username)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (field=%s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is reports whether target is an AppError with the same code.
// Enables errors.Is(err, &AppError{Code: CodeDuplicateUsername}).
func (e *AppError) Is(target error) bool {
	var ae *AppError
	if errors.As(target, &ae) {
		return e.Code == ae.Code
	}
	return false
}

// CodeOf extracts the error code from err, or "" if err is not an AppError.
// Uses errors.As to handle wrapped errors.
func CodeOf(err error) Code {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ""
}

// IsDuplicate returns true for either duplicate-username or duplicate-email.
func IsDuplicate(err error) bool {
	code := CodeOf(err)
	return code == CodeDuplicateUsername || code == CodeDuplicateEmail
}

// NewDuplicateUsername creates an AppError for a username collision.
func NewDuplicateUsername(username string) *AppError {
	return &AppError{
		Code:     CodeDuplicateUsername,
		Message:  "username already exists, please choose a different one",
		Username: username,
	}
}

// NewDuplicateEmail creates an AppError for an email collision.
func NewDuplicateEmail(username string) *AppError {
	return &AppError{
		Code:     CodeDuplicateEmail,
		Message:  "email already in use, please use a different email",
		Username: username,
	}
}

// NewInvalidCredentials creates an AppError for a failed login.
func NewInvalidCredentials(username string) *AppError {
	return &AppError{
		Code:     CodeInvalidCredentials,
		Message:  "invalid username or password",
		Username: username,
	}
}

// NewMissingField creates an AppError for an empty required form field.
func NewMissingField(field string) *AppError {
	return &AppError{
		Code:    CodeMissingField,
		Message: fmt.Sprintf("%s is required", field),
		Field:   field,
	}
}

// NewTaskNotFound creates an AppError for a missing task id.
func NewTaskNotFound(id string) *AppError {
	return &AppError{
		Code:    CodeTaskNotFound,
		Message: fmt.Sprintf("no pending task with id %s", id),
	}
}

// NewStoreWrite wraps a table write failure.
func NewStoreWrite(err error) *AppError {
	return &AppError{
		Code:    CodeStoreWrite,
		Message: err.Error(),
	}
}
