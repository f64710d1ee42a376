// Package apperrors contains client-visible errors returned by services.
//
// Every APIError carries a stable Kind and the codes transports should answer
// with. Errors that are not APIErrors are storage or programming failures and
// are reported to callers as internal errors.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
)

// Kind is a machine-distinguishable error category.
type Kind string

const (
	// KindValidation marks bad input: malformed fields, duplicate email, empty recipient list.
	KindValidation Kind = "validation"
	// KindNotFound marks a reference to an entity that does not exist.
	KindNotFound Kind = "not_found"
)

// APIError is an application-level error with a human-readable message.
type APIError struct {
	Kind       Kind
	Message    string
	GRPCCode   codes.Code
	HTTPStatus int
}

func (e *APIError) Error() string {
	return e.Message
}

// Is reports whether target is an APIError of the same kind and message.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

func newValidation(msg string) *APIError {
	return &APIError{Kind: KindValidation, Message: msg, GRPCCode: codes.InvalidArgument, HTTPStatus: http.StatusBadRequest}
}

func newNotFound(msg string) *APIError {
	return &APIError{Kind: KindNotFound, Message: msg, GRPCCode: codes.NotFound, HTTPStatus: http.StatusNotFound}
}

// NewErrValidation wraps an input validation failure.
func NewErrValidation(msg string) *APIError {
	return newValidation(msg)
}

// NewErrNoRecipients is returned when a message is sent without recipients.
func NewErrNoRecipients() *APIError {
	return newValidation("Message must have at least one recipient.")
}

// NewErrDuplicateRecipient is returned when the same recipient is listed twice.
func NewErrDuplicateRecipient(id uuid.UUID) *APIError {
	return newValidation(fmt.Sprintf("Recipient with ID %s is listed more than once.", id))
}

// NewErrEmailTaken is returned when the email is already registered.
func NewErrEmailTaken() *APIError {
	return newValidation("Email already registered")
}

// NewErrUserNotFound is returned when a user id does not resolve.
func NewErrUserNotFound() *APIError {
	return newNotFound("User not found.")
}

// NewErrSenderNotFound is returned when the sender of a message does not exist.
func NewErrSenderNotFound() *APIError {
	return newNotFound("Sender not found.")
}

// NewErrRecipientNotFound is returned for the first recipient that does not exist.
func NewErrRecipientNotFound(id uuid.UUID) *APIError {
	return newNotFound(fmt.Sprintf("Recipient with ID %s not found.", id))
}

// NewErrMessageNotFound is returned by message lookups.
func NewErrMessageNotFound() *APIError {
	return newNotFound("Messages not found")
}

// NewErrMessageRecipientsNotFound is returned when listing recipients of an unknown message.
func NewErrMessageRecipientsNotFound() *APIError {
	return newNotFound("Message not found.")
}

// NewErrRecipientEntryNotFound is returned when a recipient entry id does not resolve.
func NewErrRecipientEntryNotFound() *APIError {
	return newNotFound("Message recipient entry not found")
}

// As extracts an APIError from err's chain.
func As(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsValidation reports whether err carries a validation APIError.
func IsValidation(err error) bool {
	apiErr, ok := As(err)
	return ok && apiErr.Kind == KindValidation
}

// IsNotFound reports whether err carries a not-found APIError.
func IsNotFound(err error) bool {
	apiErr, ok := As(err)
	return ok && apiErr.Kind == KindNotFound
}
