package console

import (
	goerrors "github.com/goliatone/go-errors"
)

const (
	textCodeRequestRejected = "CONSOLE_REQUEST_REJECTED"
	textCodeInvalidPayload  = "CONSOLE_INVALID_PAYLOAD"
)

// FallbackErrorMessage is surfaced when a rejected request carries no
// human-readable message of its own.
var FallbackErrorMessage = "Something went wrong"

// ErrMissingIdentity is returned when an operation needs a live session and
// none is held locally.
var ErrMissingIdentity = goerrors.New("no active session", goerrors.CategoryAuth).
	WithCode(goerrors.CodeUnauthorized)

// NewRequestError wraps a server rejection so the stores fold a uniform
// error shape regardless of transport.
func NewRequestError(err error, message string) error {
	if message == "" {
		message = FallbackErrorMessage
	}
	if err == nil {
		return goerrors.New(message, goerrors.CategoryOperation).
			WithTextCode(textCodeRequestRejected)
	}
	return goerrors.Wrap(err, goerrors.CategoryOperation, message).
		WithTextCode(textCodeRequestRejected)
}

// NewValidationError marks a payload failure that must block the dispatch
// entirely; it never reaches a store.
func NewValidationError(err error) error {
	return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid payload").
		WithTextCode(textCodeInvalidPayload).
		WithCode(goerrors.CodeBadRequest)
}

// IsValidationError reports whether err originated at the validation
// boundary rather than from the server.
func IsValidationError(err error) bool {
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		return false
	}
	return rich.Category == goerrors.CategoryValidation
}

// DisplayMessage extracts the text a user should see for err: the rich error
// message when present, the raw error text otherwise, and a generic fallback
// when the error carries no message at all.
func DisplayMessage(err error) string {
	if err == nil {
		return ""
	}
	var rich *goerrors.Error
	if goerrors.As(err, &rich) && rich.Message != "" {
		return rich.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return FallbackErrorMessage
}
