package adminclient

import "errors"

// ErrorKind classifies API failures for callers that branch on them.
type ErrorKind string

const (
	KindValidation   ErrorKind = "validation"
	KindUnauthorized ErrorKind = "unauthorized"
	KindNotFound     ErrorKind = "not_found"
	KindServer       ErrorKind = "server"
)

// APIError is the single failure type the client surfaces. Message is
// always human-readable; raw transport errors never pass through.
type APIError struct {
	Kind    ErrorKind
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

func validationError(message string) *APIError {
	return &APIError{Kind: KindValidation, Message: message}
}

func serverError(message string) *APIError {
	return &APIError{Kind: KindServer, Message: message}
}

// KindOf returns the error's kind, or KindServer for anything that is not
// an *APIError.
func KindOf(err error) ErrorKind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindServer
}

func kindForStatus(status int) ErrorKind {
	switch {
	case status == 400 || status == 422:
		return KindValidation
	case status == 401 || status == 403:
		return KindUnauthorized
	case status == 404:
		return KindNotFound
	default:
		return KindServer
	}
}
