package failure

import (
	"errors"
	"net/http"
)

// Failure is an error the caller can act on. Code follows HTTP status
// semantics so the engine's errors map directly onto any outer transport.
type Failure struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable,omitempty"`

	cause error
}

// StatusCoder is implemented by errors that carry their own status code but
// need a richer payload than Failure, such as a per-occurrence breakdown.
type StatusCoder interface {
	HTTPStatus() int
}

func (e *Failure) Error() string {
	return e.Message
}

func (e *Failure) Unwrap() error {
	return e.cause
}

func (e *Failure) HTTPStatus() int {
	return e.Code
}

func wrap(code int, err error) error {
	if err == nil {
		return nil
	}

	return &Failure{Code: code, Message: err.Error(), cause: err}
}

// BadRequest keeps err reachable through errors.Is. A nil err yields nil.
func BadRequest(err error) error {
	return wrap(http.StatusBadRequest, err)
}

func BadRequestFromString(msg string) error {
	return &Failure{Code: http.StatusBadRequest, Message: msg}
}

// NotFound takes the full message, e.g. "room not found".
func NotFound(msg string) error {
	return &Failure{Code: http.StatusNotFound, Message: msg}
}

func Conflict(msg string) error {
	return &Failure{Code: http.StatusConflict, Message: msg}
}

func Forbidden(msg string) error {
	return &Failure{Code: http.StatusForbidden, Message: msg}
}

// PersistenceConflict reports that a concurrent writer made the operation
// stale. Nothing was written and the caller may retry.
func PersistenceConflict(msg string) error {
	return &Failure{Code: http.StatusConflict, Message: msg, Retryable: true}
}

func IsRetryable(err error) bool {
	var fail *Failure

	return errors.As(err, &fail) && fail.Retryable
}

// GetCode returns the status carried by err, or 500 for anything else.
func GetCode(err error) int {
	var coder StatusCoder
	if errors.As(err, &coder) {
		return coder.HTTPStatus()
	}

	return http.StatusInternalServerError
}
