package pkg

import "fmt"

// AppError is the error shape returned to HTTP callers.
//
// Code is a stable, status-independent identifier (e.g. AUTH_001) so clients can branch
// on semantics; HTTPStatus is only used by the transport layer.
type AppError struct {
	Code        string `json:"code"`
	Message     string `json:"message"`
	Description string `json:"description,omitempty"`
	HTTPStatus  int    `json:"-"`
	Err         error  `json:"-"`
}

// HTTPError is the serialised error object placed in the response envelope.
type HTTPError struct {
	Code        string `json:"code"`
	Message     string `json:"message"`
	Description string `json:"description,omitempty"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// ToHTTPError strips the internal cause before the error leaves the process.
func (e *AppError) ToHTTPError() HTTPError {
	return HTTPError{
		Code:        e.Code,
		Message:     e.Message,
		Description: e.Description,
	}
}

// WithDescription returns a copy carrying a longer human-readable explanation.
func (e *AppError) WithDescription(description string) *AppError {
	cp := *e
	cp.Description = description
	return &cp
}

func NewDomainError(code, message string, err error, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

func NewDomainErrorSimple(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}
