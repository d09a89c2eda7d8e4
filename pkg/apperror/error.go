package apperror

import "net/http"

// Kind identifies the business outcome behind an error so callers and tests
// can tell apart signals that share an HTTP status code.
type Kind string

const (
	KindValidation           Kind = "VALIDATION_ERROR"
	KindUnauthorized         Kind = "UNAUTHORIZED"
	KindAccessDenied         Kind = "ACCESS_DENIED"
	KindNotFound             Kind = "NOT_FOUND"
	KindDuplicateApplication Kind = "DUPLICATE_APPLICATION"
	KindJobNotActive         Kind = "JOB_NOT_ACTIVE"
	KindInvalidTransition    Kind = "INVALID_TRANSITION"
	KindInternal             Kind = "INTERNAL"
)

type AppError struct {
	Code    int    `json:"code"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, kind Kind, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, KindValidation, message, nil)
}

func Unauthorized(message string) *AppError {
	return New(http.StatusUnauthorized, KindUnauthorized, message, nil)
}

func Forbidden(message string) *AppError {
	return New(http.StatusForbidden, KindAccessDenied, message, nil)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, KindNotFound, message, nil)
}

func DuplicateApplication(message string) *AppError {
	return New(http.StatusConflict, KindDuplicateApplication, message, nil)
}

func JobNotActive(message string) *AppError {
	return New(http.StatusConflict, KindJobNotActive, message, nil)
}

func InvalidTransition(message string) *AppError {
	return New(http.StatusUnprocessableEntity, KindInvalidTransition, message, nil)
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, KindInternal, "Internal Server Error", err)
}

// KindOf extracts the Kind from an error, KindInternal for foreign errors.
func KindOf(err error) Kind {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Kind
	}
	return KindInternal
}
