package repository

import (
	"errors"
	"net/http"

	"gorm.io/gorm"
)

// NotFoundError reports that an operation targeted a nonexistent record.
// It is propagated to callers unchanged.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

// HTTPStatus lets the response helpers map this error to 404.
func (e *NotFoundError) HTTPStatus() int {
	return http.StatusNotFound
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// notFoundOr translates gorm's record-not-found into the domain error,
// leaving other failures (treated as transient I/O errors) untouched.
func notFoundOr(err error, resource string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &NotFoundError{Resource: resource}
	}
	return err
}
