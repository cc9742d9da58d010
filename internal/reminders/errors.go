package reminders

import "net/http"

// ValidationError reports a rejected operation due to missing or illegal
// input. No partial write occurs when one is returned.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// HTTPStatus lets the response helpers map this error to 400.
func (e *ValidationError) HTTPStatus() int {
	return http.StatusBadRequest
}
