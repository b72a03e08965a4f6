package draft

import (
	constant "github.com/procurahq/lib-reqdraft/reqdraft/constants"
)

// FieldError is a typed rejection identifying the missing or invalid field.
type FieldError struct {
	Field  string
	Reason string
}

func (e FieldError) Error() string {
	return "invalid " + e.Field + ": " + e.Reason
}

// Unwrap ties every field rejection to the shared validation sentinel so
// callers can branch with errors.Is.
func (e FieldError) Unwrap() error {
	return constant.ErrValidationFailed
}
