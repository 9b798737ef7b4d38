package core

import "errors"

// ValidationError is a recoverable, user-facing rejection of an edit. The
// tree is always left unchanged when one is returned.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Sentinel causes carried by ValidationError.
var (
	ErrNotSubmenu   = errors.New("target is not a submenu")
	ErrNodeNotFound = errors.New("menu node not found")
)

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func validationf(cause error, msg string) error {
	return &ValidationError{Message: msg, Err: cause}
}
