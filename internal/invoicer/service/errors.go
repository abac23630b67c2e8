package service

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrConflict           = errors.New("conflict")

	// ErrNotFound covers both absent rows and rows owned by someone else.
	ErrNotFound      = errors.New("not found")
	ErrInvalidFormat = errors.New("invalid format")
)

// FieldError is a rejected input field. It matches ErrInvalidFormat under
// errors.Is and its Message is safe to show to the caller.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string { return e.Message }

func (e *FieldError) Unwrap() error { return ErrInvalidFormat }

func invalidField(field, msg string) error {
	return &FieldError{Field: field, Message: msg}
}

// Messages shared with the HTTP layer.
const (
	MsgDueDateFormat = "due_date must be in YYYY-MM-DD format"
	MsgEmailTaken    = "Client with this email already exists"
)
