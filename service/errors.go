package service

import "errors"

// Sentinel errors the controllers map onto the HTTP error taxonomy.
var (
	ErrNotFound        = errors.New("not found")
	ErrBadCredentials  = errors.New("bad credentials")
	ErrBootstrapClosed = errors.New("bootstrap closed")
	ErrUsernameTaken   = errors.New("username exists")
	ErrSelfDelete      = errors.New("cannot delete yourself")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrTaskNotDone     = errors.New("only completed tasks can be deleted")
	ErrBadToken        = errors.New("invalid or expired reset token")
	ErrPasswordMatch   = errors.New("passwords do not match")
)
