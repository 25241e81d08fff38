package errors

import "errors"

var (
	ErrInvalidSignupRequest = errors.New("invalid signup request")
	ErrEmailTaken           = errors.New("user with this email already exists")
	ErrWeakPassword         = errors.New("password does not meet policy")
	ErrIdentityUnavailable  = errors.New("identity provider unavailable")
	ErrProfileExists        = errors.New("profile already exists")
	ErrRegistrationFailed   = errors.New("failed to complete registration")
)
