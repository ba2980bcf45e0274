package model

import "errors"

var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrCorruptProfile     = errors.New("session points to a missing profile")
	ErrMalformedBackup    = errors.New("malformed backup document")
	ErrRemoteAnalysis     = errors.New("remote analysis failed")
)
