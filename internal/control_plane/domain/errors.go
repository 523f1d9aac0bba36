package domain

import "errors"

var (
	ErrPhraseNotFound = errors.New("phrase not found")
	ErrUserNotFound   = errors.New("user not found")
	ErrInvalidEvent   = errors.New("invalid event")
	ErrInvalidPhrase  = errors.New("invalid phrase")
)
