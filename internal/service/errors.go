package service

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrDuplicateNickname  = errors.New("nickname already exists")
	ErrNotFound           = errors.New("account not found")
	ErrNicknameGeneration = errors.New("failed to generate a valid nickname")

	// ErrInvalidCredentials is returned for every rejected login that must not
	// reveal which check failed.
	ErrInvalidCredentials = errors.New("incorrect email or password")
	// ErrEmailNotVerified still matches ErrInvalidCredentials.
	ErrEmailNotVerified = fmt.Errorf("%w: email not verified", ErrInvalidCredentials)
	ErrAccountLocked    = errors.New("account locked due to too many failed login attempts")
	ErrAccountNotLocked = errors.New("account is not locked")

	ErrInvalidToken             = errors.New("token is expired or invalid")
	ErrTokenCreationFailed      = errors.New("token creation failed")
	ErrInvalidVerificationToken = errors.New("invalid or expired verification token")
	ErrForbidden                = errors.New("not enough permissions")

	ErrPersistence        = errors.New("persistence error")
	ErrNotificationFailed = errors.New("notification failed")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
