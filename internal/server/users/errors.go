package users

import "errors"

// Service-level error kinds. Это полный словарь ошибок, которые сервис
// отдает наружу: любая другая ошибка нижних слоев сворачивается в ErrInternal
var (
	// ErrUserAlreadyExists indicates that username is already taken
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrUnauthorized indicates that the caller could not be authenticated
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidCredentials indicates that the password did not match
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInternal indicates a failure in storage, hashing or token signing.
	// The cause is logged server-side and never exposed to the caller
	ErrInternal = errors.New("internal error")
)
