package domain

import "errors"

// Transport and lookup errors.
var (
	ErrRequestFailed   = errors.New("Request failed")
	ErrNotFound        = errors.New("record not found")
	ErrUnknownKind     = errors.New("unknown person kind")
	ErrStaleResponse   = errors.New("stale response discarded")
	ErrNotFilterable   = errors.New("collection cannot be filtered by class")
	ErrUnauthenticated = errors.New("authentication required")
)

// Auth errors. Their text is shown to the user as-is.
var (
	ErrLoginEmpty        = errors.New("Please enter both email and password.")
	ErrLoginUnsuccessful = errors.New("Sign in unsuccessful")
	ErrFetchingData      = errors.New("Error fetching user data")
	ErrSignupEmpty       = errors.New("Email, password, and confirm password are required.")
	ErrEmailExists       = errors.New("Email already exists. Please use a different email.")
	ErrPasswordMismatch  = errors.New("Password and Confirm Password do not match.")
	ErrSavingData        = errors.New("Error saving user data")
)
